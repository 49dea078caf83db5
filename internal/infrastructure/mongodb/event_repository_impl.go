package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	e := &entity.Event{}
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(e); err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func (r *EventRepository) FindBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	filter := bson.M{"date": bson.M{"$gte": from, "$lt": to}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Event, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *EventRepository) Save(ctx context.Context, e *entity.Event) error {
	doc := *e
	// store empty arrays rather than null
	if doc.Users == nil {
		doc.Users = []string{}
	}
	if doc.Comments == nil {
		doc.Comments = []string{}
	}
	if e.Key != "" {
		return replaceByKey(ctx, r.coll, e.Key, doc)
	}
	doc.Key = newKey()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	e.Key = doc.Key
	return nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
