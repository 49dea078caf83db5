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

type AlertRepository struct {
	coll *mongo.Collection
}

func NewAlertRepository(db *mongo.Database) *AlertRepository {
	return &AlertRepository{coll: db.Collection(alertsCollection)}
}

func (r *AlertRepository) FindByID(ctx context.Context, id string) (*entity.Alert, error) {
	a := &entity.Alert{}
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(a); err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *AlertRepository) FindActive(ctx context.Context, now time.Time) ([]entity.Alert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "endDate", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.M{"endDate": bson.M{"$gt": now}}, opts)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Alert, 0)
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *AlertRepository) Save(ctx context.Context, a *entity.Alert) error {
	if a.Key != "" {
		return replaceByKey(ctx, r.coll, a.Key, a)
	}
	doc := *a
	doc.Key = newKey()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	a.Key = doc.Key
	return nil
}

var _ repository.AlertRepository = (*AlertRepository)(nil)
