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

// changeControlID pins the singleton so concurrent upserts cannot create a
// second document.
const changeControlID = "changecontrol"

type ChangeControlRepository struct {
	coll *mongo.Collection
}

func NewChangeControlRepository(db *mongo.Database) *ChangeControlRepository {
	return &ChangeControlRepository{coll: db.Collection(changeControlCollection)}
}

func (r *ChangeControlRepository) Get(ctx context.Context) (*entity.ChangeControl, error) {
	cc := &entity.ChangeControl{}
	if err := r.coll.FindOne(ctx, bson.M{"_id": changeControlID}).Decode(cc); err != nil {
		return nil, mapErr(err)
	}
	return cc, nil
}

func (r *ChangeControlRepository) Increment(ctx context.Context, k entity.Kind, at time.Time) (*entity.ChangeControl, error) {
	update, err := incrementUpdate(k, at)
	if err != nil {
		return nil, err
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	cc := &entity.ChangeControl{}
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": changeControlID}, update, opts).Decode(cc)
	if mongo.IsDuplicateKeyError(err) {
		// two first-ever upserts raced; the loser retries as a plain update
		err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": changeControlID}, update, opts).Decode(cc)
	}
	if err != nil {
		return nil, mapErr(err)
	}
	return cc, nil
}

func incrementUpdate(k entity.Kind, at time.Time) (bson.M, error) {
	field, err := k.CounterField()
	if err != nil {
		return nil, err
	}
	return bson.M{
		"$inc": bson.M{field: 1},
		"$set": bson.M{"date": at},
	}, nil
}

var _ repository.ChangeControlRepository = (*ChangeControlRepository)(nil)
