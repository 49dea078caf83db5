package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

func (s *Store) Users() repository.UserRepository                  { return NewUserRepository(s.db) }
func (s *Store) Alerts() repository.AlertRepository                { return NewAlertRepository(s.db) }
func (s *Store) Events() repository.EventRepository                { return NewEventRepository(s.db) }
func (s *Store) Comments() repository.CommentRepository            { return NewCommentRepository(s.db) }
func (s *Store) ChangeControl() repository.ChangeControlRepository { return NewChangeControlRepository(s.db) }
func (s *Store) Images() repository.ImageRepository                { return NewImageRepository(s.db) }

func (s *Store) Ping(ctx context.Context) error { return s.client.Ping(ctx, readpref.Primary()) }

func (s *Store) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

// EnsureIndexes creates the unique business-key indexes and the date indexes
// the startup queries rely on. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "userName", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		alertsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "endDate", Value: 1}}},
		},
		eventsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "date", Value: 1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
	for coll, models := range specs {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func newKey() string {
	return primitive.NewObjectID().Hex()
}

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return repository.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return errors.Join(repository.ErrDuplicate, err)
	}
	return err
}

// replaceByKey overwrites the document stored under key.
func replaceByKey(ctx context.Context, coll *mongo.Collection, key string, doc any) error {
	res, err := coll.ReplaceOne(ctx, bson.M{"_id": key}, doc)
	if err != nil {
		return mapErr(err)
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.Store = (*Store)(nil)
