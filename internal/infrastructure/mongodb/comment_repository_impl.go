package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

type CommentRepository struct {
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{coll: db.Collection(commentsCollection)}
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*entity.Comment, error) {
	c := &entity.Comment{}
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(c); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CommentRepository) Save(ctx context.Context, c *entity.Comment) error {
	if c.Key != "" {
		return replaceByKey(ctx, r.coll, c.Key, c)
	}
	doc := *c
	doc.Key = newKey()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	c.Key = doc.Key
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
