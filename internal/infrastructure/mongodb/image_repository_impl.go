package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

type ImageRepository struct {
	coll *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{coll: db.Collection(imagesCollection)}
}

func (r *ImageRepository) Create(ctx context.Context, img *entity.Image) error {
	doc := *img
	doc.ID = newKey()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	img.ID, img.CreatedAt = doc.ID, doc.CreatedAt
	return nil
}

var _ repository.ImageRepository = (*ImageRepository)(nil)
