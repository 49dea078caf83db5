package application

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	repo "github.com/oksasatya/planning-backend/internal/domain/repository"
	"github.com/oksasatya/planning-backend/pkg/helpers"
	"github.com/oksasatya/planning-backend/pkg/imaging"
)

// MaxImagesPerUpload bounds one POST /upload-image call.
const MaxImagesPerUpload = 10

// ObjectUploader stores a blob and returns its public URL.
// *helpers.GCSUploader implements it.
type ObjectUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type ImageService struct {
	Uploader ObjectUploader
	Repo     repo.ImageRepository
	MaxWidth int
	Logger   *logrus.Logger
}

func NewImageService(uploader ObjectUploader, repo repo.ImageRepository, maxWidth int, logger *logrus.Logger) *ImageService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &ImageService{Uploader: uploader, Repo: repo, MaxWidth: maxWidth, Logger: logger}
}

// Upload normalises every base64 image, stores it under
// images/<userID>/<uuid>.jpg and records a reference. Nothing is uploaded
// unless every image decodes.
func (s *ImageService) Upload(ctx context.Context, userID string, encoded []string) ([]entity.Image, error) {
	if s.Uploader == nil {
		return nil, ErrStorageDisabled
	}
	if len(encoded) == 0 || len(encoded) > MaxImagesPerUpload {
		return nil, fmt.Errorf("%w: between 1 and %d images expected", ErrInvalidImage, MaxImagesPerUpload)
	}

	normalised := make([]*imaging.Result, 0, len(encoded))
	for i, enc := range encoded {
		raw, err := imaging.DecodeBase64(enc)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %v", ErrInvalidImage, i, err)
		}
		res, err := imaging.Normalize(raw, s.MaxWidth)
		if err != nil {
			return nil, fmt.Errorf("%w: image %d: %v", ErrInvalidImage, i, err)
		}
		normalised = append(normalised, res)
	}

	out := make([]entity.Image, 0, len(normalised))
	for _, res := range normalised {
		objectPath := path.Join("images", userID, uuid.NewString()+".jpg")
		url, err := s.Uploader.Upload(ctx, objectPath, imaging.ContentType, bytes.NewReader(res.Data))
		if err != nil {
			return nil, fmt.Errorf("upload %s: %w", objectPath, err)
		}
		img := entity.Image{
			UserID:      userID,
			URL:         url,
			ObjectPath:  objectPath,
			ContentType: imaging.ContentType,
			Width:       res.Width,
			Height:      res.Height,
		}
		if err := s.Repo.Create(ctx, &img); err != nil {
			return nil, fmt.Errorf("record image: %w", err)
		}
		s.Logger.WithField("user_id", userID).WithField("object", objectPath).Info("image uploaded")
		out = append(out, img)
	}
	return out, nil
}
