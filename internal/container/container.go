package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planning-backend/config"
	"github.com/oksasatya/planning-backend/internal/application"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
	"github.com/oksasatya/planning-backend/pkg/helpers"
)

// Infra holds the connections opened by cmd/main.go. Every field but Store
// may be nil; the matching feature is then disabled or falls back.
type Infra struct {
	Store  repository.Store
	Redis  *redis.Client
	Rabbit *helpers.RabbitPublisher
	GCS    *storage.Client
	ES     *elasticsearch.Client
}

// Container shares constructed components with the router.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger
	Infra

	JWT      *helpers.JWTManager
	Tracker  *application.ChangeControl
	Users    *application.UserService
	Planning *application.PlanningService
	Images   *application.ImageService
	Search   *application.EventSearch
}

func New(cfg *config.Config, logger *logrus.Logger, infra Infra) *Container {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	c := &Container{Config: cfg, Logger: logger, Infra: infra}

	// typed nil pointers must not leak into the interfaces below
	var pub application.Publisher
	if infra.Rabbit != nil {
		pub = infra.Rabbit
	}
	var uploader application.ObjectUploader
	if infra.GCS != nil && cfg.GCSBucket != "" {
		uploader = helpers.NewGCSUploader(infra.GCS, cfg.GCSBucket)
	}

	c.JWT = helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	c.Tracker = application.NewChangeControl(infra.Store.ChangeControl(), infra.Redis, cfg.ChangeControlCacheTTL, pub, cfg.RabbitMQChangeQueue, logger)
	c.Search = application.NewEventSearch(infra.ES, cfg.ESEventsIndex, logger)

	var notifier *application.AlertNotifier
	if cfg.MailSendEnabled && pub != nil && len(cfg.AlertRecipients()) > 0 {
		notifier = application.NewAlertNotifier(pub, cfg.RabbitMQEmailQueue, cfg.AlertRecipients(), cfg.AppName, logger)
	}

	c.Users = application.NewUserService(infra.Store.Users(), c.JWT, c.Tracker, logger)
	c.Planning = application.NewPlanningService(infra.Store, c.Tracker, c.Search, notifier, logger)
	c.Images = application.NewImageService(uploader, infra.Store.Images(), cfg.ImageMaxWidth, logger)
	return c
}
