package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/planning-backend/internal/interface/http"
	"github.com/oksasatya/planning-backend/internal/interface/middleware"
	"github.com/oksasatya/planning-backend/pkg/helpers"
)

// PlanningModule mounts every route behind the bearer-token gate.
type PlanningModule struct {
	Users    *handlers.UserHandler
	Planning *handlers.PlanningHandler
	Images   *handlers.ImageHandler
	JWT      *helpers.JWTManager
	Accounts middleware.UserLookup
	Redis    *redis.Client
}

func NewPlanningModule(users *handlers.UserHandler, planning *handlers.PlanningHandler, images *handlers.ImageHandler, jwt *helpers.JWTManager, accounts middleware.UserLookup, rdb *redis.Client) *PlanningModule {
	return &PlanningModule{Users: users, Planning: planning, Images: images, JWT: jwt, Accounts: accounts, Redis: rdb}
}

func (m *PlanningModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT, m.Accounts))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/inscription", m.Users.Signup)
		auth.GET("/startup", m.Planning.Startup)
		auth.POST("/event", m.Planning.UpsertEvent)
		auth.POST("/alert", m.Planning.UpsertAlert)
		auth.POST("/comment", m.Planning.UpsertComment)
		auth.GET("/changecontrol", m.Planning.ChangeControl)
		auth.GET("/events/search", m.Planning.SearchEvents)
	}

	// image uploads are heavier; keep them on a tighter per-user budget
	uploads := auth.Group("/")
	uploads.Use(middleware.RateLimit(m.Redis, 20, time.Minute, middleware.KeyByUserID(), nil))
	uploads.POST("/upload-image", m.Images.Upload)
}
