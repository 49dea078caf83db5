package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/planning-backend/internal/interface/http"
	"github.com/oksasatya/planning-backend/internal/interface/middleware"
)

// AuthModule mounts the only public route, POST /connexion.
type AuthModule struct {
	Handler *handlers.UserHandler
	Redis   *redis.Client
}

func NewAuthModule(h *handlers.UserHandler, rdb *redis.Client) *AuthModule {
	return &AuthModule{Handler: h, Redis: rdb}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), nil) // 10 req/min per IP
	rg.POST("/connexion", loginLimiter, m.Handler.Login)
}
