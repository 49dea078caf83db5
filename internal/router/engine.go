package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/planning-backend/internal/container"
	"github.com/oksasatya/planning-backend/internal/interface/middleware"
	"github.com/oksasatya/planning-backend/pkg/validation"
)

// New builds the Gin engine with global middleware and every module mounted.
func New(c *container.Container) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(corsConfig(c.Config.CORSOrigins())))
	if c.Config.HTTPLogEnabled || c.Config.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := NewRegistry(r)
	reg.Use(middleware.RateLimit(c.Redis, 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()))
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	// mobile clients send no Origin; an empty list opens CORS to everyone
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
