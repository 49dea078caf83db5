package modules

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/planning-backend/internal/domain/repository"
	"github.com/oksasatya/planning-backend/pkg/response"
)

// HealthModule mounts GET /health for load balancers and orchestrators.
type HealthModule struct {
	Store repository.Store
	Redis *redis.Client
}

func NewHealthModule(store repository.Store, rdb *redis.Client) *HealthModule {
	return &HealthModule{Store: store, Redis: rdb}
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func (m *HealthModule) Register(rg *gin.RouterGroup) {
	rg.GET("/health", m.health)
}

// health pings the store and, when configured, Redis. Redis is optional, so
// its failure degrades the report without failing the check.
func (m *HealthModule) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	res := healthResponse{Status: "ok", Checks: map[string]string{}}
	status := http.StatusOK
	if err := m.Store.Ping(ctx); err != nil {
		res.Status = "down"
		res.Checks["store"] = err.Error()
		status = http.StatusServiceUnavailable
	} else {
		res.Checks["store"] = "ok"
	}
	if m.Redis != nil {
		if err := m.Redis.Ping(ctx).Err(); err != nil {
			if status == http.StatusOK {
				res.Status = "degraded"
			}
			res.Checks["redis"] = err.Error()
		} else {
			res.Checks["redis"] = "ok"
		}
	}
	response.JSON(c, status, res)
}
