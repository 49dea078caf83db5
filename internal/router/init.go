package router

import (
	"github.com/oksasatya/planning-backend/internal/container"
	handlers "github.com/oksasatya/planning-backend/internal/interface/http"
	"github.com/oksasatya/planning-backend/internal/router/modules"
)

// InitModules builds the handlers from c and registers every module.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	userHandler := handlers.NewUserHandler(c.Users, c.Logger)
	planningHandler := handlers.NewPlanningHandler(c.Planning, c.Tracker, c.Search, c.Logger)
	imageHandler := handlers.NewImageHandler(c.Images, c.Logger)

	r.Add(modules.NewAuthModule(userHandler, c.Redis))
	r.Add(modules.NewPlanningModule(userHandler, planningHandler, imageHandler, c.JWT, c.Store.Users(), c.Redis))
	r.Add(modules.NewHealthModule(c.Store, c.Redis))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(c.Redis))
	}
}
