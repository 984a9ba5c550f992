package server

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/larswik/gigdex/config"
	"github.com/larswik/gigdex/internal/handlers"
	"github.com/larswik/gigdex/internal/middleware"
	"github.com/larswik/gigdex/internal/store"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	db, err := config.InitDatabase(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %v", err)
	}

	r := gin.Default()

	SetupRoutes(r, store.NewEventStore(db))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	return r.Run(":" + port)
}

func SetupRoutes(r *gin.Engine, events *store.EventStore) {
	r.Use(middleware.StoreMiddleware(events))

	eventRoutes := r.Group("/events")
	{
		eventRoutes.GET("", handlers.ListEvents)
		eventRoutes.GET("/:id", handlers.GetEvent)
		eventRoutes.POST("", handlers.CreateEvent)
		eventRoutes.DELETE("/:id", handlers.DeleteEvent)
	}
}
