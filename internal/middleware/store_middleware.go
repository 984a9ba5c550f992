package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/larswik/gigdex/internal/store"
)

func StoreMiddleware(events *store.EventStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("event_store", events)
		c.Next()
	}
}

func GetEventStore(c *gin.Context) *store.EventStore {
	events, exists := c.Get("event_store")
	if !exists {
		return nil
	}
	return events.(*store.EventStore)
}
