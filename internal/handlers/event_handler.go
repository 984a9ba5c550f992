package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/larswik/gigdex/internal/helpers"
	"github.com/larswik/gigdex/internal/middleware"
	"github.com/larswik/gigdex/internal/models"
	"github.com/larswik/gigdex/internal/store"
)

type createEventRequest struct {
	Name      string `json:"name" binding:"required"`
	EventDate string `json:"event_date"`
	Venue     string `json:"venue"`
	City      string `json:"city"`
	Country   string `json:"country"`
}

// eventID reads the :id path parameter. A non-numeric id behaves like a
// missing row rather than a malformed request.
func eventID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

func ListEvents(c *gin.Context) {
	events := middleware.GetEventStore(c)
	if events == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Event store not found.")
		return
	}

	all, err := events.List()
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}
	if all == nil {
		all = []models.Event{}
	}

	c.JSON(http.StatusOK, all)
}

func GetEvent(c *gin.Context) {
	events := middleware.GetEventStore(c)
	if events == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Event store not found.")
		return
	}

	id, ok := eventID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Resource not found.")
		return
	}

	event, err := events.Get(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Resource not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

func CreateEvent(c *gin.Context) {
	events := middleware.GetEventStore(c)
	if events == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Event store not found.")
		return
	}

	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing name or other required data.")
		return
	}

	event := models.Event{
		Name:      req.Name,
		EventDate: req.EventDate,
		Venue:     req.Venue,
		City:      req.City,
		Country:   req.Country,
	}

	if err := events.Insert(&event); err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.Header("Location", fmt.Sprintf("/events/%d", event.ID))
	c.JSON(http.StatusCreated, event)
}

func DeleteEvent(c *gin.Context) {
	events := middleware.GetEventStore(c)
	if events == nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Event store not found.")
		return
	}

	id, ok := eventID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Resource not found.")
		return
	}

	deleted, err := events.Delete(id)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}
	if deleted == 0 {
		helpers.RespondWithError(c, http.StatusNotFound, "Resource not found.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": true})
}
