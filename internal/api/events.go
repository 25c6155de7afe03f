package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/model"
	"github.com/LenaDzi1/TimeManager-sub001/internal/service"
	"github.com/LenaDzi1/TimeManager-sub001/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type eventRoutes struct {
	es service.EventServiceI
}

func NewEventRoutes(handler *gin.RouterGroup, es service.EventServiceI) {
	r := &eventRoutes{es: es}
	h := handler.Group("/events")
	{
		h.POST("", r.CreateEvent)
		h.PATCH("/:id/done", r.CompleteEvent)
	}
}

type CreateEventRequest struct {
	Title    *string   `json:"title"`
	Duration int       `json:"duration"`
	Priority string    `json:"priority"`
	Due      time.Time `json:"due" binding:"required"`
}

type EventResponse struct {
	ID       int64     `json:"id"`
	Title    *string   `json:"title"`
	Duration int       `json:"duration"`
	Priority string    `json:"priority"`
	Due      time.Time `json:"due"`
	Done     bool      `json:"done"`
}

func (r *eventRoutes) CreateEvent(c *gin.Context) {
	log := logger.Logger()

	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to bind request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	priority, err := model.ParsePriority(req.Priority)
	if err != nil {
		log.Error("failed to parse priority", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event := &model.Event{
		Title:    req.Title,
		Duration: req.Duration,
		Priority: priority,
		Due:      req.Due,
	}
	if err := r.es.Create(c.Request.Context(), event); err != nil {
		respondError(c, "failed to create event", err)
		return
	}

	c.JSON(http.StatusCreated, EventResponse{
		ID:       event.ID,
		Title:    event.Title,
		Duration: event.Duration,
		Priority: event.Priority.String(),
		Due:      event.Due,
		Done:     event.Done,
	})
}

func (r *eventRoutes) CompleteEvent(c *gin.Context) {
	log := logger.Logger()

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Error("failed to parse id", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	if err := r.es.Complete(c.Request.Context(), id); err != nil {
		respondError(c, "failed to complete event", err)
		return
	}

	c.Status(http.StatusNoContent)
}
