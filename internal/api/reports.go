package api

import (
	"net/http"
	"time"

	"github.com/LenaDzi1/TimeManager-sub001/internal/service"
	"github.com/LenaDzi1/TimeManager-sub001/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

type reportRoutes struct {
	rs service.ReportServiceI
}

func NewReportRoutes(handler *gin.RouterGroup, rs service.ReportServiceI) {
	r := &reportRoutes{rs: rs}
	h := handler.Group("/reports")
	{
		h.GET("/quick-tasks", r.GetQuickTasks)
		h.GET("/redeemed-rewards", r.GetRedeemedRewards)
	}

	handler.GET("/events/due-count", r.GetDueCount)
}

func (r *reportRoutes) GetQuickTasks(c *gin.Context) {
	dialog, err := r.rs.QuickTasks(c.Request.Context())
	if err != nil {
		respondError(c, "failed to get quick tasks", err)
		return
	}
	defer dialog.Close()

	c.JSON(http.StatusOK, dialog)
}

func (r *reportRoutes) GetRedeemedRewards(c *gin.Context) {
	dialog, err := r.rs.RedeemedRewards(c.Request.Context())
	if err != nil {
		respondError(c, "failed to get redeemed rewards", err)
		return
	}
	defer dialog.Close()

	c.JSON(http.StatusOK, dialog)
}

func (r *reportRoutes) GetDueCount(c *gin.Context) {
	log := logger.Logger()

	cutoff := time.Now().UTC()
	if before := c.Query("before"); before != "" {
		parsed, err := time.Parse(time.RFC3339, before)
		if err != nil {
			log.Error("failed to parse before", zap.Error(err))
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid before, expected RFC3339"})
			return
		}
		cutoff = parsed
	}

	count, err := r.rs.DueCount(c.Request.Context(), cutoff)
	if err != nil {
		respondError(c, "failed to count due events", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
