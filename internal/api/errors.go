package api

import (
	"errors"
	"net/http"

	"github.com/LenaDzi1/TimeManager-sub001/internal/repository"
	"github.com/LenaDzi1/TimeManager-sub001/internal/service"
	"github.com/LenaDzi1/TimeManager-sub001/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

// respondError logs err and writes the status that matches its kind.
func respondError(c *gin.Context, msg string, err error) {
	log := logger.Logger()
	log.Error(msg, zap.Error(err))
	_ = c.Error(err)

	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrInvalidEvent):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrConnection):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
