package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/concentria/internal/adapters/export"
	"github.com/comitanigiacomo/concentria/internal/core/domain"
)

var errInvalidQuery = errors.New("invalid query parameter")

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNoData) || errors.Is(err, domain.ErrNoMatchingSessions):
		c.JSON(http.StatusOK, gin.H{"message": err.Error()})

	case errors.Is(err, domain.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})

	case errors.Is(err, errInvalidQuery),
		errors.Is(err, export.ErrUnknownFormat),
		errors.Is(err, domain.ErrTitleRequired),
		errors.Is(err, domain.ErrDurationRequired),
		errors.Is(err, domain.ErrInvalidDuration),
		errors.Is(err, domain.ErrInvalidHardness),
		errors.Is(err, domain.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, domain.ErrPersist):
		log.Printf("[ERROR] Request %s %s could not be saved: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to persist",
			"message": "the entry is kept in memory, the file could not be written",
		})

	default:
		log.Printf("[ERROR] Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
