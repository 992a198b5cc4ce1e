package api

import (
	"errors"
	"net/http"

	"trading-journal-go/internal/journal"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func ok(c *gin.Context, status int, data any) {
	c.JSON(status, Response{Success: true, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Response{Success: false, Message: message})
}

// writeError maps a service error to a status code. Store failures are logged
// and reported with a generic message.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var ve *journal.ValidationError
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ve.Error())
	case errors.Is(err, journal.ErrNotFound):
		fail(c, http.StatusNotFound, "record not found")
	default:
		log.Error("Request failed",
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		fail(c, http.StatusInternalServerError, "internal server error")
	}
}
