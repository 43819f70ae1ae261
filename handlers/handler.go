package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"delivery-chain/logger"
	"delivery-chain/models"
	"delivery-chain/session"
)

// Handler serves the HTTP surface over the session facade.
type Handler struct {
	facade   *session.Facade
	secret   []byte
	tokenTTL time.Duration
	log      *logger.Logger
}

func New(f *session.Facade, secret []byte, tokenTTL time.Duration, log *logger.Logger) *Handler {
	return &Handler{facade: f, secret: secret, tokenTTL: tokenTTL, log: log}
}

// respondError maps domain errors to status codes. Anything unknown is a
// storage failure.
func (h *Handler) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrEmailTaken):
		status = http.StatusConflict
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrNotAuthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrInvalidRole), errors.Is(err, models.ErrEmptyItemList):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrOrderNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(status, gin.H{"error": "Failed to save state"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
