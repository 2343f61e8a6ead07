package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"reddit-persona/internal/domain"
	"reddit-persona/internal/reddit"
	"reddit-persona/internal/repository"
	"reddit-persona/internal/service"
)

// personaGenerator abstrae el servicio para poder testear el handler.
type personaGenerator interface {
	GeneratePersona(ctx context.Context, username string) (domain.AnalysisRun, error)
	LatestRun(ctx context.Context, username string) (domain.AnalysisRun, error)
}

// PersonaHandler mantiene dependencias para endpoints de analisis.
type PersonaHandler struct {
	logger *zap.Logger
	svc    personaGenerator
}

func NewPersonaHandler(logger *zap.Logger, svc personaGenerator) *PersonaHandler {
	return &PersonaHandler{logger: logger, svc: svc}
}

// GeneratePersona maneja POST /personas.
func (h *PersonaHandler) GeneratePersona(c *gin.Context) {
	var req struct {
		Username   string `json:"username"`
		ProfileURL string `json:"profile_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid generate persona request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	username := req.Username
	if username == "" && req.ProfileURL != "" {
		extracted, err := reddit.ExtractUsername(req.ProfileURL)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile url"})
			return
		}
		username = extracted
	}
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username or profile_url required"})
		return
	}

	run, err := h.svc.GeneratePersona(c.Request.Context(), username)
	if err != nil {
		h.logger.Error("generate persona failed", zap.Error(err), zap.String("username", username))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not generate persona"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"run": run})
}

// GetLatestPersona maneja GET /personas/:username.
func (h *PersonaHandler) GetLatestPersona(c *gin.Context) {
	username := c.Param("username")

	run, err := h.svc.LatestRun(c.Request.Context(), username)
	switch {
	case errors.Is(err, service.ErrStorageDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run storage not configured"})
		return
	case errors.Is(err, repository.ErrRunNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "no persona stored for user"})
		return
	case err != nil:
		h.logger.Error("fetch latest run failed", zap.Error(err), zap.String("username", username))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fetch persona"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"run": run})
}
