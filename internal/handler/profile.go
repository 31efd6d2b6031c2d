package handler

import (
	"errors"
	"net/http"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProfileHandler interface {
	CompleteOnboarding(c *gin.Context)
	GetProviderSettings(c *gin.Context)
	UpdateProviderSettings(c *gin.Context)
}

type profileHandler struct {
	authService service.AuthService
	log         *logrus.Logger
}

func NewProfileHandler(authService service.AuthService, log *logrus.Logger) ProfileHandler {
	return &profileHandler{authService: authService, log: log}
}

type OnboardingRequest struct {
	Provider string          `json:"provider"`
	APIKey   string          `json:"apiKey" binding:"omitempty,min=3,max=2048"`
	Profile  *models.Profile `json:"profile"`
	Skip     bool            `json:"skip"`
}

type ProviderSettingsRequest struct {
	PreferredProvider string            `json:"preferredProvider"`
	APIKeys           map[string]string `json:"apiKeys"`
}

func (h *profileHandler) CompleteOnboarding(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for onboarding: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	profile := req.Profile
	if req.Skip {
		profile = nil
	}

	if err := h.authService.CompleteOnboarding(userID, profile, req.Provider, req.APIKey); err != nil {
		if errors.Is(err, service.ErrUnknownProvider) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		h.log.Errorf("Failed to complete onboarding for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to complete onboarding"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"onboarded": true}})
}

func (h *profileHandler) GetProviderSettings(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	settings, err := h.authService.GetProviderSettings(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
			return
		}
		h.log.Errorf("Failed to load provider settings for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": settings})
}

func (h *profileHandler) UpdateProviderSettings(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var req ProviderSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for provider settings: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := h.authService.UpdateProviderSettings(userID, req.PreferredProvider, req.APIKeys); err != nil {
		if errors.Is(err, service.ErrUnknownProvider) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		h.log.Errorf("Failed to update provider settings for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"updated": true}})
}
