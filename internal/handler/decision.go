package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/llm"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/service"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/weather"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DecisionHandler interface {
	Recommend(c *gin.Context)
	History(c *gin.Context)
}

type decisionHandler struct {
	recommendations service.RecommendationService
	weather         *weather.Client
	log             *logrus.Logger
}

func NewDecisionHandler(recommendations service.RecommendationService, weatherClient *weather.Client, log *logrus.Logger) DecisionHandler {
	return &decisionHandler{recommendations: recommendations, weather: weatherClient, log: log}
}

// DecisionResponse is the public projection of a persisted decision.
type DecisionResponse struct {
	DecisionID   string   `json:"decisionId"`
	Type         string   `json:"type"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	AISuggestion *string  `json:"aiSuggestion"`
	Confidence   float64  `json:"confidence"`
	ProviderUsed string   `json:"providerUsed"`
	CreatedAt    string   `json:"createdAt"`
}

func toDecisionResponse(d *models.Decision) DecisionResponse {
	return DecisionResponse{
		DecisionID:   d.ID,
		Type:         d.Type,
		Question:     d.Question,
		Options:      d.Options,
		AISuggestion: d.Suggestion(),
		Confidence:   d.Confidence,
		ProviderUsed: d.ProviderUsed,
		CreatedAt:    d.CreatedAt.Format(time.RFC3339),
	}
}

func (h *decisionHandler) Recommend(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	decisionType := c.Query("type")
	if !models.ValidDecisionType(decisionType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "type must be one of meal, task, clothing"})
		return
	}

	location := c.Query("location")
	question := c.Query("question")

	current := h.weather.Current(c.Request.Context(), location)
	now := time.Now()

	reqCtx := models.DecisionContext{
		Weather:  weather.Classify(current),
		Time:     fmt.Sprintf("%d:%02d", now.Hour(), now.Minute()),
		Location: location,
	}

	decision, err := h.recommendations.GetRecommendation(c.Request.Context(), userID, decisionType, reqCtx, question)
	if err != nil {
		h.respondRecommendationError(c, err)
		return
	}

	resp := gin.H{
		"success": true,
		"data":    toDecisionResponse(decision),
	}
	if current != nil {
		resp["context"] = gin.H{"weather": current, "context": reqCtx.Weather}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *decisionHandler) respondRecommendationError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "User not found"})
		return
	}
	if errors.Is(err, service.ErrInvalidDecisionType) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	var provErr *llm.ProviderError
	if errors.As(err, &provErr) {
		status := provErr.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"success":  false,
			"error":    provErr.Message,
			"provider": provErr.Provider,
			"kind":     provErr.Kind,
		})
		return
	}

	h.log.Errorf("Recommendation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Something went wrong"})
}

func (h *decisionHandler) History(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	limit := 6
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 50 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "limit must be between 1 and 50"})
			return
		}
		limit = parsed
	}

	decisions, err := h.recommendations.History(userID, limit)
	if err != nil {
		h.log.Errorf("Failed to load history for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load history"})
		return
	}

	history := make([]DecisionResponse, 0, len(decisions))
	for i := range decisions {
		history = append(history, toDecisionResponse(&decisions[i]))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}
