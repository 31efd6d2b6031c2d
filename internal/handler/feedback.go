package handler

import (
	"errors"
	"net/http"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type FeedbackHandler interface {
	Submit(c *gin.Context)
	Stats(c *gin.Context)
}

type feedbackHandler struct {
	feedbackService service.FeedbackService
	log             *logrus.Logger
}

func NewFeedbackHandler(feedbackService service.FeedbackService, log *logrus.Logger) FeedbackHandler {
	return &feedbackHandler{feedbackService: feedbackService, log: log}
}

type FeedbackRequest struct {
	DecisionID   string `json:"decisionId" binding:"required"`
	ChosenOption string `json:"chosenOption" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
}

func (h *feedbackHandler) Submit(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for feedback: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	snapshot, err := h.feedbackService.RecordFeedback(userID, req.DecisionID, req.ChosenOption, req.Rating)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDecisionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Decision not found"})
		case errors.Is(err, service.ErrInvalidOption), errors.Is(err, service.ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			h.log.Errorf("Failed to record feedback for user %s: %v", userID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to record feedback"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"updatedPreferences": snapshot},
	})
}

func (h *feedbackHandler) Stats(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	stats, err := h.feedbackService.Stats(userID)
	if err != nil {
		h.log.Errorf("Failed to load stats for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": stats})
}
