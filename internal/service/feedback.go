package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrDecisionNotFound = errors.New("decision not found")
	ErrInvalidOption    = errors.New("invalid option selected")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// UserStats summarizes a user's learning history for the dashboard.
type UserStats struct {
	TotalDecisions int                 `json:"totalDecisions"`
	TotalFeedback  int                 `json:"totalFeedback"`
	AverageRating  float64             `json:"averageRating"`
	TopPreferences map[string][]string `json:"topPreferences"`
}

type FeedbackService interface {
	// RecordFeedback validates the rating against the referenced decision
	// and folds it into the preference store. Returns the updated
	// per-type preference snapshot.
	RecordFeedback(userID, decisionID, chosenOption string, rating int) (map[string]float64, error)
	Stats(userID string) (*UserStats, error)
}

type feedbackService struct {
	decisions repository.DecisionRepository
	feedback  repository.FeedbackRepository
	prefs     repository.PreferenceRepository
	logger    *zap.Logger
}

func NewFeedbackService(
	decisions repository.DecisionRepository,
	feedback repository.FeedbackRepository,
	prefs repository.PreferenceRepository,
	logger *zap.Logger,
) FeedbackService {
	return &feedbackService{
		decisions: decisions,
		feedback:  feedback,
		prefs:     prefs,
		logger:    logger,
	}
}

func (s *feedbackService) RecordFeedback(userID, decisionID, chosenOption string, rating int) (map[string]float64, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	decision, err := s.decisions.GetDecisionByID(decisionID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDecisionNotFound
		}
		s.logger.Error("Failed to load decision", zap.String("decision_id", decisionID), zap.Error(err))
		return nil, fmt.Errorf("failed to load decision: %w", err)
	}

	valid := false
	for _, opt := range decision.Options {
		if opt == chosenOption {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidOption
	}

	fb := &models.Feedback{
		ID:           uuid.New().String(),
		DecisionID:   decision.ID,
		UserID:       userID,
		Type:         decision.Type,
		ChosenOption: chosenOption,
		Rating:       rating,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.feedback.SaveFeedbackWithPreference(fb, FeedbackWeight(rating)); err != nil {
		s.logger.Error("Failed to record feedback", zap.Error(err))
		return nil, fmt.Errorf("failed to record feedback: %w", err)
	}

	s.logger.Info("Feedback recorded",
		zap.String("decision_id", decision.ID),
		zap.String("type", decision.Type),
		zap.Int("rating", rating))

	return s.prefs.Snapshot(userID, decision.Type)
}

func (s *feedbackService) Stats(userID string) (*UserStats, error) {
	totalDecisions, err := s.decisions.CountDecisionsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count decisions: %w", err)
	}

	totalFeedback, err := s.feedback.CountFeedbackByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback: %w", err)
	}

	avgRating, err := s.feedback.AverageRatingByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}

	top := make(map[string][]string, 2)
	for _, decisionType := range []string{models.TypeMeal, models.TypeTask} {
		snapshot, err := s.prefs.Snapshot(userID, decisionType)
		if err != nil {
			return nil, fmt.Errorf("failed to load preferences: %w", err)
		}
		options := TopOptions(snapshot, 3)
		if options == nil {
			options = []string{}
		}
		top[decisionType] = options
	}

	return &UserStats{
		TotalDecisions: totalDecisions,
		TotalFeedback:  totalFeedback,
		AverageRating:  avgRating,
		TopPreferences: top,
	}, nil
}
