package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/llm"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidDecisionType = errors.New("invalid decision type")
)

// How many historical favorites are blended in ahead of the fallback
// catalog, and the option list cap.
const (
	topOptionCount = 2
	maxOptions     = 4
)

// Suggester is the slice of the provider adapter the orchestrator needs.
type Suggester interface {
	Suggest(ctx context.Context, provider llm.Provider, apiKey, prompt string) (*llm.Suggestion, error)
}

type RecommendationService interface {
	// GetRecommendation runs one full recommendation cycle and persists
	// the resulting decision. Provider errors from a configured key
	// propagate unmodified with nothing persisted; a missing key silently
	// degrades to history + fallback options.
	GetRecommendation(ctx context.Context, userID, decisionType string, reqCtx models.DecisionContext, question string) (*models.Decision, error)
	History(userID string, limit int) ([]models.Decision, error)
}

type recommendationService struct {
	users     repository.UserRepository
	prefs     repository.PreferenceRepository
	decisions repository.DecisionRepository
	keys      KeyStore
	suggester Suggester
	logger    *zap.Logger
}

func NewRecommendationService(
	users repository.UserRepository,
	prefs repository.PreferenceRepository,
	decisions repository.DecisionRepository,
	keys KeyStore,
	suggester Suggester,
	logger *zap.Logger,
) RecommendationService {
	return &recommendationService{
		users:     users,
		prefs:     prefs,
		decisions: decisions,
		keys:      keys,
		suggester: suggester,
		logger:    logger,
	}
}

func (s *recommendationService) GetRecommendation(ctx context.Context, userID, decisionType string, reqCtx models.DecisionContext, question string) (*models.Decision, error) {
	if !models.ValidDecisionType(decisionType) {
		return nil, ErrInvalidDecisionType
	}

	user, err := s.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("Failed to load user", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	snapshot, err := s.prefs.Snapshot(userID, decisionType)
	if err != nil {
		s.logger.Error("Failed to load preference snapshot", zap.Error(err))
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	profile, err := s.users.GetProfile(userID)
	if err != nil {
		// The profile only enriches the prompt; a load failure should not
		// block the recommendation.
		s.logger.Warn("Failed to load onboarding profile", zap.Error(err))
		profile = nil
	}

	suggestion, err := s.liveSuggestion(ctx, user, decisionType, reqCtx, snapshot, profile)
	if err != nil {
		return nil, err
	}

	aiText := ""
	providerUsed := models.ProviderFallback
	if suggestion != nil {
		aiText = suggestion.Text
		providerUsed = string(suggestion.Provider)
	}

	topOptions := TopOptions(snapshot, topOptionCount)
	options := BlendOptions(aiText, FallbackOptions(decisionType), topOptions, maxOptions)

	confidence := CalculateConfidence(snapshot, options[0])
	if suggestion != nil {
		// A live AI answer is never reported below 70% confidence.
		confidence = math.Max(0.7, confidence)
	}

	if question == "" {
		question = defaultQuestion(decisionType)
	}

	decision := &models.Decision{
		ID:           uuid.New().String(),
		UserID:       userID,
		Type:         decisionType,
		Question:     question,
		Weather:      nullable(reqCtx.Weather),
		TimeOfDay:    nullable(reqCtx.Time),
		Location:     nullable(reqCtx.Location),
		Options:      options,
		AISuggestion: nullable(aiText),
		ProviderUsed: providerUsed,
		Confidence:   confidence,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.decisions.SaveDecision(decision); err != nil {
		s.logger.Error("Failed to save decision", zap.Error(err))
		return nil, fmt.Errorf("failed to save decision: %w", err)
	}

	s.logger.Info("Recommendation created",
		zap.String("decision_id", decision.ID),
		zap.String("type", decisionType),
		zap.String("provider", providerUsed),
		zap.Float64("confidence", confidence))

	return decision, nil
}

// liveSuggestion attempts one AI call with the user's configured provider.
// nil,nil means no key is set up, in which case the caller degrades to
// fallback options. Any provider failure propagates as-is.
func (s *recommendationService) liveSuggestion(ctx context.Context, user *models.User, decisionType string, reqCtx models.DecisionContext, snapshot map[string]float64, profile *models.Profile) (*llm.Suggestion, error) {
	provider := llm.Provider(user.PreferredProvider)
	if provider == "" {
		provider = llm.ProviderOpenRouter
	}

	apiKey, err := s.keys.DecryptedKey(user.ID, provider)
	if err != nil {
		return nil, err
	}
	if apiKey == "" {
		s.logger.Debug("No API key configured, serving fallback options",
			zap.String("user_id", user.ID),
			zap.String("provider", string(provider)))
		return nil, nil
	}

	prompt := BuildPrompt(decisionType, reqCtx, snapshot, profile)
	return s.suggester.Suggest(ctx, provider, apiKey, prompt)
}

func (s *recommendationService) History(userID string, limit int) ([]models.Decision, error) {
	if limit <= 0 {
		limit = 6
	}
	return s.decisions.ListDecisionsByUser(userID, limit)
}

func defaultQuestion(decisionType string) string {
	switch decisionType {
	case models.TypeMeal:
		return "What should I eat today?"
	case models.TypeClothing:
		return "What should I wear today?"
	}
	return "What should I do today?"
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
