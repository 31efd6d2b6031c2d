package service

import (
	"context"
	"testing"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/llm"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRecommendationFixture(t *testing.T) (*fakeUserRepo, *fakePrefStore, *fakeDecisionRepo, *fakeKeyStore, *fakeSuggester, RecommendationService) {
	t.Helper()

	users := newFakeUserRepo()
	prefs := newFakePrefStore()
	decisions := newFakeDecisionRepo()
	keys := &fakeKeyStore{keys: map[llm.Provider]string{}}
	suggester := &fakeSuggester{}

	svc := NewRecommendationService(users, prefs, decisions, keys, suggester, zap.NewNop())
	return users, prefs, decisions, keys, suggester, svc
}

func seedUser(users *fakeUserRepo, provider string) *models.User {
	user := &models.User{
		ID:                "user-1",
		Name:              "Sam",
		Email:             "sam@example.com",
		PreferredProvider: provider,
	}
	users.users[user.ID] = user
	return user
}

func TestGetRecommendationFallbackWithoutKey(t *testing.T) {
	users, _, decisions, _, suggester, svc := newRecommendationFixture(t)
	seedUser(users, "openrouter")

	decision, err := svc.GetRecommendation(context.Background(), "user-1", models.TypeMeal, models.DecisionContext{}, "")
	require.NoError(t, err)

	assert.Equal(t, 0, suggester.calls, "no provider call without an API key")
	assert.Equal(t, models.ProviderFallback, decision.ProviderUsed)
	assert.False(t, decision.AISuggestion.Valid)
	assert.Equal(t, 0.5, decision.Confidence)
	assert.Len(t, decision.Options, 4)
	assert.Contains(t, decision.Options, "Pizza")
	assert.Equal(t, "What should I eat today?", decision.Question)

	require.Len(t, decisions.saved, 1)
	assert.Equal(t, decision.ID, decisions.saved[0].ID)
}

func TestGetRecommendationProviderErrorPersistsNothing(t *testing.T) {
	users, _, decisions, keys, suggester, svc := newRecommendationFixture(t)
	seedUser(users, "groq")
	keys.keys[llm.ProviderGroq] = "gsk-test"
	suggester.err = &llm.ProviderError{
		Provider:   llm.ProviderGroq,
		Kind:       llm.KindUnavailable,
		StatusCode: 408,
		Message:    "Groq took too long to respond. Please try again.",
	}

	_, err := svc.GetRecommendation(context.Background(), "user-1", models.TypeMeal, models.DecisionContext{}, "")
	require.Error(t, err)

	var provErr *llm.ProviderError
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, llm.KindUnavailable, provErr.Kind)
	assert.Equal(t, 408, provErr.StatusCode)
	assert.Equal(t, llm.ProviderGroq, provErr.Provider)

	assert.Empty(t, decisions.saved, "failed recommendations must not be persisted")
}

func TestGetRecommendationHistoryPrimary(t *testing.T) {
	users, prefs, _, _, _, svc := newRecommendationFixture(t)
	seedUser(users, "openrouter")
	prefs.increment("user-1", models.TypeMeal, "Tacos", 6)

	decision, err := svc.GetRecommendation(context.Background(), "user-1", models.TypeMeal, models.DecisionContext{}, "")
	require.NoError(t, err)

	assert.Equal(t, "Tacos", decision.Options[0])
	assert.InDelta(t, 0.6, decision.Confidence, 1e-9)
	assert.Equal(t, models.ProviderFallback, decision.ProviderUsed)
}

func TestGetRecommendationLiveSuggestion(t *testing.T) {
	users, prefs, decisions, keys, suggester, svc := newRecommendationFixture(t)
	seedUser(users, "openrouter")
	keys.keys[llm.ProviderOpenRouter] = "sk-or-test"
	prefs.increment("user-1", models.TypeMeal, "Tacos", 3)
	suggester.suggestion = &llm.Suggestion{
		Text:     "Grilled salmon with asparagus",
		Provider: llm.ProviderOpenRouter,
	}

	decision, err := svc.GetRecommendation(context.Background(), "user-1", models.TypeMeal, models.DecisionContext{Weather: "sunny", Time: "12:30"}, "")
	require.NoError(t, err)

	assert.Equal(t, 1, suggester.calls)
	assert.Equal(t, "sk-or-test", suggester.lastKey)
	assert.Contains(t, suggester.lastPrompt, "sunny")

	assert.Equal(t, "Grilled salmon with asparagus", decision.Options[0])
	assert.Equal(t, "openrouter", decision.ProviderUsed)
	require.True(t, decision.AISuggestion.Valid)
	assert.Equal(t, "Grilled salmon with asparagus", decision.AISuggestion.String)
	assert.GreaterOrEqual(t, decision.Confidence, 0.7)
	assert.LessOrEqual(t, len(decision.Options), 4)

	require.Len(t, decisions.saved, 1)
}

func TestGetRecommendationDefaultsProviderToOpenRouter(t *testing.T) {
	users, _, _, keys, suggester, svc := newRecommendationFixture(t)
	seedUser(users, "")
	keys.keys[llm.ProviderOpenRouter] = "sk-or-test"
	suggester.suggestion = &llm.Suggestion{Text: "Veggie stir fry", Provider: llm.ProviderOpenRouter}

	decision, err := svc.GetRecommendation(context.Background(), "user-1", models.TypeMeal, models.DecisionContext{}, "")
	require.NoError(t, err)
	assert.Equal(t, "openrouter", decision.ProviderUsed)
}

func TestGetRecommendationUnknownUser(t *testing.T) {
	_, _, _, _, _, svc := newRecommendationFixture(t)

	_, err := svc.GetRecommendation(context.Background(), "nobody", models.TypeMeal, models.DecisionContext{}, "")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetRecommendationInvalidType(t *testing.T) {
	users, _, _, _, _, svc := newRecommendationFixture(t)
	seedUser(users, "openrouter")

	_, err := svc.GetRecommendation(context.Background(), "user-1", "music", models.DecisionContext{}, "")
	assert.ErrorIs(t, err, ErrInvalidDecisionType)
}

func TestGetRecommendationDefaultQuestions(t *testing.T) {
	users, _, _, _, _, svc := newRecommendationFixture(t)
	seedUser(users, "openrouter")

	cases := map[string]string{
		models.TypeMeal:     "What should I eat today?",
		models.TypeClothing: "What should I wear today?",
		models.TypeTask:     "What should I do today?",
	}
	for decisionType, want := range cases {
		decision, err := svc.GetRecommendation(context.Background(), "user-1", decisionType, models.DecisionContext{}, "")
		require.NoError(t, err)
		assert.Equal(t, want, decision.Question)
	}
}

func TestGetRecommendationKeepsCustomQuestion(t *testing.T) {
	users, _, _, _, _, svc := newRecommendationFixture(t)
	seedUser(users, "openrouter")

	decision, err := svc.GetRecommendation(context.Background(), "user-1", models.TypeTask, models.DecisionContext{}, "What should I tackle first?")
	require.NoError(t, err)
	assert.Equal(t, "What should I tackle first?", decision.Question)
}

func TestHistoryDefaultLimit(t *testing.T) {
	users, _, _, _, _, svc := newRecommendationFixture(t)
	seedUser(users, "openrouter")

	for i := 0; i < 8; i++ {
		_, err := svc.GetRecommendation(context.Background(), "user-1", models.TypeMeal, models.DecisionContext{}, "")
		require.NoError(t, err)
	}

	history, err := svc.History("user-1", 0)
	require.NoError(t, err)
	assert.Len(t, history, 6)

	history, err = svc.History("user-1", 3)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}
