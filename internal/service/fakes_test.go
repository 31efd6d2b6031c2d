package service

import (
	"context"
	"database/sql"
	"sort"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/llm"
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"
)

type fakeUserRepo struct {
	users    map[string]*models.User
	profiles map[string]*models.Profile
	apiKeys  map[string]map[string]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*models.User),
		profiles: make(map[string]*models.Profile),
		apiKeys:  make(map[string]map[string]string),
	}
}

func (r *fakeUserRepo) CreateUser(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) GetUserByID(id string) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeUserRepo) SetPreferredProvider(userID, provider string) error {
	if u, ok := r.users[userID]; ok {
		u.PreferredProvider = provider
	}
	return nil
}

func (r *fakeUserRepo) MarkOnboarded(userID string) error {
	if u, ok := r.users[userID]; ok {
		u.Onboarded = true
	}
	return nil
}

func (r *fakeUserRepo) SaveProfile(userID string, profile *models.Profile) error {
	r.profiles[userID] = profile
	return nil
}

func (r *fakeUserRepo) GetProfile(userID string) (*models.Profile, error) {
	return r.profiles[userID], nil
}

func (r *fakeUserRepo) SaveAPIKey(userID, provider, encryptedKey string) error {
	if r.apiKeys[userID] == nil {
		r.apiKeys[userID] = make(map[string]string)
	}
	r.apiKeys[userID][provider] = encryptedKey
	return nil
}

func (r *fakeUserRepo) GetAPIKey(userID, provider string) (string, error) {
	return r.apiKeys[userID][provider], nil
}

func (r *fakeUserRepo) ListAPIKeyProviders(userID string) ([]string, error) {
	providers := []string{}
	for p := range r.apiKeys[userID] {
		providers = append(providers, p)
	}
	sort.Strings(providers)
	return providers, nil
}

type fakePrefStore struct {
	// user -> type -> option -> score
	scores map[string]map[string]map[string]float64
}

func newFakePrefStore() *fakePrefStore {
	return &fakePrefStore{scores: make(map[string]map[string]map[string]float64)}
}

func (r *fakePrefStore) Snapshot(userID, decisionType string) (map[string]float64, error) {
	snapshot := make(map[string]float64)
	for option, score := range r.scores[userID][decisionType] {
		snapshot[option] = score
	}
	return snapshot, nil
}

func (r *fakePrefStore) increment(userID, decisionType, option string, weight float64) {
	if r.scores[userID] == nil {
		r.scores[userID] = make(map[string]map[string]float64)
	}
	if r.scores[userID][decisionType] == nil {
		r.scores[userID][decisionType] = make(map[string]float64)
	}
	r.scores[userID][decisionType][option] += weight
}

type fakeDecisionRepo struct {
	decisions map[string]*models.Decision
	saved     []*models.Decision
}

func newFakeDecisionRepo() *fakeDecisionRepo {
	return &fakeDecisionRepo{decisions: make(map[string]*models.Decision)}
}

func (r *fakeDecisionRepo) SaveDecision(decision *models.Decision) error {
	r.decisions[decision.ID] = decision
	r.saved = append(r.saved, decision)
	return nil
}

func (r *fakeDecisionRepo) GetDecisionByID(id, userID string) (*models.Decision, error) {
	if d, ok := r.decisions[id]; ok && d.UserID == userID {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func (r *fakeDecisionRepo) ListDecisionsByUser(userID string, limit int) ([]models.Decision, error) {
	result := []models.Decision{}
	for i := len(r.saved) - 1; i >= 0 && len(result) < limit; i-- {
		if r.saved[i].UserID == userID {
			result = append(result, *r.saved[i])
		}
	}
	return result, nil
}

func (r *fakeDecisionRepo) CountDecisionsByUser(userID string) (int, error) {
	count := 0
	for _, d := range r.decisions {
		if d.UserID == userID {
			count++
		}
	}
	return count, nil
}

type fakeFeedbackRepo struct {
	prefs *fakePrefStore
	saved []*models.Feedback
}

func (r *fakeFeedbackRepo) SaveFeedbackWithPreference(feedback *models.Feedback, weight float64) error {
	r.saved = append(r.saved, feedback)
	r.prefs.increment(feedback.UserID, feedback.Type, feedback.ChosenOption, weight)
	return nil
}

func (r *fakeFeedbackRepo) CountFeedbackByUser(userID string) (int, error) {
	count := 0
	for _, f := range r.saved {
		if f.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (r *fakeFeedbackRepo) AverageRatingByUser(userID string) (float64, error) {
	sum, count := 0, 0
	for _, f := range r.saved {
		if f.UserID == userID {
			sum += f.Rating
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return float64(sum) / float64(count), nil
}

type fakeKeyStore struct {
	keys map[llm.Provider]string
	err  error
}

func (s *fakeKeyStore) DecryptedKey(userID string, provider llm.Provider) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.keys[provider], nil
}

type fakeSuggester struct {
	suggestion *llm.Suggestion
	err        error

	calls      int
	lastPrompt string
	lastKey    string
}

func (s *fakeSuggester) Suggest(ctx context.Context, provider llm.Provider, apiKey, prompt string) (*llm.Suggestion, error) {
	s.calls++
	s.lastPrompt = prompt
	s.lastKey = apiKey
	if s.err != nil {
		return nil, s.err
	}
	return s.suggestion, nil
}
