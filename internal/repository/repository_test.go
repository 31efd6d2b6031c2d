package repository

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func insertUser(t *testing.T, repo UserRepository) *models.User {
	t.Helper()
	user := &models.User{
		ID:                uuid.New().String(),
		Name:              "Sam",
		Email:             "sam@example.com",
		PasswordHash:      "$argon2id$v=19$m=65536,t=1,p=4$salt$hash",
		PreferredProvider: "openrouter",
		CreatedAt:         time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.CreateUser(user))
	return user
}

func TestUserRepository(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db, testLogger())

	user := insertUser(t, repo)

	byEmail, err := repo.GetUserByEmail("sam@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
	assert.Equal(t, "openrouter", byEmail.PreferredProvider)
	assert.False(t, byEmail.Onboarded)

	byID, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, byID.Email)

	_, err = repo.GetUserByEmail("missing@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)

	require.NoError(t, repo.SetPreferredProvider(user.ID, "groq"))
	require.NoError(t, repo.MarkOnboarded(user.ID))

	updated, err := repo.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "groq", updated.PreferredProvider)
	assert.True(t, updated.Onboarded)
}

func TestUserRepositoryProfile(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db, testLogger())
	user := insertUser(t, repo)

	loaded, err := repo.GetProfile(user.ID)
	require.NoError(t, err)
	assert.Nil(t, loaded)

	profile := &models.Profile{
		Profile: &models.BasicProfile{Age: 29, Occupation: "nurse"},
		Health:  &models.HealthProfile{DietaryType: "vegetarian", Allergies: []string{"peanuts"}},
	}
	require.NoError(t, repo.SaveProfile(user.ID, profile))

	loaded, err = repo.GetProfile(user.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.NotNil(t, loaded.Profile)
	assert.Equal(t, 29, loaded.Profile.Age)
	require.NotNil(t, loaded.Health)
	assert.Equal(t, []string{"peanuts"}, loaded.Health.Allergies)
	assert.Nil(t, loaded.TaskStyle)
}

func TestUserRepositoryAPIKeys(t *testing.T) {
	db := testDB(t)
	repo := NewUserRepository(db, testLogger())
	user := insertUser(t, repo)

	key, err := repo.GetAPIKey(user.ID, "openrouter")
	require.NoError(t, err)
	assert.Empty(t, key)

	require.NoError(t, repo.SaveAPIKey(user.ID, "openrouter", "encrypted-1"))
	require.NoError(t, repo.SaveAPIKey(user.ID, "groq", "encrypted-2"))

	key, err = repo.GetAPIKey(user.ID, "openrouter")
	require.NoError(t, err)
	assert.Equal(t, "encrypted-1", key)

	// Saving again replaces the stored key.
	require.NoError(t, repo.SaveAPIKey(user.ID, "openrouter", "encrypted-3"))
	key, err = repo.GetAPIKey(user.ID, "openrouter")
	require.NoError(t, err)
	assert.Equal(t, "encrypted-3", key)

	providers, err := repo.ListAPIKeyProviders(user.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"groq", "openrouter"}, providers)
}

func TestDecisionRepositoryRoundTrip(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db, testLogger())
	repo := NewDecisionRepository(db, testLogger())
	user := insertUser(t, users)

	decision := &models.Decision{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		Type:         models.TypeMeal,
		Question:     "What should I eat today?",
		Weather:      sql.NullString{String: "sunny", Valid: true},
		TimeOfDay:    sql.NullString{String: "12:30", Valid: true},
		Options:      models.StringList{"Grilled salmon", "Tacos", "Pizza", "Salad"},
		AISuggestion: sql.NullString{String: "Grilled salmon", Valid: true},
		ProviderUsed: "openrouter",
		Confidence:   0.7,
		CreatedAt:    time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, repo.SaveDecision(decision))

	loaded, err := repo.GetDecisionByID(decision.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, decision.Question, loaded.Question)
	assert.Equal(t, decision.Options, loaded.Options)
	assert.Equal(t, "Grilled salmon", loaded.AISuggestion.String)
	assert.Equal(t, "openrouter", loaded.ProviderUsed)
	assert.Equal(t, 0.7, loaded.Confidence)
	assert.Equal(t, "sunny", loaded.Context().Weather)
	assert.False(t, loaded.Location.Valid)

	// Lookup is scoped to the owning user.
	_, err = repo.GetDecisionByID(decision.ID, "someone-else")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestDecisionRepositoryList(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db, testLogger())
	repo := NewDecisionRepository(db, testLogger())
	user := insertUser(t, users)

	base := time.Now().UTC().Truncate(time.Second).Add(-time.Hour)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveDecision(&models.Decision{
			ID:           uuid.New().String(),
			UserID:       user.ID,
			Type:         models.TypeTask,
			Question:     "What should I do today?",
			Options:      models.StringList{"Go for a walk"},
			ProviderUsed: models.ProviderFallback,
			Confidence:   0.5,
			CreatedAt:    base.Add(time.Duration(i) * time.Minute),
		}))
	}

	decisions, err := repo.ListDecisionsByUser(user.ID, 3)
	require.NoError(t, err)
	require.Len(t, decisions, 3)
	// Newest first.
	assert.True(t, decisions[0].CreatedAt.After(decisions[2].CreatedAt))

	count, err := repo.CountDecisionsByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	empty, err := repo.ListDecisionsByUser("someone-else", 10)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFeedbackAccumulatesPreferences(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db, testLogger())
	feedback := NewFeedbackRepository(db, testLogger())
	prefs := NewPreferenceRepository(db, testLogger())
	user := insertUser(t, users)

	snapshot, err := prefs.Snapshot(user.ID, models.TypeMeal)
	require.NoError(t, err)
	assert.Empty(t, snapshot)

	ratings := []int{5, 3, 4}
	for _, rating := range ratings {
		require.NoError(t, feedback.SaveFeedbackWithPreference(&models.Feedback{
			ID:           uuid.New().String(),
			DecisionID:   "decision-1",
			UserID:       user.ID,
			Type:         models.TypeMeal,
			ChosenOption: "Tacos",
			Rating:       rating,
			CreatedAt:    time.Now().UTC(),
		}, float64(rating)/5))
	}

	snapshot, err = prefs.Snapshot(user.ID, models.TypeMeal)
	require.NoError(t, err)
	assert.InDelta(t, 1.0+0.6+0.8, snapshot["Tacos"], 1e-9)

	count, err := feedback.CountFeedbackByUser(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	avg, err := feedback.AverageRatingByUser(user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, avg, 1e-9)
}

func TestAverageRatingEmpty(t *testing.T) {
	db := testDB(t)
	feedback := NewFeedbackRepository(db, testLogger())

	avg, err := feedback.AverageRatingByUser("nobody")
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
}

func TestPreferencesIsolatedByType(t *testing.T) {
	db := testDB(t)
	users := NewUserRepository(db, testLogger())
	feedback := NewFeedbackRepository(db, testLogger())
	prefs := NewPreferenceRepository(db, testLogger())
	user := insertUser(t, users)

	require.NoError(t, feedback.SaveFeedbackWithPreference(&models.Feedback{
		ID:           uuid.New().String(),
		DecisionID:   "decision-1",
		UserID:       user.ID,
		Type:         models.TypeMeal,
		ChosenOption: "Tacos",
		Rating:       5,
		CreatedAt:    time.Now().UTC(),
	}, 1.0))

	snapshot, err := prefs.Snapshot(user.ID, models.TypeTask)
	require.NoError(t, err)
	assert.Empty(t, snapshot)
}
