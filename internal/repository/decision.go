package repository

import (
	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type DecisionRepository interface {
	SaveDecision(decision *models.Decision) error
	// GetDecisionByID scopes the lookup to the owning user.
	GetDecisionByID(id, userID string) (*models.Decision, error)
	ListDecisionsByUser(userID string, limit int) ([]models.Decision, error)
	CountDecisionsByUser(userID string) (int, error)
}

type decisionRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewDecisionRepository(db *sqlx.DB, log *logrus.Logger) DecisionRepository {
	return &decisionRepository{db: db, log: log}
}

func (r *decisionRepository) SaveDecision(decision *models.Decision) error {
	query := `INSERT INTO decisions
		(id, user_id, type, question, weather, time_of_day, location, options, ai_suggestion, provider_used, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(query,
		decision.ID, decision.UserID, decision.Type, decision.Question,
		decision.Weather, decision.TimeOfDay, decision.Location,
		decision.Options, decision.AISuggestion, decision.ProviderUsed,
		decision.Confidence, decision.CreatedAt)
	return err
}

func (r *decisionRepository) GetDecisionByID(id, userID string) (*models.Decision, error) {
	var decision models.Decision
	query := `SELECT id, user_id, type, question, weather, time_of_day, location, options, ai_suggestion, provider_used, confidence, created_at
		FROM decisions WHERE id = $1 AND user_id = $2`
	if err := r.db.Get(&decision, query, id, userID); err != nil {
		return nil, err
	}
	return &decision, nil
}

func (r *decisionRepository) ListDecisionsByUser(userID string, limit int) ([]models.Decision, error) {
	decisions := []models.Decision{}
	query := `SELECT id, user_id, type, question, weather, time_of_day, location, options, ai_suggestion, provider_used, confidence, created_at
		FROM decisions WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`
	if err := r.db.Select(&decisions, query, userID, limit); err != nil {
		return nil, err
	}
	return decisions, nil
}

func (r *decisionRepository) CountDecisionsByUser(userID string) (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM decisions WHERE user_id = $1`, userID); err != nil {
		return 0, err
	}
	return count, nil
}
