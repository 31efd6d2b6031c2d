package repository

import (
	"fmt"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type FeedbackRepository interface {
	// SaveFeedbackWithPreference persists the feedback record and applies
	// the preference increment in one transaction, so a failed preference
	// write never leaves orphaned feedback behind.
	SaveFeedbackWithPreference(feedback *models.Feedback, weight float64) error
	CountFeedbackByUser(userID string) (int, error)
	AverageRatingByUser(userID string) (float64, error)
}

type feedbackRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewFeedbackRepository(db *sqlx.DB, log *logrus.Logger) FeedbackRepository {
	return &feedbackRepository{db: db, log: log}
}

func (r *feedbackRepository) SaveFeedbackWithPreference(feedback *models.Feedback, weight float64) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO feedback (id, decision_id, user_id, type, chosen_option, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := tx.Exec(query,
		feedback.ID, feedback.DecisionID, feedback.UserID, feedback.Type,
		feedback.ChosenOption, feedback.Rating, feedback.CreatedAt); err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}

	if err := incrementPreference(tx, feedback.UserID, feedback.Type, feedback.ChosenOption, weight); err != nil {
		return fmt.Errorf("failed to update preference: %w", err)
	}

	return tx.Commit()
}

func (r *feedbackRepository) CountFeedbackByUser(userID string) (int, error) {
	var count int
	if err := r.db.Get(&count, `SELECT COUNT(*) FROM feedback WHERE user_id = $1`, userID); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *feedbackRepository) AverageRatingByUser(userID string) (float64, error) {
	var avg []float64
	query := `SELECT AVG(rating) FROM feedback WHERE user_id = $1 AND rating IS NOT NULL GROUP BY user_id`
	if err := r.db.Select(&avg, query, userID); err != nil {
		return 0, err
	}
	if len(avg) == 0 {
		return 0, nil
	}
	return avg[0], nil
}
