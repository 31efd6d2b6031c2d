package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type PreferenceRepository interface {
	// Snapshot returns the full option->score mapping for one user and
	// decision type. Empty map when nothing has been rated yet.
	Snapshot(userID, decisionType string) (map[string]float64, error)
}

type preferenceRepository struct {
	db  *sqlx.DB
	log *logrus.Logger
}

func NewPreferenceRepository(db *sqlx.DB, log *logrus.Logger) PreferenceRepository {
	return &preferenceRepository{db: db, log: log}
}

type preferenceRow struct {
	Option string  `db:"option"`
	Score  float64 `db:"score"`
}

func (r *preferenceRepository) Snapshot(userID, decisionType string) (map[string]float64, error) {
	var rows []preferenceRow
	query := `SELECT option, score FROM preferences WHERE user_id = $1 AND type = $2`
	if err := r.db.Select(&rows, query, userID, decisionType); err != nil {
		return nil, err
	}

	snapshot := make(map[string]float64, len(rows))
	for _, row := range rows {
		snapshot[row.Option] = row.Score
	}
	return snapshot, nil
}

// incrementPreference is the single-statement atomic accumulator shared by
// the feedback transaction. The upsert avoids read-modify-write races
// between concurrent feedback submissions for the same user.
func incrementPreference(tx *sqlx.Tx, userID, decisionType, option string, weight float64) error {
	query := `INSERT INTO preferences (user_id, type, option, score) VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, type, option) DO UPDATE SET score = score + excluded.score`
	_, err := tx.Exec(query, userID, decisionType, option, weight)
	return err
}
