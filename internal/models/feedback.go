package models

import "time"

// Feedback is one user rating of a past decision. Immutable.
type Feedback struct {
	ID           string    `db:"id"`
	DecisionID   string    `db:"decision_id"`
	UserID       string    `db:"user_id"`
	Type         string    `db:"type"`
	ChosenOption string    `db:"chosen_option"`
	Rating       int       `db:"rating"`
	CreatedAt    time.Time `db:"created_at"`
}
