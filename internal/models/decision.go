package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Decision types supported by the recommendation engine.
const (
	TypeMeal     = "meal"
	TypeTask     = "task"
	TypeClothing = "clothing"
)

// ProviderFallback marks decisions produced without a live AI call.
const ProviderFallback = "fallback"

// ValidDecisionType reports whether t is one of the known decision types.
func ValidDecisionType(t string) bool {
	return t == TypeMeal || t == TypeTask || t == TypeClothing
}

// DecisionContext is the snapshot of external context a decision was made
// under. Weather is an already-classified descriptor (hot, cold, rainy...),
// not raw weather data.
type DecisionContext struct {
	Weather  string `json:"weather,omitempty"`
	Time     string `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
}

// StringList stores an ordered option list as a JSON column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported option list column type %T", src)
	}
}

// Decision is one recommendation event. Immutable once persisted.
type Decision struct {
	ID           string         `db:"id" json:"decisionId"`
	UserID       string         `db:"user_id" json:"-"`
	Type         string         `db:"type" json:"type"`
	Question     string         `db:"question" json:"question"`
	Weather      sql.NullString `db:"weather" json:"-"`
	TimeOfDay    sql.NullString `db:"time_of_day" json:"-"`
	Location     sql.NullString `db:"location" json:"-"`
	Options      StringList     `db:"options" json:"options"`
	AISuggestion sql.NullString `db:"ai_suggestion" json:"-"`
	ProviderUsed string         `db:"provider_used" json:"providerUsed"`
	Confidence   float64        `db:"confidence" json:"confidence"`
	CreatedAt    time.Time      `db:"created_at" json:"createdAt"`
}

// Context reassembles the stored context snapshot.
func (d *Decision) Context() DecisionContext {
	return DecisionContext{
		Weather:  d.Weather.String,
		Time:     d.TimeOfDay.String,
		Location: d.Location.String,
	}
}

// Suggestion returns the AI suggestion or nil when the decision was served
// from fallback options only.
func (d *Decision) Suggestion() *string {
	if !d.AISuggestion.Valid {
		return nil
	}
	s := d.AISuggestion.String
	return &s
}
