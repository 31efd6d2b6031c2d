package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Profile is the onboarding questionnaire a user fills in once. Every
// field is optional: an empty value simply means the user skipped it, and
// the prompt builder omits it from the digest.
type Profile struct {
	Profile             *BasicProfile        `json:"profile,omitempty"`
	Health              *HealthProfile       `json:"health,omitempty"`
	Work                *WorkProfile         `json:"work,omitempty"`
	FoodPreferences     *FoodPreferences     `json:"foodPreferences,omitempty"`
	ClothingPreferences *ClothingPreferences `json:"clothingPreferences,omitempty"`
	TaskStyle           *TaskStyle           `json:"taskStyle,omitempty"`
	DecisionStyle       *DecisionStyle       `json:"decisionStyle,omitempty"`
}

type BasicProfile struct {
	Age             int    `json:"age,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Occupation      string `json:"occupation,omitempty"`
	Location        string `json:"location,omitempty"`
	LivingSituation string `json:"livingSituation,omitempty"`
}

type HealthProfile struct {
	DietaryType   string   `json:"dietaryType,omitempty"`
	Allergies     []string `json:"allergies,omitempty"`
	HealthGoal    string   `json:"healthGoal,omitempty"`
	ActivityLevel string   `json:"activityLevel,omitempty"`
	EatingPattern string   `json:"eatingPattern,omitempty"`
}

type WorkProfile struct {
	Schedule          string `json:"schedule,omitempty"`
	Location          string `json:"location,omitempty"`
	CommuteTime       string `json:"commuteTime,omitempty"`
	LunchBreak        string `json:"lunchBreak,omitempty"`
	StressLevel       int    `json:"stressLevel,omitempty"`
	DailyScheduleType string `json:"dailyScheduleType,omitempty"`
}

type FoodPreferences struct {
	Cuisines       []string `json:"cuisines,omitempty"`
	SpiceTolerance int      `json:"spiceTolerance,omitempty"`
	Budget         string   `json:"budget,omitempty"`
	CookingHabits  string   `json:"cookingHabits,omitempty"`
	EatingStyles   []string `json:"eatingStyles,omitempty"`
}

type ClothingPreferences struct {
	FashionStyles      []string `json:"fashionStyles,omitempty"`
	WeatherSensitivity string   `json:"weatherSensitivity,omitempty"`
	ColorPreferences   []string `json:"colorPreferences,omitempty"`
	ComfortPriority    int      `json:"comfortPriority,omitempty"`
	DressCode          string   `json:"dressCode,omitempty"`
}

type TaskStyle struct {
	EnergyPeak        string `json:"energyPeak,omitempty"`
	PriorityMethod    string `json:"priorityMethod,omitempty"`
	WorkBlockDuration string `json:"workBlockDuration,omitempty"`
	Procrastination   int    `json:"procrastination,omitempty"`
	Multitasking      string `json:"multitasking,omitempty"`
}

type DecisionStyle struct {
	Novelty             int    `json:"novelty,omitempty"`
	BudgetConsciousness string `json:"budgetConsciousness,omitempty"`
	TimeAvailability    string `json:"timeAvailability,omitempty"`
	DecisionConfidence  string `json:"decisionConfidence,omitempty"`
}

// Value serializes the profile to JSON for storage in a single column.
func (p Profile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan deserializes the profile from its JSON column.
func (p *Profile) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*p = Profile{}
		return nil
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	default:
		return fmt.Errorf("unsupported profile column type %T", src)
	}
}
