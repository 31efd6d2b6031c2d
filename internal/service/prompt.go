package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/blezecon/X0R-AMUHACKS5.0/internal/models"
)

// BuildPrompt renders the provider-agnostic instruction for one
// recommendation request. Pure and deterministic: missing context and
// profile fields are simply omitted, never an error.
func BuildPrompt(decisionType string, ctx models.DecisionContext, snapshot map[string]float64, profile *models.Profile) string {
	weather := ctx.Weather
	if weather == "" {
		weather = "neutral"
	}
	timeOfDay := ctx.Time
	if timeOfDay == "" {
		timeOfDay = "current"
	}

	prefs := formatTopPreferences(snapshot)
	profileSection := ""
	if digest := profileDigest(decisionType, profile); digest != "" {
		profileSection = "\nUser profile:\n" + digest + "\n"
	}

	switch decisionType {
	case models.TypeMeal:
		return fmt.Sprintf(`You are a helpful meal recommendation assistant.

Context:
- Weather: %s
- Time: %s
%s
User's past favorites: %s

Suggest ONE meal option that:
1. Fits the weather and time of day
2. Respects dietary restrictions and allergies
3. Matches cuisine preferences and budget
4. Is specific and actionable (not just "pasta" but "Creamy garlic pasta with spinach")

Respond with ONLY the meal name/description, nothing else. Keep it under 10 words.`,
			weather, timeOfDay, profileSection, prefs)

	case models.TypeTask:
		return fmt.Sprintf(`You are a helpful productivity assistant.

Context:
- Time: %s
- Weather: %s
%s
User's past favorites: %s

Suggest ONE daily task that:
1. Matches current energy level and time of day
2. Fits the user's work style and schedule
3. Takes 10-30 minutes
4. Is specific and actionable

Respond with ONLY the task description, nothing else. Keep it under 12 words.`,
			timeOfDay, weather, profileSection, prefs)

	case models.TypeClothing:
		return fmt.Sprintf(`You are a helpful outfit recommendation assistant.

Context:
- Weather: %s
- Time: %s
%s
User's past favorites: %s

Suggest ONE outfit idea that:
1. Fits the weather conditions
2. Matches the user's style, dress code, and color preferences
3. Is specific and wearable
4. Prioritizes comfort based on user preference

Respond with ONLY the outfit description, nothing else. Keep it under 12 words.`,
			weather, timeOfDay, profileSection, prefs)
	}

	return ""
}

// formatTopPreferences renders the 5 best-scored options as
// "label (NN%)" where 100% corresponds to the max assumed score.
func formatTopPreferences(snapshot map[string]float64) string {
	if len(snapshot) == 0 {
		return "None yet"
	}

	type entry struct {
		option string
		score  float64
	}

	entries := make([]entry, 0, len(snapshot))
	for option, score := range snapshot {
		entries = append(entries, entry{option, score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].score != entries[j].score {
			return entries[i].score > entries[j].score
		}
		return entries[i].option < entries[j].option
	})

	if len(entries) > 5 {
		entries = entries[:5]
	}

	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s (%.0f%%)", e.option, e.score/maxAssumedScore*100))
	}
	return strings.Join(parts, ", ")
}

// profileDigest flattens the onboarding sections relevant to a decision
// type into "Label: value" lines.
func profileDigest(decisionType string, p *models.Profile) string {
	if p == nil {
		return ""
	}

	var parts []string
	push := func(label, value string) {
		if value != "" {
			parts = append(parts, label+": "+value)
		}
	}
	pushN := func(label string, value int) {
		if value > 0 {
			parts = append(parts, fmt.Sprintf("%s: %d/5", label, value))
		}
	}
	pushList := func(label string, values []string) {
		if len(values) > 0 {
			parts = append(parts, label+": "+strings.Join(values, ", "))
		}
	}

	if bp := p.Profile; bp != nil {
		if bp.Age > 0 {
			parts = append(parts, fmt.Sprintf("Age: %d", bp.Age))
		}
		push("Gender", bp.Gender)
		push("Occupation", bp.Occupation)
		push("Living", bp.LivingSituation)
	}

	if decisionType == models.TypeMeal || decisionType == models.TypeTask {
		if h := p.Health; h != nil {
			push("Diet", h.DietaryType)
			pushList("Allergies", h.Allergies)
			push("Health goal", h.HealthGoal)
			push("Activity", h.ActivityLevel)
			push("Eating pattern", h.EatingPattern)
		}
		if w := p.Work; w != nil {
			push("Schedule", w.Schedule)
			pushN("Stress level", w.StressLevel)
			push("Day type", w.DailyScheduleType)
		}
	}

	if decisionType == models.TypeMeal {
		if f := p.FoodPreferences; f != nil {
			pushList("Favorite cuisines", f.Cuisines)
			pushN("Spice tolerance", f.SpiceTolerance)
			push("Food budget", f.Budget)
			push("Cooking", f.CookingHabits)
			pushList("Eating styles", f.EatingStyles)
		}
	}

	if decisionType == models.TypeClothing {
		if c := p.ClothingPreferences; c != nil {
			pushList("Fashion styles", c.FashionStyles)
			push("Weather sensitivity", c.WeatherSensitivity)
			pushList("Color preferences", c.ColorPreferences)
			pushN("Comfort priority", c.ComfortPriority)
			push("Dress code", c.DressCode)
		}
	}

	if decisionType == models.TypeTask {
		if t := p.TaskStyle; t != nil {
			push("Energy peak", t.EnergyPeak)
			push("Priority method", t.PriorityMethod)
			push("Work blocks", t.WorkBlockDuration)
			pushN("Procrastination tendency", t.Procrastination)
			push("Multitasking", t.Multitasking)
		}
		if d := p.DecisionStyle; d != nil {
			pushN("Novelty preference", d.Novelty)
			push("Budget", d.BudgetConsciousness)
			push("Time", d.TimeAvailability)
		}
	}

	return strings.Join(parts, "\n")
}
