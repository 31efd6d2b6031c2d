package service

import (
	"math"
	"sort"
)

// maxAssumedScore is the preference score treated as 100% confidence.
const maxAssumedScore = 10.0

// CalculateConfidence scores the primary option from the user's preference
// snapshot. An empty snapshot or an option that has never been rated maps
// to the medium default 0.5; a present score (including an explicit zero)
// maps to min(score/10, 1).
func CalculateConfidence(snapshot map[string]float64, option string) float64 {
	if len(snapshot) == 0 || option == "" {
		return 0.5
	}

	score, ok := snapshot[option]
	if !ok {
		return 0.5
	}

	return math.Min(score/maxAssumedScore, 1)
}

// FeedbackWeight converts a 1-5 star rating into the 0.2-1.0 increment
// added to the chosen option's preference score.
func FeedbackWeight(rating int) float64 {
	return float64(rating) / 5
}

// TopOptions returns up to count option labels sorted by preference score
// descending. Ties break alphabetically so the ordering is stable.
func TopOptions(snapshot map[string]float64, count int) []string {
	if len(snapshot) == 0 || count <= 0 {
		return nil
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

	if count > len(entries) {
		count = len(entries)
	}

	options := make([]string, 0, count)
	for _, e := range entries[:count] {
		options = append(options, e.option)
	}
	return options
}

// BlendOptions merges the AI suggestion, the user's top historical options
// and the static fallback catalog into one deduplicated ordered list of at
// most maxOptions entries. The AI suggestion, when present, always holds
// the first slot.
func BlendOptions(aiSuggestion string, fallbackOptions, topOptions []string, maxOptions int) []string {
	if maxOptions <= 0 {
		maxOptions = 4
	}

	options := make([]string, 0, maxOptions)
	seen := make(map[string]bool, maxOptions)

	add := func(option string) {
		if option == "" || seen[option] || len(options) >= maxOptions {
			return
		}
		seen[option] = true
		options = append(options, option)
	}

	add(aiSuggestion)
	for _, opt := range topOptions {
		add(opt)
	}
	for _, opt := range fallbackOptions {
		add(opt)
	}

	return options
}
