package service

import "github.com/blezecon/X0R-AMUHACKS5.0/internal/models"

// Hand-curated generic options served when neither the AI nor the user's
// history has anything to offer. Order matters: earlier entries are
// surfaced first by the blender.
var fallbackMeals = []string{
	"Pizza", "Salad", "Burger", "Sushi", "Pasta",
	"Tacos", "Sandwich", "Soup", "Stir Fry", "Curry",
}

var fallbackTasks = []string{
	"Exercise for 30 minutes", "Read 10 pages", "Meditate for 10 minutes",
	"Clean one room", "Call a friend", "Write in journal",
	"Learn something new", "Plan tomorrow", "Organize desk", "Take a walk",
}

var fallbackOutfits = []string{
	"Lightweight t-shirt with jeans",
	"Button-down shirt with chinos",
	"Cozy sweater with dark jeans",
	"Athleisure set with sneakers",
	"Oversized hoodie with joggers",
	"Casual dress with flats",
	"Linen shirt with shorts",
	"Crewneck with tailored trousers",
	"Layered jacket with denim",
	"Comfort-first basics with neutral tones",
}

// FallbackOptions returns the static catalog for a decision type.
func FallbackOptions(decisionType string) []string {
	switch decisionType {
	case models.TypeMeal:
		return fallbackMeals
	case models.TypeTask:
		return fallbackTasks
	case models.TypeClothing:
		return fallbackOutfits
	}
	return nil
}
