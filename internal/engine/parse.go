package engine

import "strings"

// ParseCategory parses user input to a Category.
// Supported: sports, kitchen, handicraft (plus a few aliases).
func ParseCategory(input string) (Category, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "sports", "sport", "gym":
		return CategorySports, true
	case "kitchen", "kitchen-lab", "lab":
		return CategoryKitchen, true
	case "handicraft", "craft", "crafts":
		return CategoryHandicraft, true
	default:
		return "", false
	}
}

// ParseTarget parses user input to a TimedTaskTarget.
func ParseTarget(input string) (TimedTaskTarget, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "course", "study":
		return TargetCourse, true
	case "work", "job", "shift":
		return TargetWork, true
	default:
		return "", false
	}
}
