package model

import "strings"

// MealType is the meal slot the user is cooking for.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSurprise  MealType = "surprise"
)

// ParseMealType maps callback payloads to a MealType.
// Unknown values fall back to MealSurprise so an expired keyboard
// never strands the user.
func ParseMealType(s string) MealType {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSurprise:
		return m
	default:
		return MealSurprise
	}
}

// Label returns the user-facing Russian label.
func (m MealType) Label() string {
	switch m {
	case MealBreakfast:
		return "Завтрак"
	case MealLunch:
		return "Обед"
	case MealDinner:
		return "Ужин"
	default:
		return "Удиви меня"
	}
}

// Emoji returns the marker used in headers and keyboards.
func (m MealType) Emoji() string {
	switch m {
	case MealBreakfast:
		return "🥐"
	case MealLunch:
		return "🍲"
	case MealDinner:
		return "🍽"
	default:
		return "🎲"
	}
}

// AllMealTypes in keyboard order.
func AllMealTypes() []MealType {
	return []MealType{MealBreakfast, MealLunch, MealDinner, MealSurprise}
}
