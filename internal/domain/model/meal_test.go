package model

import "testing"

func TestParseMealType(t *testing.T) {
	cases := []struct {
		in   string
		want MealType
	}{
		{"breakfast", MealBreakfast},
		{"lunch", MealLunch},
		{"dinner", MealDinner},
		{"surprise", MealSurprise},
		{"BREAKFAST", MealBreakfast},
		{"", MealSurprise},
		{"brunch", MealSurprise},
	}
	for _, tc := range cases {
		if got := ParseMealType(tc.in); got != tc.want {
			t.Errorf("ParseMealType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMealTypeLabels(t *testing.T) {
	for _, m := range AllMealTypes() {
		if m.Label() == "" {
			t.Errorf("meal %q has empty label", m)
		}
		if m.Emoji() == "" {
			t.Errorf("meal %q has empty emoji", m)
		}
	}
}
