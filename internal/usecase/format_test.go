package usecase

import (
	"strings"
	"testing"
)

func TestFormatDishNames(t *testing.T) {
	t.Run("opening dish name gets bolded", func(t *testing.T) {
		in := "Плов с курицей\nИнгредиенты:\n- рис - 200 г"
		got := FormatDishNames(in)
		if !strings.HasPrefix(got, "*Плов с курицей*") {
			t.Errorf("dish name not bolded: %q", got)
		}
	})

	t.Run("dish name after blank line gets bolded", func(t *testing.T) {
		in := "1) Сварите рис.\n\nОмлет с сыром\nИнгредиенты:"
		got := FormatDishNames(in)
		if !strings.Contains(got, "*Омлет с сыром*") {
			t.Errorf("second dish not bolded: %q", got)
		}
	})

	t.Run("untouched lines", func(t *testing.T) {
		cases := []string{
			"- рис - 200 г",
			"* уже жирный *",
			"Шаги:",
			"Ингредиенты:",
			"_Совет: подавайте горячим_",
			"1) Нарежьте лук.",
			"2. Обжарьте.",
		}
		for _, line := range cases {
			in := "\n" + line
			if got := FormatDishNames(in); strings.Contains(got, "*"+line+"*") {
				t.Errorf("line %q must not be bolded, got %q", line, got)
			}
		}
	})

	t.Run("long lines are not dish names", func(t *testing.T) {
		long := strings.Repeat("а", 120)
		if got := FormatDishNames(long); strings.HasPrefix(got, "*") {
			t.Errorf("long line bolded: %q", got[:10])
		}
	})

	t.Run("line inside a paragraph is not a dish name", func(t *testing.T) {
		in := "Обжарьте лук\nдо золотистого цвета"
		got := FormatDishNames(in)
		if strings.Contains(got, "*до золотистого цвета*") {
			t.Errorf("continuation line bolded: %q", got)
		}
	})
}
