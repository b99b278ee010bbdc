package telegram

import (
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/ports/adapter"
)

// mealKeyboard is the 2x2 meal-type picker shown after /start.
func mealKeyboard() [][]adapter.InlineButton {
	types := model.AllMealTypes()
	rows := make([][]adapter.InlineButton, 0, 2)
	for i := 0; i < len(types); i += 2 {
		row := make([]adapter.InlineButton, 0, 2)
		for _, m := range types[i:min(i+2, len(types))] {
			row = append(row, adapter.InlineButton{
				Text: m.Emoji() + " " + m.Label(),
				Data: "meal:" + string(m),
			})
		}
		rows = append(rows, row)
	}
	return rows
}

// feedbackKeyboard is attached under a generated recipe.
func feedbackKeyboard() [][]adapter.InlineButton {
	return [][]adapter.InlineButton{
		{
			{Text: "👍", Data: "fb:up"},
			{Text: "👎", Data: "fb:down"},
		},
		{
			{Text: "🔁 Новый запрос", Data: "restart"},
		},
	}
}
