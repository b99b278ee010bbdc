package model

// DialogStep is where the user is in the recipe flow.
type DialogStep string

const (
	StepChoosingMeal        DialogStep = "choosing_meal"
	StepEnteringIngredients DialogStep = "entering_ingredients"
)

// DialogState is the per-user conversational state. It lives in Redis
// with a TTL; an expired state simply restarts the flow.
type DialogState struct {
	Step DialogStep `json:"step"`
	Meal MealType   `json:"meal,omitempty"`
}
