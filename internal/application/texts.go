package application

import (
	"fmt"

	"github.com/kristina93ostapenko-larek/food-bot/internal/domain/model"
)

const Welcome = "👋 *Привет! Я FoodBot.*\n\n" +
	"Не хочешь докупать продукты? Помогу приготовить еду из того, что осталось в холодильнике.\n\n" +
	"Сначала выбери тип приёма пищи:"

func HelpText(maxProducts int) string {
	return "ℹ️ *Как пользоваться:*\n" +
		"1) Выбери: завтрак / обед / ужин / «удиви меня».\n" +
		"2) Перечисли ингредиенты через запятую — я предложу несколько простых рецептов.\n" +
		fmt.Sprintf("3) Максимум %d ингредиентов.\n", maxProducts) +
		"4) Я пришлю рецепты, как только они будут готовы.\n"
}

func RenderHeader(meal model.MealType) string {
	return fmt.Sprintf("%s *Подбор рецептов* · _%s_\n", meal.Emoji(), meal.Label())
}

func RenderFooter() string {
	return "\n—\nНу как? 👇"
}

const (
	MsgAskIngredients = "Напишите список ингредиентов через запятую.\n" +
		"_Пример_: `яйца, сыр, томаты` или `курица и рис, брокколи`."
	MsgNoProducts      = "Не вижу ингредиентов. Пример: _курица, рис, брокколи_"
	MsgGenerationError = "❌ Не удалось сгенерировать рецепты. Попробуйте позже."
	MsgRateLimited     = "⚠️ Слишком много сообщений. Подождите 1 минуту и попробуйте снова."
	MsgThanksFeedback  = "🙏 Спасибо за оценку! Нажмите «/start», чтобы начать заново."
	MsgNotUnderstood   = "Я вас не понял 🤖\nНажмите /start или /help"
	MsgGenerating      = "⏳ _Готовлю рецепты…_"
)

func TooManyProductsText(maxProducts int) string {
	return fmt.Sprintf("⚠️ Слишком много позиций. Максимум %d.", maxProducts)
}
