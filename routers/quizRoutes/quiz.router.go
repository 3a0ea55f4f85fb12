package quizRoutes

import (
	quizControllers "lms/controllers/quiz"
	quizValidators "lms/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

func SetupQuizRoutes(app *fiber.App, ctl *quizControllers.Controller, jwt, staff fiber.Handler) {
	app.Get("/quiz/:groupId", jwt, quizValidators.GetQuiz(), ctl.GetQuiz)
	app.Post("/quiz/submit", jwt, quizValidators.Submit(), ctl.Submit)

	app.Get("/quiz-result/:nilaiId", jwt, quizValidators.ScoreID(), ctl.Result)
	app.Get("/student-results/:siswaId", jwt, quizValidators.StudentID(), ctl.StudentResults)
	app.Get("/all-results", jwt, staff, ctl.AllResults)
	app.Delete("/quiz-result/:nilaiId", jwt, staff, quizValidators.ScoreID(), ctl.DeleteResult)

	app.Get("/leaderboard/:groupId", jwt, staff, quizValidators.Leaderboard(), ctl.Leaderboard)
}
