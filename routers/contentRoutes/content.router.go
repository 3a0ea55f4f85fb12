package contentRoutes

import (
	contentControllers "lms/controllers/content"
	contentValidators "lms/validators/content"

	"github.com/gofiber/fiber/v2"
)

func SetupContentRoutes(app *fiber.App, admin fiber.Router, ctl *contentControllers.Controller, jwt fiber.Handler) {
	app.Get("/modules", jwt, ctl.ListModules)
	app.Get("/modules/:modulId/submodules", jwt, contentValidators.ModuleID(), ctl.ListSubModules)

	admin.Post("/classes", contentValidators.CreateClass(), ctl.CreateClass)
	admin.Get("/classes", ctl.ListClasses)
	admin.Post("/modules", contentValidators.CreateModule(), ctl.CreateModule)
	admin.Post("/modules/:modulId/submodules", contentValidators.CreateSubModule(), ctl.CreateSubModule)
	admin.Post("/question-groups", contentValidators.CreateQuestionGroup(), ctl.CreateQuestionGroup)
	admin.Post("/question-groups/:groupId/questions", contentValidators.CreateQuestion(), ctl.CreateQuestion)
}
