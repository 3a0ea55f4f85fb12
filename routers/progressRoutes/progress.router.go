package progressRoutes

import (
	progressControllers "lms/controllers/progress"
	progressValidators "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressRoutes(app *fiber.App, ctl *progressControllers.Controller, jwt, student fiber.Handler) {
	progressGroup := app.Group("/student-progress", jwt, student)

	progressGroup.Post("/start", progressValidators.Start(), ctl.Start)
	progressGroup.Patch("/update", progressValidators.Update(), ctl.Update)
	progressGroup.Patch("/complete", progressValidators.Complete(), ctl.Complete)
	progressGroup.Get("/module/:modulId", progressValidators.ModuleID(), ctl.ModuleProgress)
	progressGroup.Get("/submodule/:subModulId", progressValidators.SubModuleID("subModulId"), ctl.SubModuleProgress)
	progressGroup.Get("/check-access/:currentSubModulId", progressValidators.SubModuleID("currentSubModulId"), ctl.CheckAccess)
	progressGroup.Get("/statistics", ctl.Statistics)
}
