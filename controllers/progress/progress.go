package progressController

import (
	"lms/apperror"
	"lms/logger"
	"lms/middleware"
	"lms/models/course"
	"lms/services/progress"
	progressValidator "lms/validators/progress"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Progress *progress.Service
	Log      *logger.Logger
}

func New(svc *progress.Service, log *logger.Logger) *Controller {
	return &Controller{Progress: svc, Log: log.With("controller", "progress")}
}

// currentStudent resolves the student behind the session user.
func (ctl *Controller) currentStudent(c *fiber.Ctx) (*course.Student, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, apperror.Unauthorized("Unauthorized!")
	}
	return ctl.Progress.StudentByUserID(c.UserContext(), userID)
}

// Start opens or touches the progress of a sub module
func (ctl *Controller) Start(c *fiber.Ctx) error {
	student, err := ctl.currentStudent(c)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	reqData := c.Locals("validatedStart").(*progressValidator.StartRequest)

	p, err := ctl.Progress.StartOrTouch(c.UserContext(), student.ID, reqData.SubModulID, student.UserID)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress started successfully!", p)
}

// Update stores the watch counters reported by the player
func (ctl *Controller) Update(c *fiber.Ctx) error {
	student, err := ctl.currentStudent(c)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	reqData := c.Locals("validatedUpdate").(*progressValidator.UpdateRequest)

	p, err := ctl.Progress.UpdateWatch(c.UserContext(), progress.UpdateWatchInput{
		StudentID:            student.ID,
		SubModuleID:          reqData.SubModulID,
		WatchTime:            reqData.WatchTime,
		TotalWatchTime:       reqData.TotalWatchTime,
		CompletionPercentage: reqData.CompletionPercentage,
	})
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated successfully!", p)
}

// Complete marks a sub module as completed
func (ctl *Controller) Complete(c *fiber.Ctx) error {
	student, err := ctl.currentStudent(c)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	reqData := c.Locals("validatedComplete").(*progressValidator.CompleteRequest)

	p, err := ctl.Progress.MarkComplete(c.UserContext(), student.ID, reqData.SubModulID, reqData.Notes)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub module marked as completed!", p)
}

// ModuleProgress lists the progress of every sub module of a module
func (ctl *Controller) ModuleProgress(c *fiber.Ctx) error {
	student, err := ctl.currentStudent(c)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	moduleID := c.Locals("moduleId").(uint)

	out, err := ctl.Progress.ModuleProgress(c.UserContext(), student.ID, moduleID)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module progress fetched successfully!", out)
}

// SubModuleProgress returns the progress of one sub module
func (ctl *Controller) SubModuleProgress(c *fiber.Ctx) error {
	student, err := ctl.currentStudent(c)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	subModuleID := c.Locals("subModuleId").(uint)

	out, err := ctl.Progress.SubModuleProgress(c.UserContext(), student.ID, subModuleID)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub module progress fetched successfully!", out)
}

// CheckAccess tells whether the student may open a sub module
func (ctl *Controller) CheckAccess(c *fiber.Ctx) error {
	student, err := ctl.currentStudent(c)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	subModuleID := c.Locals("subModuleId").(uint)

	out, err := ctl.Progress.CheckAccess(c.UserContext(), student.ID, subModuleID)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, out.Message, out)
}

// Statistics summarises the learning progress of the student
func (ctl *Controller) Statistics(c *fiber.Ctx) error {
	student, err := ctl.currentStudent(c)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}

	out, err := ctl.Progress.Statistics(c.UserContext(), student.ID)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress statistics fetched successfully!", out)
}
