package contentController

import (
	"lms/logger"
	"lms/middleware"
	"lms/services/content"
	contentValidator "lms/validators/content"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	Content *content.Service
	Log     *logger.Logger
}

func New(svc *content.Service, log *logger.Logger) *Controller {
	return &Controller{Content: svc, Log: log.With("controller", "content")}
}

// CreateClass creates a new class
func (ctl *Controller) CreateClass(c *fiber.Ctx) error {
	reqData := c.Locals("validatedClass").(*contentValidator.ClassRequest)

	class, err := ctl.Content.CreateClass(c.UserContext(), content.ClassInput{
		Grade:       reqData.Kelas,
		Name:        reqData.NamaKelas,
		ActorUserID: c.Locals("userId").(uint),
	})
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Class created successfully!", class)
}

func (ctl *Controller) ListClasses(c *fiber.Ctx) error {
	classes, err := ctl.Content.ListClasses(c.UserContext())
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Classes fetched successfully!", classes)
}

// CreateModule creates a new module
func (ctl *Controller) CreateModule(c *fiber.Ctx) error {
	reqData := c.Locals("validatedModule").(*contentValidator.ModuleRequest)

	module, err := ctl.Content.CreateModule(c.UserContext(), content.ModuleInput{
		Title:       reqData.Judul,
		Description: reqData.Deskripsi,
		Image:       reqData.Image,
		URL:         reqData.URL,
		ActorUserID: c.Locals("userId").(uint),
	})
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

func (ctl *Controller) ListModules(c *fiber.Ctx) error {
	modules, err := ctl.Content.ListModules(c.UserContext())
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modules)
}

// CreateSubModule appends a sub module to a module
func (ctl *Controller) CreateSubModule(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSubModule").(*contentValidator.SubModuleRequest)

	sub, err := ctl.Content.CreateSubModule(c.UserContext(), content.SubModuleInput{
		ModuleID:    c.Locals("moduleId").(uint),
		Title:       reqData.SubJudul,
		Description: reqData.SubDeskripsi,
		YoutubeURL:  reqData.URLYoutube,
		CoverImage:  reqData.CoverImage,
		URL:         reqData.URL,
		ActorUserID: c.Locals("userId").(uint),
	})
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Sub module created successfully!", sub)
}

// ListSubModules lists the sub modules of a module in unlock order
func (ctl *Controller) ListSubModules(c *fiber.Ctx) error {
	subs, err := ctl.Content.ListSubModules(c.UserContext(), c.Locals("moduleId").(uint))
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sub modules fetched successfully!", subs)
}

// CreateQuestionGroup creates a quiz for a class and module
func (ctl *Controller) CreateQuestionGroup(c *fiber.Ctx) error {
	reqData := c.Locals("validatedQuestionGroup").(*contentValidator.QuestionGroupRequest)

	group, err := ctl.Content.CreateQuestionGroup(c.UserContext(), content.QuestionGroupInput{
		Title:       reqData.Judul,
		Duration:    reqData.Durasi,
		ClassID:     reqData.KelasID,
		ModuleID:    reqData.ModulID,
		ActorUserID: c.Locals("userId").(uint),
	})
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question group created successfully!", group)
}

// CreateQuestion adds a question to a question group
func (ctl *Controller) CreateQuestion(c *fiber.Ctx) error {
	reqData := c.Locals("validatedQuestion").(*contentValidator.QuestionRequest)

	q, err := ctl.Content.CreateQuestion(c.UserContext(), content.QuestionInput{
		GroupID:       c.Locals("groupId").(uint),
		Title:         reqData.Judul,
		Image:         reqData.Image,
		URL:           reqData.URL,
		Story:         reqData.Cerita,
		Prompt:        reqData.Soal,
		Options:       [5]string{reqData.OptionA, reqData.OptionB, reqData.OptionC, reqData.OptionD, reqData.OptionE},
		CorrectAnswer: reqData.CorrectAnswer,
		ActorUserID:   c.Locals("userId").(uint),
	})
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question created successfully!", q)
}
