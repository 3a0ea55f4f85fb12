package contentValidator

import (
	"strings"

	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type ClassRequest struct {
	Kelas     int    `json:"kelas" validate:"required,gte=1,lte=12"`
	NamaKelas string `json:"namaKelas" validate:"required,min=1,max=100"`
}

type ModuleRequest struct {
	Judul     string `json:"judul" validate:"required,min=3,max=255"`
	Deskripsi string `json:"deskripsi" validate:"max=5000"`
	Image     string `json:"image" validate:"omitempty,url"`
	URL       string `json:"url" validate:"omitempty,url"`
}

type SubModuleRequest struct {
	SubJudul     string `json:"subJudul" validate:"required,min=3,max=255"`
	SubDeskripsi string `json:"subDeskripsi" validate:"max=5000"`
	URLYoutube   string `json:"urlYoutube" validate:"required,url"`
	CoverImage   string `json:"coverImage" validate:"omitempty,url"`
	URL          string `json:"url" validate:"omitempty,url"`
}

type QuestionGroupRequest struct {
	Judul   string `json:"judul" validate:"required,min=3,max=255"`
	Durasi  int    `json:"durasi" validate:"required,gte=1,lte=600"`
	KelasID uint   `json:"kelasId" validate:"required"`
	ModulID uint   `json:"modulId" validate:"required"`
}

type QuestionRequest struct {
	Judul         string `json:"judul" validate:"max=255"`
	Image         string `json:"image" validate:"omitempty,url"`
	URL           string `json:"url" validate:"omitempty,url"`
	Cerita        string `json:"cerita"`
	Soal          string `json:"soal" validate:"required"`
	OptionA       string `json:"optionA" validate:"required"`
	OptionB       string `json:"optionB" validate:"required"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	OptionE       string `json:"optionE"`
	CorrectAnswer string `json:"correctAnswer" validate:"required,option"`
}

// CreateClass validates POST /admin/classes
func CreateClass() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ClassRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		reqData.NamaKelas = strings.TrimSpace(reqData.NamaKelas)
		c.Locals("validatedClass", reqData)
		return c.Next()
	}
}

// CreateModule validates POST /admin/modules
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ModuleRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// ModuleID validates the :modulId route parameter
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, ok := validators.ParamID(c, "modulId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
		}
		c.Locals("moduleId", moduleID)
		return c.Next()
	}
}

// CreateSubModule validates POST /admin/modules/:modulId/submodules
func CreateSubModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, ok := validators.ParamID(c, "modulId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module ID!", nil)
		}
		reqData := new(SubModuleRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		c.Locals("moduleId", moduleID)
		c.Locals("validatedSubModule", reqData)
		return c.Next()
	}
}

// CreateQuestionGroup validates POST /admin/question-groups
func CreateQuestionGroup() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(QuestionGroupRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		c.Locals("validatedQuestionGroup", reqData)
		return c.Next()
	}
}

// CreateQuestion validates POST /admin/question-groups/:groupId/questions
func CreateQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		groupID, ok := validators.ParamID(c, "groupId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question group ID!", nil)
		}
		reqData := new(QuestionRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		reqData.CorrectAnswer = strings.ToUpper(strings.TrimSpace(reqData.CorrectAnswer))
		c.Locals("groupId", groupID)
		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}
