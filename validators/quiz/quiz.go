package quizValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	"lms/validators"

	"github.com/gofiber/fiber/v2"
)

type DetailedAnswer struct {
	SoalID  uint   `json:"soalId" validate:"required"`
	Jawaban string `json:"jawaban" validate:"omitempty,option"`
	Benar   bool   `json:"benar"`
}

// SubmitRequest is the body of POST /quiz/submit. Pointers tell an explicit
// zero apart from a missing field.
type SubmitRequest struct {
	Skor               *float64         `json:"skor" validate:"required,gte=0,lte=100"`
	JumlahJawabanBenar *int             `json:"jumlahJawabanBenar" validate:"required,gte=0"`
	SiswaID            uint             `json:"siswaId" validate:"required"`
	GroupSoalID        uint             `json:"groupSoalId" validate:"required"`
	DetailedAnswers    []DetailedAnswer `json:"detailedAnswers" validate:"required,dive"`
}

// GetQuiz validates the group id of GET /quiz/:groupId
func GetQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		groupID, ok := validators.ParamID(c, "groupId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question group ID!", nil)
		}
		c.Locals("groupId", groupID)
		return c.Next()
	}
}

// Submit validates a quiz submission body
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SubmitRequest)
		if ok, err := validators.ParseBody(c, reqData); !ok {
			return err
		}
		c.Locals("validatedSubmit", reqData)
		return c.Next()
	}
}

// ScoreID validates the :nilaiId route parameter
func ScoreID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scoreID, ok := validators.ParamID(c, "nilaiId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid quiz result ID!", nil)
		}
		c.Locals("scoreId", scoreID)
		return c.Next()
	}
}

// StudentID validates the :siswaId route parameter
func StudentID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		studentID, ok := validators.ParamID(c, "siswaId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid student ID!", nil)
		}
		c.Locals("studentId", studentID)
		return c.Next()
	}
}

type LeaderboardQuery struct {
	GroupID uint
	Period  string
	Limit   int
}

const maxLeaderboardLimit = 100

// Leaderboard validates GET /leaderboard/:groupId?period=&limit=
func Leaderboard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		groupID, ok := validators.ParamID(c, "groupId")
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid question group ID!", nil)
		}

		errors := make(map[string]string)

		period := strings.ToLower(strings.TrimSpace(c.Query("period", "all")))
		switch period {
		case "all", "week", "month":
		default:
			errors["period"] = "Period must be one of all, week or month!"
		}

		limit := 10
		if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 || n > maxLeaderboardLimit {
				errors["limit"] = "Limit must be a number between 1 and 100!"
			} else {
				limit = n
			}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLeaderboard", &LeaderboardQuery{GroupID: groupID, Period: period, Limit: limit})
		return c.Next()
	}
}
