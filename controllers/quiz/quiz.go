package quizController

import (
	"context"

	"lms/apperror"
	"lms/logger"
	"lms/middleware"
	"lms/models"
	"lms/models/course"
	"lms/services/quiz"
	quizValidator "lms/validators/quiz"

	"github.com/gofiber/fiber/v2"
)

// StudentResolver finds the student record of a logged in user.
type StudentResolver interface {
	StudentByUserID(ctx context.Context, userID uint) (*course.Student, error)
}

// UserResolver loads the stored account behind a session.
type UserResolver interface {
	UserByID(ctx context.Context, id uint) (*models.User, error)
}

type Controller struct {
	Quiz     *quiz.Service
	Students StudentResolver
	Users    UserResolver
	Log      *logger.Logger
}

func New(svc *quiz.Service, students StudentResolver, users UserResolver, log *logger.Logger) *Controller {
	return &Controller{Quiz: svc, Students: students, Users: users, Log: log.With("controller", "quiz")}
}

// GetQuiz returns a question group with its ordered questions
func (ctl *Controller) GetQuiz(c *fiber.Ctx) error {
	groupID := c.Locals("groupId").(uint)

	view, err := ctl.Quiz.GetQuiz(c.UserContext(), groupID)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully!", view)
}

// Submit records a quiz attempt, replacing the previous one of the student
func (ctl *Controller) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	reqData, ok := c.Locals("validatedSubmit").(*quizValidator.SubmitRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ctl.ensureOwnStudent(c, userID, reqData.SiswaID); err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}

	answers := make([]quiz.Answer, len(reqData.DetailedAnswers))
	for i, a := range reqData.DetailedAnswers {
		answers[i] = quiz.Answer{
			QuestionID:     a.SoalID,
			SelectedOption: a.Jawaban,
			IsCorrect:      a.Benar,
		}
	}

	result, err := ctl.Quiz.Submit(c.UserContext(), quiz.SubmitInput{
		Score:        reqData.Skor,
		CorrectCount: reqData.JumlahJawabanBenar,
		StudentID:    reqData.SiswaID,
		GroupID:      reqData.GroupSoalID,
		Answers:      answers,
		ActorUserID:  userID,
	})
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, result.Message(), result)
}

// Result returns one quiz result with its answer details
func (ctl *Controller) Result(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	scoreID := c.Locals("scoreId").(uint)

	score, err := ctl.Quiz.Result(c.UserContext(), scoreID)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	if err := ctl.ensureOwnStudent(c, userID, score.StudentID); err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz result fetched successfully!", score)
}

// StudentResults lists every quiz result of one student
func (ctl *Controller) StudentResults(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	studentID := c.Locals("studentId").(uint)

	if err := ctl.ensureOwnStudent(c, userID, studentID); err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}

	scores, err := ctl.Quiz.StudentResults(c.UserContext(), studentID)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student results fetched successfully!", scores)
}

// AllResults lists every quiz result (staff only)
func (ctl *Controller) AllResults(c *fiber.Ctx) error {
	scores, err := ctl.Quiz.AllResults(c.UserContext())
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "All results fetched successfully!", scores)
}

// DeleteResult removes a quiz result and its answer details (staff only)
func (ctl *Controller) DeleteResult(c *fiber.Ctx) error {
	scoreID := c.Locals("scoreId").(uint)

	if err := ctl.Quiz.DeleteResult(c.UserContext(), scoreID); err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz result deleted successfully!", nil)
}

// Leaderboard ranks the results of one question group (staff only)
func (ctl *Controller) Leaderboard(c *fiber.Ctx) error {
	q := c.Locals("validatedLeaderboard").(*quizValidator.LeaderboardQuery)

	board, err := ctl.Quiz.Leaderboard(c.UserContext(), q.GroupID, q.Period, q.Limit)
	if err != nil {
		return middleware.HandleError(c, ctl.Log, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Leaderboard fetched successfully!", board)
}

// ensureOwnStudent lets staff act on any student and a siswa only on itself.
// The role comes from the stored account, not from the token.
func (ctl *Controller) ensureOwnStudent(c *fiber.Ctx, userID, studentID uint) error {
	user, err := ctl.Users.UserByID(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if user.IsStaff() {
		return nil
	}
	student, err := ctl.Students.StudentByUserID(c.UserContext(), userID)
	if apperror.IsNotFound(err) {
		return apperror.Forbidden("You can only access your own quiz results!")
	}
	if err != nil {
		return err
	}
	if student.ID != studentID {
		return apperror.Forbidden("You can only access your own quiz results!")
	}
	return nil
}
