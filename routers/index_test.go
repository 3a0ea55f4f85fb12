package routers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"lms/config"
	"lms/logger"
	"lms/models"
	"lms/models/course"
	"lms/testutil"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type harness struct {
	t   *testing.T
	app *fiber.App
	db  *gorm.DB
	fx  testutil.Fixture
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testutil.DB(t)
	cfg := &config.Config{
		AppEnv:                "test",
		JWTKey:                "test-secret",
		JWTTTLHours:           1,
		SaltRound:             4,
		CorsAllowOrigins:      "*",
		RequestTimeoutSeconds: 5,
	}
	return &harness{t: t, app: NewApp(cfg, db, logger.Nop()), db: db, fx: testutil.Seed(t, db)}
}

func (h *harness) do(method, path, token string, body interface{}) (int, envelope) {
	h.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(h.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := h.app.Test(req, -1)
	require.NoError(h.t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(h.t, err)
	require.NoError(h.t, sonic.Unmarshal(raw, &env), string(raw))
	return resp.StatusCode, env
}

func (h *harness) login(email string) string {
	h.t.Helper()
	code, env := h.do(http.MethodPost, "/auth/login", "", fiber.Map{"email": email, "password": testutil.Password})
	require.Equal(h.t, http.StatusOK, code, env.Message)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(h.t, sonic.Unmarshal(env.Data, &data))
	require.NotEmpty(h.t, data.Token)
	return data.Token
}

func decode(t *testing.T, env envelope, v interface{}) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal(env.Data, v))
}

func TestHealthAndAuthGuard(t *testing.T) {
	h := newHarness(t)

	code, env := h.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.True(t, env.Status)

	code, env = h.do(http.MethodGet, "/quiz/1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Status)

	code, _ = h.do(http.MethodGet, "/quiz/1", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = h.do(http.MethodPost, "/auth/login", "", fiber.Map{"email": "admin@school.test", "password": "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials!", env.Message)

	code, env = h.do(http.MethodPost, "/auth/login", "", fiber.Map{"email": "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, code)
	var fields map[string]string
	decode(t, env, &fields)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestQuizFlow(t *testing.T) {
	h := newHarness(t)
	adminToken := h.login("admin@school.test")
	studentToken := h.login("budi@school.test")

	code, env := h.do(http.MethodPost, "/admin/question-groups", adminToken, fiber.Map{
		"judul":   "Fractions quiz",
		"durasi":  15,
		"kelasId": h.fx.Class.ID,
		"modulId": h.fx.Module.ID,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)
	var group course.QuestionGroup
	decode(t, env, &group)

	var questionIDs []uint
	for i, correct := range []string{"A", "C"} {
		code, env = h.do(http.MethodPost, fmt.Sprintf("/admin/question-groups/%d/questions", group.ID), adminToken, fiber.Map{
			"soal":          fmt.Sprintf("Question %d", i+1),
			"optionA":       "1/2",
			"optionB":       "1/3",
			"optionC":       "1/4",
			"correctAnswer": correct,
		})
		require.Equal(t, http.StatusCreated, code, env.Message)
		var q course.Question
		decode(t, env, &q)
		questionIDs = append(questionIDs, q.ID)
	}

	code, env = h.do(http.MethodGet, fmt.Sprintf("/quiz/%d", group.ID), studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	var quiz struct {
		Group struct {
			ID    uint   `json:"id"`
			Title string `json:"judul"`
		} `json:"groupSoal"`
		Questions []course.Question `json:"soals"`
		Total     int               `json:"totalSoal"`
	}
	decode(t, env, &quiz)
	assert.Equal(t, "Fractions quiz", quiz.Group.Title)
	assert.Equal(t, 2, quiz.Total)

	submission := fiber.Map{
		"skor":               50,
		"jumlahJawabanBenar": 1,
		"siswaId":            h.fx.Student.ID,
		"groupSoalId":        group.ID,
		"detailedAnswers": []fiber.Map{
			{"soalId": questionIDs[0], "jawaban": "A", "benar": true},
			{"soalId": questionIDs[1], "jawaban": "B", "benar": false},
		},
	}

	type submitData struct {
		ScoreID  uint `json:"nilaiId"`
		IsRetake bool `json:"isRetake"`
		Score    struct {
			Value          float64 `json:"skor"`
			TotalQuestions int     `json:"jumlahSoal"`
		} `json:"nilai"`
	}

	code, env = h.do(http.MethodPost, "/quiz/submit", studentToken, submission)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var first submitData
	decode(t, env, &first)
	assert.False(t, first.IsRetake)
	assert.Equal(t, "Quiz completed successfully!", env.Message)
	assert.Equal(t, 2, first.Score.TotalQuestions)

	submission["skor"] = 100
	submission["jumlahJawabanBenar"] = 2
	code, env = h.do(http.MethodPost, "/quiz/submit", studentToken, submission)
	require.Equal(t, http.StatusCreated, code, env.Message)
	var second submitData
	decode(t, env, &second)
	assert.True(t, second.IsRetake)
	assert.Equal(t, first.ScoreID, second.ScoreID)
	assert.InDelta(t, 100, second.Score.Value, 0.001)

	code, env = h.do(http.MethodGet, fmt.Sprintf("/quiz-result/%d", first.ScoreID), studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	var result course.Score
	decode(t, env, &result)
	assert.Len(t, result.Answers, 2)

	code, _ = h.do(http.MethodGet, fmt.Sprintf("/student-results/%d", h.fx.Student.ID), studentToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = h.do(http.MethodGet, fmt.Sprintf("/leaderboard/%d?period=month", group.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, code, env.Message)
	var board struct {
		Entries []struct {
			Rank int `json:"rank"`
		} `json:"entries"`
	}
	decode(t, env, &board)
	require.Len(t, board.Entries, 1)
	assert.Equal(t, 1, board.Entries[0].Rank)

	code, _ = h.do(http.MethodGet, fmt.Sprintf("/leaderboard/%d?period=decade", group.ID), adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = h.do(http.MethodGet, "/all-results", studentToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = h.do(http.MethodDelete, fmt.Sprintf("/quiz-result/%d", first.ScoreID), studentToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = h.do(http.MethodDelete, fmt.Sprintf("/quiz-result/%d", first.ScoreID), adminToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = h.do(http.MethodGet, fmt.Sprintf("/quiz-result/%d", first.ScoreID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestQuizSubmitValidation(t *testing.T) {
	h := newHarness(t)
	studentToken := h.login("budi@school.test")
	group, questions := testutil.CreateQuiz(t, h.db, h.fx.Class.ID, h.fx.Module.ID, h.fx.Admin.ID, 1)

	code, env := h.do(http.MethodPost, "/quiz/submit", studentToken, fiber.Map{
		"jumlahJawabanBenar": 0,
		"siswaId":            h.fx.Student.ID,
		"groupSoalId":        group.ID,
		"detailedAnswers":    []fiber.Map{{"soalId": questions[0].ID, "jawaban": "Q"}},
	})
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed!", env.Message)
	var fields map[string]string
	decode(t, env, &fields)
	assert.Contains(t, fields, "skor")
	assert.Contains(t, fields, "detailedAnswers[0].jawaban")
	assert.NotContains(t, fields, "jumlahJawabanBenar", "an explicit zero is a value")

	code, env = h.do(http.MethodPost, "/quiz/submit", studentToken, fiber.Map{
		"skor":               0,
		"jumlahJawabanBenar": 5,
		"siswaId":            h.fx.Student.ID,
		"groupSoalId":        group.ID,
		"detailedAnswers":    []fiber.Map{},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, env.Message, "cannot exceed")

	code, env = h.do(http.MethodPost, "/quiz/submit", studentToken, fiber.Map{
		"skor":               0,
		"jumlahJawabanBenar": 0,
		"siswaId":            h.fx.Student.ID,
		"groupSoalId":        9999,
		"detailedAnswers":    []fiber.Map{},
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Question group not found!", env.Message)
}

func TestStudentCannotActForAnotherStudent(t *testing.T) {
	h := newHarness(t)
	other := testutil.CreateStudent(t, h.db, "Sari", h.fx.Class.ID)
	group, questions := testutil.CreateQuiz(t, h.db, h.fx.Class.ID, h.fx.Module.ID, h.fx.Admin.ID, 1)
	studentToken := h.login("budi@school.test")

	code, _ := h.do(http.MethodPost, "/quiz/submit", studentToken, fiber.Map{
		"skor":               100,
		"jumlahJawabanBenar": 1,
		"siswaId":            other.ID,
		"groupSoalId":        group.ID,
		"detailedAnswers":    []fiber.Map{{"soalId": questions[0].ID, "jawaban": "A", "benar": true}},
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = h.do(http.MethodGet, fmt.Sprintf("/student-results/%d", other.ID), studentToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestDemotedStaffLosesAccessToOtherStudents(t *testing.T) {
	h := newHarness(t)
	guru := testutil.CreateUser(t, h.db, "Guru", "guru@school.test", models.RoleTeacher)
	guruToken := h.login("guru@school.test")
	path := fmt.Sprintf("/student-results/%d", h.fx.Student.ID)

	code, env := h.do(http.MethodGet, path, guruToken, nil)
	require.Equal(t, http.StatusOK, code, env.Message)

	require.NoError(t, h.db.Model(&models.User{}).Where("id = ?", guru.ID).Update("role", models.RoleStudent).Error)

	code, env = h.do(http.MethodGet, path, guruToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "You can only access your own quiz results!", env.Message)
}

func TestProgressFlow(t *testing.T) {
	h := newHarness(t)
	subs := testutil.CreateSubModules(t, h.db, h.fx.Module.ID, h.fx.Admin.ID, "A", "B")
	studentToken := h.login("budi@school.test")
	adminToken := h.login("admin@school.test")

	code, _ := h.do(http.MethodGet, "/student-progress/statistics", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, code, "progress routes are for students")

	type access struct {
		CanAccess bool `json:"canAccess"`
		Previous  *struct {
			ID uint `json:"id"`
		} `json:"previousSubModul"`
	}
	checkB := func() access {
		code, env := h.do(http.MethodGet, fmt.Sprintf("/student-progress/check-access/%d", subs[1].ID), studentToken, nil)
		require.Equal(t, http.StatusOK, code, env.Message)
		var a access
		decode(t, env, &a)
		return a
	}

	assert.False(t, checkB().CanAccess)

	code, env := h.do(http.MethodPatch, "/student-progress/update", studentToken, fiber.Map{"subModulId": subs[0].ID, "watchTime": 10})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Progress not found. Start the sub module first!", env.Message)

	code, _ = h.do(http.MethodPost, "/student-progress/start", studentToken, fiber.Map{"subModulId": subs[0].ID})
	require.Equal(t, http.StatusOK, code)

	code, env = h.do(http.MethodPatch, "/student-progress/update", studentToken, fiber.Map{"subModulId": subs[0].ID, "completionPercentage": 120})
	require.Equal(t, http.StatusBadRequest, code)
	var fields map[string]string
	decode(t, env, &fields)
	assert.Contains(t, fields, "completionPercentage")

	code, env = h.do(http.MethodPatch, "/student-progress/update", studentToken, fiber.Map{"subModulId": subs[0].ID, "completionPercentage": 90, "watchTime": 300})
	require.Equal(t, http.StatusOK, code, env.Message)
	var p course.Progress
	decode(t, env, &p)
	assert.True(t, p.IsCompleted)

	a := checkB()
	assert.True(t, a.CanAccess)
	require.NotNil(t, a.Previous)
	assert.Equal(t, subs[0].ID, a.Previous.ID)

	code, _ = h.do(http.MethodPatch, "/student-progress/complete", studentToken, fiber.Map{"subModulId": subs[1].ID})
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = h.do(http.MethodGet, fmt.Sprintf("/student-progress/module/%d", h.fx.Module.ID), studentToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = h.do(http.MethodGet, fmt.Sprintf("/student-progress/submodule/%d", subs[1].ID), studentToken, nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = h.do(http.MethodGet, "/student-progress/submodule/abc", studentToken, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = h.do(http.MethodGet, "/student-progress/statistics", studentToken, nil)
	require.Equal(t, http.StatusOK, code)
	var stats struct {
		Completed int `json:"completedSubModules"`
	}
	decode(t, env, &stats)
	assert.Equal(t, 1, stats.Completed)
}

func TestAdminCreatesStudentAccount(t *testing.T) {
	h := newHarness(t)
	adminToken := h.login("admin@school.test")

	code, env := h.do(http.MethodPost, "/admin/users", adminToken, fiber.Map{
		"name":     "Rina",
		"email":    "rina@school.test",
		"password": "secret-pass",
		"role":     models.RoleStudent,
	})
	require.Equal(t, http.StatusBadRequest, code)
	var fields map[string]string
	decode(t, env, &fields)
	assert.Contains(t, fields, "kelasId")

	code, env = h.do(http.MethodPost, "/admin/users", adminToken, fiber.Map{
		"name":     "Rina",
		"email":    "rina@school.test",
		"password": "secret-pass",
		"role":     models.RoleStudent,
		"kelasId":  h.fx.Class.ID,
	})
	require.Equal(t, http.StatusCreated, code, env.Message)

	token := h.login("rina@school.test")
	code, _ = h.do(http.MethodGet, "/student-progress/statistics", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = h.do(http.MethodPost, "/admin/users", token, fiber.Map{
		"name": "Hacker", "email": "h@school.test", "password": "secret-pass", "role": models.RoleAdmin,
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = h.do(http.MethodGet, "/auth/login/history", token, nil)
	require.Equal(t, http.StatusOK, code)
	var history struct {
		Total int64 `json:"total"`
	}
	decode(t, env, &history)
	assert.EqualValues(t, 1, history.Total)
}
