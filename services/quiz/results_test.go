package quiz

import (
	"context"
	"testing"
	"time"

	"lms/apperror"
	"lms/models/course"
	"lms/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetQuiz(t *testing.T) {
	svc, db, fx := newTestService(t)
	group, questions := testutil.CreateQuiz(t, db, fx.Class.ID, fx.Module.ID, fx.Admin.ID, 3)
	ctx := context.Background()

	view, err := svc.GetQuiz(ctx, group.ID)
	require.NoError(t, err)
	assert.Equal(t, group.ID, view.Group.ID)
	assert.Equal(t, 30, view.Group.Duration)
	require.NotNil(t, view.Group.Class)
	assert.Equal(t, "7A", view.Group.Class.Name)
	require.NotNil(t, view.Group.Module)
	assert.Equal(t, "Fractions", view.Group.Module.Title)
	assert.Equal(t, 3, view.TotalCount)
	require.Len(t, view.Questions, 3)
	for i, q := range view.Questions {
		assert.Equal(t, questions[i].ID, q.ID)
		assert.Equal(t, questions[i].CorrectAnswer, q.CorrectAnswer)
	}

	_, err = svc.GetQuiz(ctx, 9999)
	assert.True(t, apperror.IsNotFound(err))

	empty := course.QuestionGroup{Title: "Empty", Duration: 10, ClassID: fx.Class.ID, ModuleID: fx.Module.ID, UserID: fx.Admin.ID}
	require.NoError(t, db.Create(&empty).Error)
	_, err = svc.GetQuiz(ctx, empty.ID)
	require.True(t, apperror.IsNotFound(err))
	ae, _ := apperror.As(err)
	assert.Equal(t, "There are no questions in this group!", ae.Message)
}

func TestResults(t *testing.T) {
	svc, db, fx := newTestService(t)
	group1, questions1 := testutil.CreateQuiz(t, db, fx.Class.ID, fx.Module.ID, fx.Admin.ID, 2)
	group2, questions2 := testutil.CreateQuiz(t, db, fx.Class.ID, fx.Module.ID, fx.Admin.ID, 1)
	other := testutil.CreateStudent(t, db, "Sari", fx.Class.ID)
	ctx := context.Background()

	submit := func(studentID, groupID uint, questions []course.Question, options ...string) *SubmitResult {
		res, err := svc.Submit(ctx, SubmitInput{
			Score:        testutil.Float(50),
			CorrectCount: testutil.Int(0),
			StudentID:    studentID,
			GroupID:      groupID,
			Answers:      answersFor(questions, options...),
			ActorUserID:  fx.Admin.ID,
		})
		require.NoError(t, err)
		return res
	}

	first := submit(fx.Student.ID, group1.ID, questions1, "B", "C")
	second := submit(fx.Student.ID, group2.ID, questions2, "A")
	submit(other.ID, group1.ID, questions1, "A", "B")

	t.Run("single result", func(t *testing.T) {
		score, err := svc.Result(ctx, first.ScoreID)
		require.NoError(t, err)
		require.NotNil(t, score.Student)
		require.NotNil(t, score.Student.User)
		require.NotNil(t, score.Student.Class)
		require.NotNil(t, score.QuestionGroup)
		require.NotNil(t, score.QuestionGroup.Module)
		assert.Equal(t, "Budi", score.Student.Name)
		require.Len(t, score.Answers, 2)
		require.NotNil(t, score.Answers[0].Question)
		assert.Equal(t, questions1[0].ID, score.Answers[0].Question.ID)

		_, err = svc.Result(ctx, 9999)
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("student results newest first", func(t *testing.T) {
		require.NoError(t, db.Model(&course.Score{}).Where("id = ?", first.ScoreID).
			UpdateColumn("created_at", time.Now().Add(-time.Hour).UTC()).Error)

		scores, err := svc.StudentResults(ctx, fx.Student.ID)
		require.NoError(t, err)
		require.Len(t, scores, 2)
		assert.Equal(t, second.ScoreID, scores[0].ID)
		assert.Equal(t, first.ScoreID, scores[1].ID)
		require.NotNil(t, scores[0].QuestionGroup)
		assert.NotNil(t, scores[0].QuestionGroup.Module)
	})

	t.Run("all results", func(t *testing.T) {
		scores, err := svc.AllResults(ctx)
		require.NoError(t, err)
		assert.Len(t, scores, 3)
		for _, s := range scores {
			require.NotNil(t, s.Student)
			assert.NotNil(t, s.Student.User)
		}
	})

	t.Run("delete result", func(t *testing.T) {
		require.NoError(t, svc.DeleteResult(ctx, first.ScoreID))
		assert.EqualValues(t, 0, countRows(t, db, &course.AnswerDetail{}, "score_id = ?", first.ScoreID))

		_, err := svc.Result(ctx, first.ScoreID)
		assert.True(t, apperror.IsNotFound(err))
		assert.True(t, apperror.IsNotFound(svc.DeleteResult(ctx, first.ScoreID)))
	})
}

func TestLeaderboard(t *testing.T) {
	svc, db, fx := newTestService(t)
	group, questions := testutil.CreateQuiz(t, db, fx.Class.ID, fx.Module.ID, fx.Admin.ID, 1)
	sari := testutil.CreateStudent(t, db, "Sari", fx.Class.ID)
	eko := testutil.CreateStudent(t, db, "Eko", fx.Class.ID)
	ctx := context.Background()

	submit := func(studentID uint, score float64) uint {
		res, err := svc.Submit(ctx, SubmitInput{
			Score:        testutil.Float(score),
			CorrectCount: testutil.Int(0),
			StudentID:    studentID,
			GroupID:      group.ID,
			Answers:      answersFor(questions, "A"),
			ActorUserID:  fx.Admin.ID,
		})
		require.NoError(t, err)
		return res.ScoreID
	}

	budiScore := submit(fx.Student.ID, 90)
	submit(sari.ID, 75)
	ekoScore := submit(eko.ID, 90)

	nowUTC := time.Now().UTC()
	svc.now = func() time.Time { return nowUTC }
	require.NoError(t, db.Model(&course.Score{}).Where("id = ?", budiScore).
		UpdateColumn("updated_at", nowUTC.Add(-time.Minute)).Error)

	board, err := svc.Leaderboard(ctx, group.ID, PeriodAll, 0)
	require.NoError(t, err)
	require.Len(t, board.Entries, 3)
	assert.Nil(t, board.Since)
	assert.Equal(t, "Budi", board.Entries[0].StudentName)
	assert.Equal(t, 1, board.Entries[0].Rank)
	assert.Equal(t, "Eko", board.Entries[1].StudentName)
	assert.Equal(t, 1, board.Entries[1].Rank)
	assert.Equal(t, "Sari", board.Entries[2].StudentName)
	assert.Equal(t, 3, board.Entries[2].Rank)
	assert.Equal(t, "7A", board.Entries[2].ClassName)

	limited, err := svc.Leaderboard(ctx, group.ID, PeriodAll, 1)
	require.NoError(t, err)
	assert.Len(t, limited.Entries, 1)

	require.NoError(t, db.Model(&course.Score{}).Where("id = ?", ekoScore).
		UpdateColumn("updated_at", nowUTC.AddDate(0, -2, 0)).Error)

	monthly, err := svc.Leaderboard(ctx, group.ID, PeriodMonth, 0)
	require.NoError(t, err)
	require.NotNil(t, monthly.Since)
	for _, e := range monthly.Entries {
		assert.NotEqual(t, "Eko", e.StudentName)
	}

	_, err = svc.Leaderboard(ctx, group.ID, "year", 0)
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Leaderboard(ctx, 9999, PeriodAll, 0)
	assert.True(t, apperror.IsNotFound(err))
}
