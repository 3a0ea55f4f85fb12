package quiz

import (
	"context"
	"time"

	"lms/apperror"
	"lms/models/course"

	"github.com/jinzhu/now"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	PeriodAll   = "all"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

type LeaderboardEntry struct {
	Rank           int       `json:"rank"`
	ScoreID        uint      `json:"nilaiId" gorm:"column:score_id"`
	StudentID      uint      `json:"siswaId" gorm:"column:student_id"`
	StudentName    string    `json:"namaSiswa" gorm:"column:student_name"`
	ClassName      string    `json:"namaKelas" gorm:"column:class_name"`
	Score          float64   `json:"skor" gorm:"column:score"`
	CorrectCount   int       `json:"jumlahJawabanBenar" gorm:"column:correct_count"`
	TotalQuestions int       `json:"jumlahSoal" gorm:"column:total_questions"`
	SubmittedAt    time.Time `json:"submittedAt" gorm:"column:updated_at"`
}

type Leaderboard struct {
	GroupID uint               `json:"groupSoalId"`
	Title   string             `json:"judul"`
	Period  string             `json:"period"`
	Since   *time.Time         `json:"since"`
	Entries []LeaderboardEntry `json:"entries"`
}

// Leaderboard ranks the scores of one quiz. Equal scores share a rank; the
// earlier submission is listed first. period limits results to the current
// calendar week or month.
func (s *Service) Leaderboard(ctx context.Context, groupID uint, period string, limit int) (*Leaderboard, error) {
	if period == "" {
		period = PeriodAll
	}
	var since *time.Time
	switch period {
	case PeriodAll:
	case PeriodWeek:
		t := now.With(s.now()).BeginningOfWeek()
		since = &t
	case PeriodMonth:
		t := now.With(s.now()).BeginningOfMonth()
		since = &t
	default:
		return nil, apperror.Validation("Period must be one of all, week or month!")
	}

	var group course.QuestionGroup
	err := s.db.WithContext(ctx).First(&group, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Question group not found!")
	}
	if err != nil {
		return nil, apperror.Internal(err, "Failed to fetch question group!")
	}

	q := s.db.WithContext(ctx).
		Table("scores").
		Select("scores.id AS score_id, scores.student_id, students.name AS student_name, " +
			"COALESCE(classes.name, '') AS class_name, scores.score, scores.correct_count, " +
			"scores.total_questions, scores.updated_at").
		Joins("JOIN students ON students.id = scores.student_id").
		Joins("LEFT JOIN classes ON classes.id = students.class_id").
		Where("scores.question_group_id = ?", groupID)
	if since != nil {
		q = q.Where("scores.updated_at >= ?", *since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	entries := []LeaderboardEntry{}
	if err := q.Order("scores.score desc, scores.updated_at asc, scores.id asc").
		Scan(&entries).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to build leaderboard!")
	}

	for i := range entries {
		if i > 0 && entries[i].Score == entries[i-1].Score {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}

	return &Leaderboard{
		GroupID: group.ID,
		Title:   group.Title,
		Period:  period,
		Since:   since,
		Entries: entries,
	}, nil
}
