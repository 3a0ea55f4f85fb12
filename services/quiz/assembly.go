package quiz

import (
	"context"

	"lms/apperror"
	"lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// QuizGroup is the metadata block shown above the questions.
type QuizGroup struct {
	ID       uint           `json:"id"`
	Title    string         `json:"judul"`
	Duration int            `json:"durasi"`
	Class    *course.Class  `json:"kelas"`
	Module   *course.Module `json:"modul"`
}

// QuizView is a question group resolved into its ordered question set.
type QuizView struct {
	Group      QuizGroup         `json:"groupSoal"`
	Questions  []course.Question `json:"soals"`
	TotalCount int               `json:"totalSoal"`
}

// GetQuiz returns the group and all of its questions ordered by id.
// The correct answer label travels with every question.
func (s *Service) GetQuiz(ctx context.Context, groupID uint) (*QuizView, error) {
	var group course.QuestionGroup
	err := s.db.WithContext(ctx).
		Preload("Class").
		Preload("Module").
		First(&group, groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Question group not found!")
	}
	if err != nil {
		return nil, apperror.Internal(err, "Failed to fetch quiz!")
	}

	var questions []course.Question
	if err := s.db.WithContext(ctx).
		Where("question_group_id = ?", groupID).
		Order("id asc").
		Find(&questions).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch quiz questions!")
	}
	if len(questions) == 0 {
		return nil, apperror.NotFound("There are no questions in this group!")
	}

	return &QuizView{
		Group: QuizGroup{
			ID:       group.ID,
			Title:    group.Title,
			Duration: group.Duration,
			Class:    group.Class,
			Module:   group.Module,
		},
		Questions:  questions,
		TotalCount: len(questions),
	}, nil
}
