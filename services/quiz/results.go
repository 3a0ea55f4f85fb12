package quiz

import (
	"context"

	"lms/apperror"
	"lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Result loads one score with its student, quiz and answer details.
func (s *Service) Result(ctx context.Context, scoreID uint) (*course.Score, error) {
	var score course.Score
	err := s.db.WithContext(ctx).
		Preload("Student.User").
		Preload("Student.Class").
		Preload("QuestionGroup.Module").
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answer_details.id asc")
		}).
		Preload("Answers.Question").
		First(&score, scoreID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Quiz result not found!")
	}
	if err != nil {
		return nil, apperror.Internal(err, "Failed to fetch quiz result!")
	}
	return &score, nil
}

// StudentResults lists the scores of one student, newest first.
func (s *Service) StudentResults(ctx context.Context, studentID uint) ([]course.Score, error) {
	scores := []course.Score{}
	if err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("QuestionGroup.Module").
		Order("created_at desc, id desc").
		Find(&scores).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch student quiz results!")
	}
	return scores, nil
}

// AllResults lists every score, newest first.
func (s *Service) AllResults(ctx context.Context) ([]course.Score, error) {
	scores := []course.Score{}
	if err := s.db.WithContext(ctx).
		Preload("Student.User").
		Preload("Student.Class").
		Preload("QuestionGroup.Module").
		Order("created_at desc, id desc").
		Find(&scores).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch quiz results!")
	}
	return scores, nil
}

// DeleteResult removes a score together with its answer details.
func (s *Service) DeleteResult(ctx context.Context, scoreID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var score course.Score
		err := tx.First(&score, scoreID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("Quiz result not found!")
		}
		if err != nil {
			return apperror.Internal(err, "Failed to fetch quiz result!")
		}
		if err := tx.Where("score_id = ?", score.ID).Delete(&course.AnswerDetail{}).Error; err != nil {
			return apperror.Internal(err, "Failed to delete quiz answers!")
		}
		if err := tx.Delete(&score).Error; err != nil {
			return apperror.Internal(err, "Failed to delete quiz result!")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info("quiz result deleted", "score_id", scoreID)
	return nil
}
