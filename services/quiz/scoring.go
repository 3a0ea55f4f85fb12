package quiz

import (
	"context"
	"fmt"

	"lms/apperror"
	"lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Answer is one submitted answer as the client graded it.
type Answer struct {
	QuestionID     uint
	SelectedOption string
	IsCorrect      bool
}

// SubmitInput carries a quiz submission. Score and CorrectCount are
// pointers so that an explicit zero is told apart from a missing value;
// a nil Answers slice means the field was absent, an empty one is valid.
type SubmitInput struct {
	Score        *float64
	CorrectCount *int
	StudentID    uint
	GroupID      uint
	Answers      []Answer
	ActorUserID  uint
}

type SubmitResult struct {
	ScoreID  uint         `json:"nilaiId"`
	IsRetake bool         `json:"isRetake"`
	Score    course.Score `json:"nilai"`
}

func (r SubmitResult) Message() string {
	if r.IsRetake {
		return "Quiz retaken and the score has been updated!"
	}
	return "Quiz completed successfully!"
}

const answerBatchSize = 100

// Submit writes the submission as the single score of the student for the
// group. The score row is upserted on (student_id, question_group_id) and
// its answer details are replaced, all inside one transaction.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	if err := validateSubmission(in); err != nil {
		return nil, err
	}

	var result *SubmitResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := exists(tx, &course.Student{}, in.StudentID, "Student not found!"); err != nil {
			return err
		}
		if err := exists(tx, &course.QuestionGroup{}, in.GroupID, "Question group not found!"); err != nil {
			return err
		}

		var questionIDs []uint
		if err := tx.Model(&course.Question{}).
			Where("question_group_id = ?", in.GroupID).
			Pluck("id", &questionIDs).Error; err != nil {
			return apperror.Internal(err, "Failed to count quiz questions!")
		}
		totalQuestions := len(questionIDs)

		if *in.CorrectCount > totalQuestions {
			return apperror.Validation(fmt.Sprintf("Correct answer count (jumlahJawabanBenar) cannot exceed the %d questions of this quiz!", totalQuestions))
		}
		if err := validateAnswers(in.Answers, questionIDs); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&course.Score{}).
			Where("student_id = ? AND question_group_id = ?", in.StudentID, in.GroupID).
			Count(&existing).Error; err != nil {
			return apperror.Internal(err, "Failed to look up previous score!")
		}

		row := course.Score{
			Value:           *in.Score,
			CorrectCount:    *in.CorrectCount,
			TotalQuestions:  totalQuestions,
			StudentID:       in.StudentID,
			QuestionGroupID: in.GroupID,
			UserID:          in.ActorUserID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "student_id"}, {Name: "question_group_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"score",
				"correct_count",
				"total_questions",
				"user_id",
				"updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return apperror.Internal(err, "Failed to save score!")
		}

		var current course.Score
		if err := tx.Where("student_id = ? AND question_group_id = ?", in.StudentID, in.GroupID).
			First(&current).Error; err != nil {
			return apperror.Internal(err, "Failed to reload score!")
		}

		if err := tx.Where("score_id = ?", current.ID).Delete(&course.AnswerDetail{}).Error; err != nil {
			return apperror.Internal(err, "Failed to clear previous answers!")
		}

		if len(in.Answers) > 0 {
			details := make([]course.AnswerDetail, len(in.Answers))
			for i, a := range in.Answers {
				details[i] = course.AnswerDetail{
					ScoreID:        current.ID,
					QuestionID:     a.QuestionID,
					SelectedOption: a.SelectedOption,
					IsCorrect:      a.IsCorrect,
				}
			}
			if err := tx.CreateInBatches(&details, answerBatchSize).Error; err != nil {
				return apperror.Internal(err, "Failed to save answers!")
			}
		}

		result = &SubmitResult{ScoreID: current.ID, IsRetake: existing > 0, Score: current}
		return nil
	})
	if err != nil {
		if apperror.KindOf(err) == apperror.KindInternal {
			s.log.Error("quiz submission failed",
				"student_id", in.StudentID,
				"group_id", in.GroupID,
				"error", err,
			)
		}
		return nil, err
	}

	s.log.Info("quiz submitted",
		"score_id", result.ScoreID,
		"student_id", in.StudentID,
		"group_id", in.GroupID,
		"retake", result.IsRetake,
		"answers", len(in.Answers),
	)
	return result, nil
}

func validateSubmission(in SubmitInput) error {
	if in.Score == nil {
		return apperror.Validation("Score (skor) is required!")
	}
	if *in.Score < 0 || *in.Score > 100 {
		return apperror.Validation("Score (skor) must be between 0 and 100!")
	}
	if in.CorrectCount == nil {
		return apperror.Validation("Correct answer count (jumlahJawabanBenar) is required!")
	}
	if *in.CorrectCount < 0 {
		return apperror.Validation("Correct answer count (jumlahJawabanBenar) cannot be negative!")
	}
	if in.StudentID == 0 {
		return apperror.Validation("Student ID (siswaId) is required!")
	}
	if in.GroupID == 0 {
		return apperror.Validation("Question group ID (groupSoalId) is required!")
	}
	if in.Answers == nil {
		return apperror.Validation("Detailed answers (detailedAnswers) are required and must be an array!")
	}
	return nil
}

// validateAnswers checks every answer against the questions of the group.
func validateAnswers(answers []Answer, questionIDs []uint) error {
	inGroup := make(map[uint]struct{}, len(questionIDs))
	for _, id := range questionIDs {
		inGroup[id] = struct{}{}
	}

	fields := make(map[string]string)
	seen := make(map[uint]struct{}, len(answers))
	for i, a := range answers {
		key := fmt.Sprintf("detailedAnswers[%d]", i)
		if _, ok := inGroup[a.QuestionID]; !ok {
			fields[key+".soalId"] = "Question does not belong to this quiz!"
			continue
		}
		if _, dup := seen[a.QuestionID]; dup {
			fields[key+".soalId"] = "Question answered more than once!"
			continue
		}
		seen[a.QuestionID] = struct{}{}
		if a.SelectedOption != "" && !course.IsOptionLabel(a.SelectedOption) {
			fields[key+".jawaban"] = "Answer must be one of A, B, C, D or E!"
		}
	}
	if len(fields) > 0 {
		return apperror.ValidationFields("Submitted answers do not match the quiz!", fields)
	}
	return nil
}

func exists(tx *gorm.DB, model interface{}, id uint, notFound string) error {
	var count int64
	if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return apperror.Internal(errors.Wrap(err, notFound), "Failed to validate submission!")
	}
	if count == 0 {
		return apperror.NotFound(notFound)
	}
	return nil
}
