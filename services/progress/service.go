package progress

import (
	"context"
	"time"

	"lms/apperror"
	"lms/logger"
	"lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Service is the progress gate: it records watch and completion state per
// student and sub-module and decides whether the next sub-module is open.
type Service struct {
	db  *gorm.DB
	log *logger.Logger
	now func() time.Time
}

func NewService(db *gorm.DB, baseLog *logger.Logger) *Service {
	return &Service{
		db:  db,
		log: baseLog.With("service", "ProgressService"),
		now: time.Now,
	}
}

// StudentByUserID resolves the student record behind a logged in user.
func (s *Service) StudentByUserID(ctx context.Context, userID uint) (*course.Student, error) {
	var student course.Student
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Student data not found!")
	}
	if err != nil {
		return nil, apperror.Internal(err, "Failed to fetch student data!")
	}
	return &student, nil
}

func (s *Service) findSubModule(db *gorm.DB, subModuleID uint) (*course.SubModule, error) {
	var sub course.SubModule
	err := db.First(&sub, subModuleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Sub module not found!")
	}
	if err != nil {
		return nil, apperror.Internal(err, "Failed to fetch sub module!")
	}
	return &sub, nil
}

// findProgress returns the progress row or a NotFound telling the caller to
// start the sub-module first.
func (s *Service) findProgress(db *gorm.DB, studentID, subModuleID uint) (*course.Progress, error) {
	var p course.Progress
	err := db.Where("student_id = ? AND sub_module_id = ?", studentID, subModuleID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Progress not found. Start the sub module first!")
	}
	if err != nil {
		return nil, apperror.Internal(err, "Failed to fetch progress!")
	}
	return &p, nil
}

// siblings returns the sub-modules of a module in gate order.
func (s *Service) siblings(db *gorm.DB, moduleID uint) ([]course.SubModule, error) {
	subs := []course.SubModule{}
	if err := db.Where("module_id = ?", moduleID).
		Order("created_at asc, id asc").
		Find(&subs).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch sub modules!")
	}
	return subs, nil
}
