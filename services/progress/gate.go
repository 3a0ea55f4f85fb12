package progress

import (
	"context"

	"lms/apperror"
	"lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StartOrTouch opens a progress row for the student on first access and
// afterwards only refreshes last_accessed_at. Both cases are one upsert on
// (student_id, sub_module_id), so concurrent first visits cannot duplicate
// the row.
func (s *Service) StartOrTouch(ctx context.Context, studentID, subModuleID, actorUserID uint) (*course.Progress, error) {
	if studentID == 0 {
		return nil, apperror.Validation("Student ID is required!")
	}
	if subModuleID == 0 {
		return nil, apperror.Validation("Sub module ID (subModulId) is required!")
	}

	var out course.Progress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sub, err := s.findSubModule(tx, subModuleID)
		if err != nil {
			return err
		}

		now := s.now()
		row := course.Progress{
			StudentID:            studentID,
			SubModuleID:          sub.ID,
			ModuleID:             sub.ModuleID,
			IsCompleted:          false,
			CompletionPercentage: 0,
			WatchTime:            0,
			LastAccessedAt:       now,
			UserID:               actorUserID,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "student_id"}, {Name: "sub_module_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_accessed_at", "updated_at"}),
		}).Create(&row).Error; err != nil {
			return apperror.Internal(err, "Failed to start progress!")
		}

		p, err := s.findProgress(tx, studentID, subModuleID)
		if err != nil {
			return err
		}
		out = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug("progress touched", "student_id", studentID, "sub_module_id", subModuleID)
	return &out, nil
}

// UpdateWatchInput holds the watch counters reported by the player. Nil
// fields keep their stored value.
type UpdateWatchInput struct {
	StudentID            uint
	SubModuleID          uint
	WatchTime            *int
	TotalWatchTime       *int
	CompletionPercentage *float64
}

// UpdateWatch overwrites the watch counters of an existing progress row.
// Reaching course.AutoCompleteThreshold completes the row; a later, lower
// percentage never un-completes it.
func (s *Service) UpdateWatch(ctx context.Context, in UpdateWatchInput) (*course.Progress, error) {
	if in.SubModuleID == 0 {
		return nil, apperror.Validation("Sub module ID (subModulId) is required!")
	}
	if in.WatchTime != nil && *in.WatchTime < 0 {
		return nil, apperror.Validation("Watch time cannot be negative!")
	}
	if in.TotalWatchTime != nil && *in.TotalWatchTime < 0 {
		return nil, apperror.Validation("Total watch time cannot be negative!")
	}
	if in.CompletionPercentage != nil && (*in.CompletionPercentage < 0 || *in.CompletionPercentage > 100) {
		return nil, apperror.Validation("Completion percentage must be between 0 and 100!")
	}

	var out course.Progress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.findProgress(tx, in.StudentID, in.SubModuleID)
		if err != nil {
			return err
		}

		watchTime := p.WatchTime
		if in.WatchTime != nil {
			watchTime = *in.WatchTime
		}
		totalWatchTime := p.TotalWatchTime
		if in.TotalWatchTime != nil {
			totalWatchTime = *in.TotalWatchTime
		}
		percentage := p.CompletionPercentage
		if in.CompletionPercentage != nil {
			percentage = *in.CompletionPercentage
		}

		now := s.now()
		if err := tx.Model(&course.Progress{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
			"watch_time":            watchTime,
			"total_watch_time":      totalWatchTime,
			"completion_percentage": percentage,
			"last_accessed_at":      now,
		}).Error; err != nil {
			return apperror.Internal(err, "Failed to update progress!")
		}

		if percentage >= course.AutoCompleteThreshold {
			if err := tx.Model(&course.Progress{}).
				Where("id = ? AND is_completed = ?", p.ID, false).
				Updates(map[string]interface{}{
					"is_completed": true,
					"completed_at": now,
				}).Error; err != nil {
				return apperror.Internal(err, "Failed to complete progress!")
			}
		}

		p, err = s.findProgress(tx, in.StudentID, in.SubModuleID)
		if err != nil {
			return err
		}
		out = *p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// MarkComplete forces the row into its completed state and stamps
// completedAt with the current time. An empty note keeps the stored one.
func (s *Service) MarkComplete(ctx context.Context, studentID, subModuleID uint, notes *string) (*course.Progress, error) {
	if subModuleID == 0 {
		return nil, apperror.Validation("Sub module ID (subModulId) is required!")
	}

	var out course.Progress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.findProgress(tx, studentID, subModuleID)
		if err != nil {
			return err
		}

		now := s.now()
		updates := map[string]interface{}{
			"is_completed":          true,
			"completion_percentage": 100,
			"completed_at":          now,
			"last_accessed_at":      now,
		}
		if notes != nil && *notes != "" {
			updates["notes"] = *notes
		}
		if err := tx.Model(&course.Progress{}).Where("id = ?", p.ID).Updates(updates).Error; err != nil {
			return apperror.Internal(err, "Failed to mark sub module as completed!")
		}

		p, err = s.findProgress(tx, studentID, subModuleID)
		if err != nil {
			return err
		}
		out = *p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("sub module completed", "student_id", studentID, "sub_module_id", subModuleID)
	return &out, nil
}

type PreviousSubModule struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	IsCompleted bool   `json:"isCompleted"`
}

type AccessResult struct {
	CanAccess       bool               `json:"canAccess"`
	Message         string             `json:"message"`
	CurrentIndex    int                `json:"currentIndex"`
	TotalSubModules int                `json:"totalSubModules"`
	Previous        *PreviousSubModule `json:"previousSubModul,omitempty"`
}

// CheckAccess opens the first sub-module of a module unconditionally and any
// later one only when its immediate predecessor is completed.
func (s *Service) CheckAccess(ctx context.Context, studentID, subModuleID uint) (*AccessResult, error) {
	db := s.db.WithContext(ctx)

	current, err := s.findSubModule(db, subModuleID)
	if err != nil {
		return nil, err
	}
	subs, err := s.siblings(db, current.ModuleID)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, sub := range subs {
		if sub.ID == current.ID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, apperror.NotFound("Sub module not found in its module sequence!")
	}

	if index == 0 {
		return &AccessResult{
			CanAccess:       true,
			Message:         "The first sub module is always accessible",
			CurrentIndex:    index,
			TotalSubModules: len(subs),
		}, nil
	}

	previous := subs[index-1]
	completed := false
	p, err := s.findProgress(db, studentID, previous.ID)
	switch {
	case err == nil:
		completed = p.IsCompleted
	case apperror.IsNotFound(err):
	default:
		return nil, err
	}

	msg := "Complete the previous sub module first"
	if completed {
		msg = "This sub module is accessible"
	}
	return &AccessResult{
		CanAccess:       completed,
		Message:         msg,
		CurrentIndex:    index,
		TotalSubModules: len(subs),
		Previous: &PreviousSubModule{
			ID:          previous.ID,
			Title:       previous.Title,
			IsCompleted: completed,
		},
	}, nil
}
