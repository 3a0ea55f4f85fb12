package progress

import (
	"context"
	"math"
	"sort"
	"time"

	"lms/apperror"
	"lms/models/course"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Snapshot is the progress shown to the student. A sub-module that was never
// started renders as an all-zero snapshot with Started=false.
type Snapshot struct {
	Started              bool       `json:"started"`
	IsCompleted          bool       `json:"isCompleted"`
	CompletedAt          *time.Time `json:"completedAt"`
	CompletionPercentage float64    `json:"completionPercentage"`
	WatchTime            int        `json:"watchTime"`
	TotalWatchTime       int        `json:"totalWatchTime"`
	LastAccessedAt       *time.Time `json:"lastAccessedAt"`
	Notes                *string    `json:"notes"`
}

func snapshotOf(p *course.Progress) Snapshot {
	if p == nil {
		return Snapshot{}
	}
	lastAccessed := p.LastAccessedAt
	return Snapshot{
		Started:              true,
		IsCompleted:          p.IsCompleted,
		CompletedAt:          p.CompletedAt,
		CompletionPercentage: p.CompletionPercentage,
		WatchTime:            p.WatchTime,
		TotalWatchTime:       p.TotalWatchTime,
		LastAccessedAt:       &lastAccessed,
		Notes:                p.Notes,
	}
}

type SubModuleProgress struct {
	SubModule course.SubModule `json:"subModul"`
	Progress  Snapshot         `json:"progress"`
}

type ModuleProgress struct {
	ModuleID            uint                `json:"modulId"`
	TotalSubModules     int                 `json:"totalSubModules"`
	CompletedSubModules int                 `json:"completedSubModules"`
	OverallProgress     int                 `json:"overallProgress"`
	SubModules          []SubModuleProgress `json:"subModulesProgress"`
}

// ModuleProgress lists every sub-module of a module in gate order with the
// student's progress on it.
func (s *Service) ModuleProgress(ctx context.Context, studentID, moduleID uint) (*ModuleProgress, error) {
	db := s.db.WithContext(ctx)

	subs := []course.SubModule{}
	if err := db.Where("module_id = ?", moduleID).
		Preload("Module").
		Order("created_at asc, id asc").
		Find(&subs).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch sub modules!")
	}
	if len(subs) == 0 {
		return nil, apperror.NotFound("Sub module not found!")
	}

	ids := make([]uint, len(subs))
	for i, sub := range subs {
		ids[i] = sub.ID
	}
	var rows []course.Progress
	if err := db.Where("student_id = ? AND sub_module_id IN ?", studentID, ids).
		Find(&rows).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch progress!")
	}
	bySub := make(map[uint]*course.Progress, len(rows))
	for i := range rows {
		bySub[rows[i].SubModuleID] = &rows[i]
	}

	out := &ModuleProgress{
		ModuleID:        moduleID,
		TotalSubModules: len(subs),
		SubModules:      make([]SubModuleProgress, len(subs)),
	}
	for i, sub := range subs {
		snap := snapshotOf(bySub[sub.ID])
		if snap.IsCompleted {
			out.CompletedSubModules++
		}
		out.SubModules[i] = SubModuleProgress{SubModule: sub, Progress: snap}
	}
	out.OverallProgress = int(math.Round(float64(out.CompletedSubModules) / float64(out.TotalSubModules) * 100))
	return out, nil
}

// SubModuleProgress returns one sub-module with the student's progress on it.
func (s *Service) SubModuleProgress(ctx context.Context, studentID, subModuleID uint) (*SubModuleProgress, error) {
	db := s.db.WithContext(ctx)

	var sub course.SubModule
	err := db.Preload("Module").First(&sub, subModuleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Sub module not found!")
	}
	if err != nil {
		return nil, apperror.Internal(err, "Failed to fetch sub module!")
	}

	p, err := s.findProgress(db, studentID, subModuleID)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}
	return &SubModuleProgress{SubModule: sub, Progress: snapshotOf(p)}, nil
}

type ModuleStatistics struct {
	ModuleID            uint   `json:"modulId"`
	ModuleTitle         string `json:"modulTitle"`
	TotalSubModules     int    `json:"totalSubModules"`
	CompletedSubModules int    `json:"completedSubModules"`
	TotalWatchTime      int    `json:"totalWatchTime"`
}

type Statistics struct {
	TotalSubModules     int                `json:"totalSubModules"`
	CompletedSubModules int                `json:"completedSubModules"`
	OverallProgress     float64            `json:"overallProgress"`
	TotalWatchTime      int                `json:"totalWatchTime"`
	AverageCompletion   int                `json:"averageCompletion"`
	Modules             []ModuleStatistics `json:"moduleStatistics"`
}

// Statistics summarises every sub-module the student has started.
func (s *Service) Statistics(ctx context.Context, studentID uint) (*Statistics, error) {
	var rows []course.Progress
	if err := s.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Module").
		Find(&rows).Error; err != nil {
		return nil, apperror.Internal(err, "Failed to fetch progress!")
	}

	out := &Statistics{Modules: []ModuleStatistics{}}
	byModule := make(map[uint]*ModuleStatistics)
	var percentageSum float64
	for _, p := range rows {
		out.TotalSubModules++
		out.TotalWatchTime += p.WatchTime
		percentageSum += p.CompletionPercentage
		if p.IsCompleted {
			out.CompletedSubModules++
		}

		ms, ok := byModule[p.ModuleID]
		if !ok {
			ms = &ModuleStatistics{ModuleID: p.ModuleID}
			if p.Module != nil {
				ms.ModuleTitle = p.Module.Title
			}
			byModule[p.ModuleID] = ms
		}
		ms.TotalSubModules++
		ms.TotalWatchTime += p.WatchTime
		if p.IsCompleted {
			ms.CompletedSubModules++
		}
	}

	if out.TotalSubModules > 0 {
		out.OverallProgress = float64(out.CompletedSubModules) / float64(out.TotalSubModules) * 100
		out.AverageCompletion = int(math.Round(percentageSum / float64(out.TotalSubModules)))
	}
	for _, ms := range byModule {
		out.Modules = append(out.Modules, *ms)
	}
	sort.Slice(out.Modules, func(i, j int) bool { return out.Modules[i].ModuleID < out.Modules[j].ModuleID })
	return out, nil
}
