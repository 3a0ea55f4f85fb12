package course

import "time"

// AutoCompleteThreshold is the completion percentage at which watching a
// sub-module marks it completed.
const AutoCompleteThreshold = 80.0

// Progress tracks one student's state on one sub-module. IsCompleted only
// ever moves from false to true.
type Progress struct {
	ID                   uint       `json:"id" gorm:"primaryKey"`
	StudentID            uint       `json:"siswaId" gorm:"uniqueIndex:idx_progress_student_sub_module,priority:1;not null"`
	Student              *Student   `json:"siswa,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	SubModuleID          uint       `json:"subModulId" gorm:"uniqueIndex:idx_progress_student_sub_module,priority:2;index;not null"`
	SubModule            *SubModule `json:"subModul,omitempty" gorm:"foreignKey:SubModuleID;constraint:OnDelete:CASCADE"`
	ModuleID             uint       `json:"modulId" gorm:"index;not null"`
	Module               *Module    `json:"modul,omitempty" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
	IsCompleted          bool       `json:"isCompleted" gorm:"default:false;not null"`
	CompletedAt          *time.Time `json:"completedAt"`
	WatchTime            int        `json:"watchTime" gorm:"default:0;not null"`      // seconds
	TotalWatchTime       int        `json:"totalWatchTime" gorm:"default:0;not null"` // seconds
	CompletionPercentage float64    `json:"completionPercentage" gorm:"default:0;not null"`
	LastAccessedAt       time.Time  `json:"lastAccessedAt" gorm:"not null"`
	Notes                *string    `json:"notes" gorm:"type:text"`
	UserID               uint       `json:"userId" gorm:"not null"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

func (Progress) TableName() string { return "student_progress" }
