package course

import "time"

// Module ("modul") is a unit of learning made of ordered sub-modules.
type Module struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"judul"`
	Description string    `json:"deskripsi"`
	Image       string    `json:"image"`
	URL         string    `json:"url"`
	UserID      uint      `json:"userId" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Module) TableName() string { return "modules" }

// SubModule is one lesson of a Module. Siblings are ordered by creation
// time (id breaks ties); the progress gate relies on that order.
type SubModule struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	ModuleID    uint      `json:"modulId" gorm:"index:idx_sub_module_order,priority:1;not null"`
	Module      *Module   `json:"modul,omitempty" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
	Title       string    `json:"subJudul"`
	Description string    `json:"subDeskripsi"`
	YoutubeURL  string    `json:"urlYoutube" gorm:"not null"`
	CoverImage  string    `json:"coverImage"`
	URL         string    `json:"url"`
	UserID      uint      `json:"userId" gorm:"not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"index:idx_sub_module_order,priority:2"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (SubModule) TableName() string { return "sub_modules" }
