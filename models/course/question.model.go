package course

import "time"

// QuestionGroup ("group soal") is a timed quiz for one class and one module.
type QuestionGroup struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"judul"`
	Duration  int       `json:"durasi"` // minutes
	ClassID   uint      `json:"kelasId" gorm:"index;not null"`
	Class     *Class    `json:"kelas,omitempty" gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
	ModuleID  uint      `json:"modulId" gorm:"index;not null"`
	Module    *Module   `json:"modul,omitempty" gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE"`
	UserID    uint      `json:"userId" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (QuestionGroup) TableName() string { return "question_groups" }

// Option labels a question may carry, in display order.
var OptionLabels = []string{"A", "B", "C", "D", "E"}

// IsOptionLabel reports whether s is one of A..E.
func IsOptionLabel(s string) bool {
	for _, l := range OptionLabels {
		if s == l {
			return true
		}
	}
	return false
}

// Question ("soal") belongs to exactly one QuestionGroup.
type Question struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	QuestionGroupID uint           `json:"groupSoalId" gorm:"index;not null"`
	QuestionGroup   *QuestionGroup `json:"groupSoal,omitempty" gorm:"foreignKey:QuestionGroupID;constraint:OnDelete:CASCADE"`
	Title           string         `json:"judul"`
	Image           string         `json:"image"`
	URL             string         `json:"url"`
	Story           string         `json:"cerita" gorm:"type:text"`
	Prompt          string         `json:"soal" gorm:"type:text"`
	OptionA         string         `json:"optionA"`
	OptionB         string         `json:"optionB"`
	OptionC         string         `json:"optionC"`
	OptionD         string         `json:"optionD"`
	OptionE         string         `json:"optionE"`
	CorrectAnswer   string         `json:"correctAnswer"`
	UserID          uint           `json:"userId" gorm:"not null"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (Question) TableName() string { return "questions" }
