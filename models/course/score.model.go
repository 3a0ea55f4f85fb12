package course

import "time"

// Score ("nilai") is the authoritative result of one student for one quiz.
// The unique index keeps it single per (student, group); retakes update it
// in place.
type Score struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	Value           float64        `json:"skor" gorm:"column:score;type:decimal(5,2);not null"`
	CorrectCount    int            `json:"jumlahJawabanBenar" gorm:"not null"`
	TotalQuestions  int            `json:"jumlahSoal" gorm:"not null"` // question count when submitted
	StudentID       uint           `json:"siswaId" gorm:"uniqueIndex:idx_score_student_group,priority:1;not null"`
	Student         *Student       `json:"siswa,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	QuestionGroupID uint           `json:"groupSoalId" gorm:"uniqueIndex:idx_score_student_group,priority:2;index;not null"`
	QuestionGroup   *QuestionGroup `json:"groupSoal,omitempty" gorm:"foreignKey:QuestionGroupID;constraint:OnDelete:CASCADE"`
	UserID          uint           `json:"userId" gorm:"not null"`
	Answers         []AnswerDetail `json:"nilaiSoals,omitempty" gorm:"foreignKey:ScoreID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (Score) TableName() string { return "scores" }

// AnswerDetail ("nilai soal") is one submitted answer of a Score. The whole
// set is replaced on every retake.
type AnswerDetail struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ScoreID        uint      `json:"nilaiId" gorm:"uniqueIndex:idx_answer_score_question,priority:1;not null"`
	QuestionID     uint      `json:"soalId" gorm:"uniqueIndex:idx_answer_score_question,priority:2;index;not null"`
	Question       *Question `json:"soal,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
	SelectedOption string    `json:"jawaban"`
	IsCorrect      bool      `json:"benar" gorm:"default:false;not null"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (AnswerDetail) TableName() string { return "answer_details" }
