package course

import (
	"lms/models"
	"time"
)

// Class ("kelas") groups students of one grade.
type Class struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Grade     int       `json:"kelas"`
	Name      string    `json:"namaKelas"`
	UserID    uint      `json:"userId" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Class) TableName() string { return "classes" }

// Student ("siswa") links a login account to a class. It is created by
// enrollment and only referenced by foreign key from scores and progress.
type Student struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	NIS       string       `json:"nis"`
	Name      string       `json:"nama"`
	Email     string       `json:"email"`
	Phone     string       `json:"noHp"`
	ClassID   uint         `json:"kelasId" gorm:"index;not null"`
	Class     *Class       `json:"kelas,omitempty" gorm:"foreignKey:ClassID;constraint:OnDelete:CASCADE"`
	UserID    uint         `json:"userId" gorm:"uniqueIndex;not null"`
	User      *models.User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (Student) TableName() string { return "students" }
