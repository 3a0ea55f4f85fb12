package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "guru"
	RoleStudent = "siswa"
)

// User is an account in the identity directory. Students, teachers and
// admins all log in through it; Role decides which routes they may use.
type User struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Name      string     `json:"name" gorm:"default:''"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"default:'siswa';not null"`
	LastLogin *time.Time `json:"lastLogin"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// IsStaff reports whether the user may manage content and see other students' results.
func (u User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleTeacher
}
