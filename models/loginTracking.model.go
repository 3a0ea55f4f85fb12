package models

import "time"

// LoginTracking records one successful login of a user.
type LoginTracking struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	User      *User     `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	IPAddress string    `json:"ipAddress"`
	Device    string    `json:"device"`
	CreatedAt time.Time `json:"createdAt"`
}
