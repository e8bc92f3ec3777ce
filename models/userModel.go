package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"type:varchar(150);uniqueIndex;not null"`
	Password     string `json:"-" gorm:"type:varchar(255);not null"`
	IsAdmin      bool   `json:"isAdmin" gorm:"default:false"`
	FirstName    string `json:"firstName" gorm:"type:varchar(100)"`
	LastName     string `json:"lastName" gorm:"type:varchar(100)"`
	Phone        string `json:"phone" gorm:"type:varchar(20)"`
	Address      string `json:"address" gorm:"type:text"`
	ProfileImage string `json:"profileImage" gorm:"type:varchar(300)"`
}

// Session binds a signed cookie to a user. Deleting the row logs the user out.
type Session struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	User      User      `gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

type LoginData struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type RegisterData struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}
