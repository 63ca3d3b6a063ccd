package models

import (
	"time"

	"gorm.io/gorm"
)

type ContactMessage struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `gorm:"size:255" json:"full_name"`
	Email    string `gorm:"size:150" json:"email"`
	Phone    string `gorm:"size:32" json:"phone,omitempty"`
	Subject  string `gorm:"size:255" json:"subject"`
	Message  string `gorm:"type:text" json:"message"`
}
