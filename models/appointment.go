package models

import (
	"time"

	"gorm.io/gorm"
)

// Appointment is a viewing/consultation request. It shares the submission
// validation rules with Booking but has no inventory linkage and no status.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID *uint  `gorm:"index;column:property_id" json:"property_id,omitempty"`
	FullName   string `gorm:"size:255" json:"full_name"`
	Email      string `gorm:"size:150" json:"email"`
	Phone      string `gorm:"size:32" json:"phone"`

	PreferredAt *time.Time `gorm:"column:preferred_at" json:"preferred_at,omitempty"`
	Notes       string     `gorm:"type:text" json:"notes,omitempty"`

	ContactChannel string `gorm:"column:contact_channel;size:32" json:"contact_channel"`
}
