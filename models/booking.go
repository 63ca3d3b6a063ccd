package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. A booking is created pending and moved exactly once by an
// admin to approved or rejected; neither terminal state transitions further.
const (
	BookingStatusPending  = "pending"
	BookingStatusApproved = "approved"
	BookingStatusRejected = "rejected"
)

// Preferred contact channels accepted from the submission form.
var BookingContactChannels = []string{"whatsapp", "telegram", "viber", "wechat", "phone", "email"}

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	PropertyID uint   `gorm:"index;column:property_id" json:"property_id"`
	UnitType   string `gorm:"column:unit_type;size:32" json:"unit_type"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`

	FullName       string     `gorm:"size:255" json:"full_name"`
	Email          string     `gorm:"index;size:150" json:"email"`
	Phone          string     `gorm:"size:32" json:"phone"`
	SecondaryPhone string     `gorm:"size:32" json:"secondary_phone,omitempty"`
	NationalID     string     `gorm:"column:national_id;size:64" json:"national_id"`
	MoveInDate     *time.Time `gorm:"column:move_in_date" json:"move_in_date,omitempty"`
	Notes          string     `gorm:"type:text" json:"notes,omitempty"`

	// one of BookingContactChannels
	ContactChannel string `gorm:"column:contact_channel;size:32" json:"contact_channel"`

	Status          string `gorm:"size:32;index" json:"status"`
	RejectionReason string `gorm:"column:rejection_reason;type:text" json:"rejection_reason,omitempty"`

	Property Property `gorm:"foreignKey:PropertyID;references:ID" json:"property,omitempty"`
}

func (Booking) TableName() string {
	return "property_bookings"
}
