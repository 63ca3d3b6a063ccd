package models

import "time"

// Email delivery statuses recorded per dispatch attempt.
const (
	EmailStatusSent   = "sent"
	EmailStatusFailed = "failed"
)

// EmailLog is best-effort bookkeeping of notification attempts. It is not
// authoritative; a missing or failed row never blocks a status transition.
type EmailLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BookingID uint   `gorm:"index;column:booking_id" json:"booking_id"`
	Recipient string `gorm:"size:150" json:"recipient"`
	Subject   string `gorm:"size:255" json:"subject"`
	Status    string `gorm:"size:32" json:"status"`
	Error     string `gorm:"type:text" json:"error,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
