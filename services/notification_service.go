package services

import (
	"log"

	"estate-backend/models"
	"estate-backend/utils"

	"gorm.io/gorm"
)

// NotificationService delivers the best-effort status email to an applicant
// and records each attempt in email_logs. Nothing here is allowed to fail the
// status transition that triggered it: errors are returned only so the admin
// UI can show a secondary warning.
type NotificationService struct {
	DB *gorm.DB

	// Send is swappable for tests; defaults to utils.SendEmail.
	Send func(recipient string, msg utils.BookingStatusEmail) error
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db, Send: utils.SendEmail}
}

// NotifyBookingStatus composes and attempts the email for an approved or
// rejected booking, then writes the EmailLog row. EmailLog failures are only
// logged; the log is not authoritative.
func (s *NotificationService) NotifyBookingStatus(booking models.Booking, propertyTitle string) error {
	msg := utils.BuildBookingStatusEmail(
		booking.FullName,
		propertyTitle,
		booking.UnitType,
		booking.Status,
		booking.RejectionReason,
		booking.ReferenceCode,
	)

	sendErr := s.Send(booking.Email, msg)

	entry := models.EmailLog{
		BookingID: booking.ID,
		Recipient: booking.Email,
		Subject:   msg.Subject,
		Status:    models.EmailStatusSent,
	}
	if sendErr != nil {
		entry.Status = models.EmailStatusFailed
		entry.Error = sendErr.Error()
	}
	if err := s.DB.Create(&entry).Error; err != nil {
		log.Printf("warning: failed to write email log for booking %d: %v", booking.ID, err)
	}

	if sendErr != nil {
		log.Printf("⚠️  notification dispatch failed for booking %d (%s): %v", booking.ID, booking.Email, sendErr)
	}
	return sendErr
}

// ListEmailLogs returns dispatch history for a booking, newest first.
func (s *NotificationService) ListEmailLogs(bookingID uint) ([]models.EmailLog, error) {
	var logs []models.EmailLog
	err := s.DB.Where("booking_id = ?", bookingID).Order("created_at DESC").Find(&logs).Error
	return logs, err
}
