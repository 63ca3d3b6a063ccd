package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"estate-backend/models"
	"estate-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// BookingService owns the booking record store and its status workflow.
// Inventory consumption, email dispatch and realtime publishing are all
// best-effort side effects: the booking row is the only authoritative write.
type BookingService struct {
	DB        *gorm.DB
	Inventory *InventoryService
	Notifier  *NotificationService
	Hub       *Hub
}

func NewBookingService(db *gorm.DB, inventory *InventoryService, notifier *NotificationService, hub *Hub) *BookingService {
	return &BookingService{DB: db, Inventory: inventory, Notifier: notifier, Hub: hub}
}

// CreateBookingInput is applicant-supplied. There is deliberately no status
// field: every booking starts pending no matter what the caller sends.
type CreateBookingInput struct {
	PropertyID     uint
	UnitType       string
	FullName       string
	Email          string
	Phone          string
	SecondaryPhone string
	NationalID     string
	MoveInDate     *time.Time
	Notes          string
	ContactChannel string
	Consent        bool
	AcceptTerms    bool
}

// BookingFilter narrows List results. Zero values are ignored.
type BookingFilter struct {
	Status     string
	PropertyID uint
	Email      string
}

// StatusChangeResult reports a workflow transition. NotifyErr carries the
// best-effort email outcome for a secondary admin warning; the transition
// itself succeeded whenever the error return is nil.
type StatusChangeResult struct {
	Booking   models.Booking
	NotifyErr error
}

func validateContactChannel(ch string) bool {
	for _, c := range models.BookingContactChannels {
		if c == ch {
			return true
		}
	}
	return false
}

func (s *BookingService) validateSubmission(in CreateBookingInput) *ValidationError {
	fields := map[string]string{}

	if !utils.ValidName(in.FullName) {
		fields["full_name"] = "must contain letters and spaces only"
	}
	if !utils.ValidEmail(in.Email) {
		fields["email"] = "must be a valid email address"
	}
	if !utils.ValidPhone(in.Phone) {
		fields["phone"] = "must be 9-11 digits"
	}
	if utils.NonBlank(in.SecondaryPhone) && !utils.ValidPhone(in.SecondaryPhone) {
		fields["secondary_phone"] = "must be 9-11 digits"
	}
	if in.PropertyID == 0 {
		fields["property_id"] = "property is required"
	}
	if !utils.NonBlank(in.UnitType) {
		fields["unit_type"] = "unit type is required"
	}
	if !utils.NonBlank(in.NationalID) {
		fields["national_id"] = "national id is required"
	}
	if !validateContactChannel(strings.ToLower(strings.TrimSpace(in.ContactChannel))) {
		fields["contact_channel"] = "unsupported contact channel"
	}
	if !in.Consent {
		fields["consent"] = "consent is required"
	}
	if !in.AcceptTerms {
		fields["accept_terms"] = "terms must be accepted"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create validates the submission, stores the booking with status forced to
// pending, then consumes one advisory inventory unit. The increment runs after
// the create on purpose: a booking may exist without a matched decrement
// (inventory drift, reconciled by the nightly job) but never the other way
// around.
func (s *BookingService) Create(in CreateBookingInput) (models.Booking, error) {
	if ve := s.validateSubmission(in); ve != nil {
		return models.Booking{}, ve
	}

	var property models.Property
	if err := s.DB.First(&property, in.PropertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, &ValidationError{Fields: map[string]string{"property_id": "unknown property"}}
		}
		return models.Booking{}, fmt.Errorf("load property: %w", err)
	}

	booking := models.Booking{
		PropertyID:     in.PropertyID,
		UnitType:       strings.TrimSpace(in.UnitType),
		FullName:       strings.TrimSpace(in.FullName),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:          strings.TrimSpace(in.Phone),
		SecondaryPhone: strings.TrimSpace(in.SecondaryPhone),
		NationalID:     strings.TrimSpace(in.NationalID),
		MoveInDate:     in.MoveInDate,
		Notes:          strings.TrimSpace(in.Notes),
		ContactChannel: strings.ToLower(strings.TrimSpace(in.ContactChannel)),
		Status:         models.BookingStatusPending,
	}

	// retry reference code generation on the (unlikely) unique collision
	maxRetries := 5
	var createErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		code, err := utils.GenerateReferenceCode(8)
		if err != nil {
			return models.Booking{}, fmt.Errorf("generate reference code: %w", err)
		}
		booking.ReferenceCode = "BK-" + code

		createErr = s.DB.Create(&booking).Error
		if createErr == nil {
			break
		}
		if !isDuplicateKey(createErr) {
			return models.Booking{}, fmt.Errorf("create booking: %w", createErr)
		}
	}
	if createErr != nil {
		return models.Booking{}, fmt.Errorf("create booking: %w", createErr)
	}

	// Best-effort from here on: the booking row already committed.
	if err := s.Inventory.IncrementBooked(booking.PropertyID, booking.UnitType); err != nil {
		log.Printf("⚠️  inventory drift: booking %d created but increment failed for property=%d unit_type=%s: %v",
			booking.ID, booking.PropertyID, booking.UnitType, err)
	}

	s.publish(booking, "insert")
	s.Hub.Publish(ChangeEvent{
		Topic:  TopicAvailability(booking.PropertyID),
		Table:  "unit_stock",
		Action: "update",
		RowID:  booking.PropertyID,
	})

	booking.Property = property
	return booking, nil
}

// List returns bookings newest first, optionally filtered.
func (s *BookingService) List(filter BookingFilter) ([]models.Booking, error) {
	q := s.DB.Preload("Property").Order("created_at DESC")
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.PropertyID != 0 {
		q = q.Where("property_id = ?", filter.PropertyID)
	}
	if filter.Email != "" {
		q = q.Where("email = ?", strings.ToLower(strings.TrimSpace(filter.Email)))
	}

	var bookings []models.Booking
	err := q.Find(&bookings).Error
	return bookings, err
}

func (s *BookingService) Get(id uint) (models.Booking, error) {
	var booking models.Booking
	if err := s.DB.Preload("Property").First(&booking, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Booking{}, ErrBookingNotFound
		}
		return models.Booking{}, fmt.Errorf("load booking: %w", err)
	}
	return booking, nil
}

// Delete hard-deletes a booking. EmailLog rows are left orphaned.
func (s *BookingService) Delete(id uint) error {
	res := s.DB.Unscoped().Delete(&models.Booking{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrBookingNotFound
	}
	s.Hub.Publish(ChangeEvent{Topic: TopicBookings(), Table: "property_bookings", Action: "delete", RowID: id})
	return nil
}

// Approve moves a pending booking to approved. Calling it again, or on a
// booking already decided, is a no-op that returns the current row: the first
// decision sticks and is never reverted.
func (s *BookingService) Approve(id uint) (StatusChangeResult, error) {
	booking, err := s.Get(id)
	if err != nil {
		return StatusChangeResult{}, err
	}
	if booking.Status != models.BookingStatusPending {
		return StatusChangeResult{Booking: booking}, nil
	}

	// approve leaves rejection_reason untouched; the status guard keeps us
	// from overwriting a reject that landed after our read
	res := s.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingStatusPending).
		Updates(map[string]interface{}{
			"status":     models.BookingStatusApproved,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return StatusChangeResult{}, fmt.Errorf("approve booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// another decision landed first; report the row as it stands
		booking, err = s.Get(id)
		if err != nil {
			return StatusChangeResult{}, err
		}
		return StatusChangeResult{Booking: booking}, nil
	}
	booking.Status = models.BookingStatusApproved

	return s.afterDecision(booking), nil
}

// Reject moves a pending booking to rejected with a mandatory reason. A blank
// reason is a ValidationError and leaves the row untouched.
func (s *BookingService) Reject(id uint, reason string) (StatusChangeResult, error) {
	if !utils.NonBlank(reason) {
		return StatusChangeResult{}, &ValidationError{Fields: map[string]string{"reason": "rejection reason is required"}}
	}
	reason = strings.TrimSpace(reason)

	booking, err := s.Get(id)
	if err != nil {
		return StatusChangeResult{}, err
	}
	if booking.Status != models.BookingStatusPending {
		return StatusChangeResult{Booking: booking}, nil
	}

	res := s.DB.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, models.BookingStatusPending).
		Updates(map[string]interface{}{
			"status":           models.BookingStatusRejected,
			"rejection_reason": reason,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return StatusChangeResult{}, fmt.Errorf("reject booking: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		booking, err = s.Get(id)
		if err != nil {
			return StatusChangeResult{}, err
		}
		return StatusChangeResult{Booking: booking}, nil
	}
	booking.Status = models.BookingStatusRejected
	booking.RejectionReason = reason

	return s.afterDecision(booking), nil
}

// afterDecision runs the best-effort fan-out once the decision committed:
// email to the applicant, then realtime publish. Neither can undo the write.
func (s *BookingService) afterDecision(booking models.Booking) StatusChangeResult {
	notifyErr := s.Notifier.NotifyBookingStatus(booking, booking.Property.Title)
	s.publish(booking, "update")
	return StatusChangeResult{Booking: booking, NotifyErr: notifyErr}
}

func (s *BookingService) publish(booking models.Booking, action string) {
	ev := ChangeEvent{Table: "property_bookings", Action: action, RowID: booking.ID}

	ev.Topic = TopicBookings()
	s.Hub.Publish(ev)

	ev.Topic = TopicBookingsByProperty(booking.PropertyID)
	s.Hub.Publish(ev)

	if booking.Email != "" {
		ev.Topic = TopicBookingsByEmail(booking.Email)
		s.Hub.Publish(ev)
	}
}
