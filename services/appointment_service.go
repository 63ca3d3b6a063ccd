package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"estate-backend/models"
	"estate-backend/utils"

	"gorm.io/gorm"
)

// AppointmentService stores viewing requests. They share the submission
// validation with bookings but touch no inventory and have no status.
type AppointmentService struct {
	DB *gorm.DB
}

func NewAppointmentService(db *gorm.DB) *AppointmentService {
	return &AppointmentService{DB: db}
}

type CreateAppointmentInput struct {
	PropertyID     *uint
	FullName       string
	Email          string
	Phone          string
	PreferredAt    *time.Time
	Notes          string
	ContactChannel string
	Consent        bool
	AcceptTerms    bool
}

func (s *AppointmentService) Create(in CreateAppointmentInput) (models.Appointment, error) {
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
		return models.Appointment{}, &ValidationError{Fields: fields}
	}

	appt := models.Appointment{
		PropertyID:     in.PropertyID,
		FullName:       strings.TrimSpace(in.FullName),
		Email:          strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:          strings.TrimSpace(in.Phone),
		PreferredAt:    in.PreferredAt,
		Notes:          strings.TrimSpace(in.Notes),
		ContactChannel: strings.ToLower(strings.TrimSpace(in.ContactChannel)),
	}
	if err := s.DB.Create(&appt).Error; err != nil {
		return models.Appointment{}, fmt.Errorf("create appointment: %w", err)
	}
	return appt, nil
}

func (s *AppointmentService) List() ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.DB.Order("created_at DESC").Find(&appts).Error
	return appts, err
}

func (s *AppointmentService) Delete(id uint) error {
	res := s.DB.Unscoped().Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (s *AppointmentService) Get(id uint) (models.Appointment, error) {
	var appt models.Appointment
	if err := s.DB.First(&appt, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Appointment{}, ErrAppointmentNotFound
		}
		return models.Appointment{}, fmt.Errorf("load appointment: %w", err)
	}
	return appt, nil
}
