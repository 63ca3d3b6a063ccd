package services

import (
	"fmt"
	"strings"

	"estate-backend/models"
	"estate-backend/utils"

	"gorm.io/gorm"
)

type ContactService struct {
	DB *gorm.DB
}

func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{DB: db}
}

type CreateContactInput struct {
	FullName string
	Email    string
	Phone    string
	Subject  string
	Message  string
}

func (s *ContactService) Create(in CreateContactInput) (models.ContactMessage, error) {
	fields := map[string]string{}
	if !utils.ValidName(in.FullName) {
		fields["full_name"] = "must contain letters and spaces only"
	}
	if !utils.ValidEmail(in.Email) {
		fields["email"] = "must be a valid email address"
	}
	if utils.NonBlank(in.Phone) && !utils.ValidPhone(in.Phone) {
		fields["phone"] = "must be 9-11 digits"
	}
	if !utils.NonBlank(in.Message) {
		fields["message"] = "message is required"
	}
	if len(fields) > 0 {
		return models.ContactMessage{}, &ValidationError{Fields: fields}
	}

	msg := models.ContactMessage{
		FullName: strings.TrimSpace(in.FullName),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:    strings.TrimSpace(in.Phone),
		Subject:  strings.TrimSpace(in.Subject),
		Message:  strings.TrimSpace(in.Message),
	}
	if err := s.DB.Create(&msg).Error; err != nil {
		return models.ContactMessage{}, fmt.Errorf("create contact message: %w", err)
	}
	return msg, nil
}

func (s *ContactService) List() ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	err := s.DB.Order("created_at DESC").Find(&msgs).Error
	return msgs, err
}

func (s *ContactService) Delete(id uint) error {
	return s.DB.Unscoped().Delete(&models.ContactMessage{}, id).Error
}
