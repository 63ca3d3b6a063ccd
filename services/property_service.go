package services

import (
	"errors"
	"fmt"
	"strings"

	"estate-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PropertyService struct {
	DB *gorm.DB
}

func NewPropertyService(db *gorm.DB) *PropertyService {
	return &PropertyService{DB: db}
}

type PropertyInput struct {
	Title       string
	Slug        string
	Description string
	Location    string
	Status      string
	CoverImage  string         // base64 image payload, optional
	Gallery     datatypes.JSON // list of stored image paths
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var sb strings.Builder
	lastDash := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				sb.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(sb.String(), "-")
}

func (s *PropertyService) Create(in PropertyInput) (models.Property, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Property{}, &ValidationError{Fields: map[string]string{"title": "title is required"}}
	}

	slug := strings.TrimSpace(in.Slug)
	if slug == "" {
		slug = slugify(in.Title)
	}

	property := models.Property{
		Title:       strings.TrimSpace(in.Title),
		Slug:        slug,
		Description: in.Description,
		Location:    strings.TrimSpace(in.Location),
		Status:      strings.TrimSpace(in.Status),
		Gallery:     in.Gallery,
	}

	if strings.TrimSpace(in.CoverImage) != "" {
		path, err := SaveBase64Image(in.CoverImage, "properties")
		if err != nil {
			return models.Property{}, fmt.Errorf("save cover image: %w", err)
		}
		property.CoverImage = path
	}

	if err := s.DB.Create(&property).Error; err != nil {
		return models.Property{}, fmt.Errorf("create property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) Update(id uint, in PropertyInput) (models.Property, error) {
	property, err := s.Get(id)
	if err != nil {
		return models.Property{}, err
	}

	if strings.TrimSpace(in.Title) != "" {
		property.Title = strings.TrimSpace(in.Title)
	}
	if strings.TrimSpace(in.Slug) != "" {
		property.Slug = strings.TrimSpace(in.Slug)
	}
	if in.Description != "" {
		property.Description = in.Description
	}
	if strings.TrimSpace(in.Location) != "" {
		property.Location = strings.TrimSpace(in.Location)
	}
	if strings.TrimSpace(in.Status) != "" {
		property.Status = strings.TrimSpace(in.Status)
	}
	if len(in.Gallery) > 0 {
		property.Gallery = in.Gallery
	}
	if strings.TrimSpace(in.CoverImage) != "" {
		path, err := SaveBase64Image(in.CoverImage, "properties")
		if err != nil {
			return models.Property{}, fmt.Errorf("save cover image: %w", err)
		}
		property.CoverImage = path
	}

	if err := s.DB.Save(&property).Error; err != nil {
		return models.Property{}, fmt.Errorf("update property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) Get(id uint) (models.Property, error) {
	var property models.Property
	if err := s.DB.Preload("UnitStocks").First(&property, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Property{}, ErrPropertyNotFound
		}
		return models.Property{}, fmt.Errorf("load property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) GetBySlug(slug string) (models.Property, error) {
	var property models.Property
	if err := s.DB.Preload("UnitStocks").Where("slug = ?", slug).First(&property).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Property{}, ErrPropertyNotFound
		}
		return models.Property{}, fmt.Errorf("load property: %w", err)
	}
	return property, nil
}

func (s *PropertyService) List() ([]models.Property, error) {
	var properties []models.Property
	err := s.DB.Preload("UnitStocks").Order("created_at DESC").Find(&properties).Error
	return properties, err
}

func (s *PropertyService) Delete(id uint) error {
	res := s.DB.Delete(&models.Property{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete property: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
