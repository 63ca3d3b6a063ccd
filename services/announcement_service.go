package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"estate-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AnnouncementService struct {
	DB *gorm.DB
}

func NewAnnouncementService(db *gorm.DB) *AnnouncementService {
	return &AnnouncementService{DB: db}
}

type AnnouncementInput struct {
	Title     string
	Body      string
	Images    []string // base64 payloads; stored paths end up in the JSON column
	Published bool
}

func (s *AnnouncementService) saveImages(images []string) (datatypes.JSON, error) {
	if len(images) == 0 {
		return nil, nil
	}
	paths := make([]string, 0, len(images))
	for _, img := range images {
		path, err := SaveBase64Image(img, "announcements")
		if err != nil {
			return nil, fmt.Errorf("save announcement image: %w", err)
		}
		paths = append(paths, path)
	}
	raw, err := json.Marshal(paths)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func (s *AnnouncementService) Create(in AnnouncementInput) (models.Announcement, error) {
	if strings.TrimSpace(in.Title) == "" {
		return models.Announcement{}, &ValidationError{Fields: map[string]string{"title": "title is required"}}
	}

	images, err := s.saveImages(in.Images)
	if err != nil {
		return models.Announcement{}, err
	}

	ann := models.Announcement{
		Title:     strings.TrimSpace(in.Title),
		Body:      in.Body,
		Images:    images,
		Published: in.Published,
	}
	if in.Published {
		now := time.Now().UTC()
		ann.PublishedAt = &now
	}

	if err := s.DB.Create(&ann).Error; err != nil {
		return models.Announcement{}, fmt.Errorf("create announcement: %w", err)
	}
	return ann, nil
}

func (s *AnnouncementService) Update(id uint, in AnnouncementInput) (models.Announcement, error) {
	var ann models.Announcement
	if err := s.DB.First(&ann, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Announcement{}, ErrAnnouncementNotFound
		}
		return models.Announcement{}, fmt.Errorf("load announcement: %w", err)
	}

	if strings.TrimSpace(in.Title) != "" {
		ann.Title = strings.TrimSpace(in.Title)
	}
	if in.Body != "" {
		ann.Body = in.Body
	}
	if len(in.Images) > 0 {
		images, err := s.saveImages(in.Images)
		if err != nil {
			return models.Announcement{}, err
		}
		ann.Images = images
	}
	if in.Published && !ann.Published {
		now := time.Now().UTC()
		ann.PublishedAt = &now
	}
	ann.Published = in.Published

	if err := s.DB.Save(&ann).Error; err != nil {
		return models.Announcement{}, fmt.Errorf("update announcement: %w", err)
	}
	return ann, nil
}

// ListPublished is the public feed, newest first.
func (s *AnnouncementService) ListPublished() ([]models.Announcement, error) {
	var anns []models.Announcement
	err := s.DB.Where("published = ?", true).Order("published_at DESC").Find(&anns).Error
	return anns, err
}

// ListAll includes drafts, for the admin dashboard.
func (s *AnnouncementService) ListAll() ([]models.Announcement, error) {
	var anns []models.Announcement
	err := s.DB.Order("created_at DESC").Find(&anns).Error
	return anns, err
}

func (s *AnnouncementService) Delete(id uint) error {
	res := s.DB.Delete(&models.Announcement{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete announcement: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}
