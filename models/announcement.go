package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Announcement struct {
	gorm.Model

	Title string `json:"title" gorm:"size:255"`
	Body  string `json:"body" gorm:"type:text"`

	Images datatypes.JSON `json:"images,omitempty" gorm:"column:images"`

	Published   bool       `json:"published" gorm:"default:false"`
	PublishedAt *time.Time `json:"published_at,omitempty" gorm:"column:published_at"`
}
