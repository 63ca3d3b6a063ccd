package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property is a construction project shown on the marketing site.
type Property struct {
	gorm.Model

	Title       string `json:"title" gorm:"size:255"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:255"`
	Description string `json:"description" gorm:"type:text"`
	Location    string `json:"location" gorm:"size:255"`

	// e.g. "planning", "under-construction", "completed"
	Status string `json:"status" gorm:"size:64"`

	CoverImage string         `json:"coverImage" gorm:"size:255"`
	Gallery    datatypes.JSON `json:"gallery,omitempty" gorm:"column:gallery"`

	UnitStocks []UnitStock `json:"unitStocks,omitempty" gorm:"foreignKey:PropertyID"`
}
