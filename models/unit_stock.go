package models

import (
	"time"
)

// UnitStock is the per (property, unit type) availability counter.
// booked_units only ever increments; it is advisory, not a hard reservation.
type UnitStock struct {
	ID uint `gorm:"primaryKey" json:"id"`

	PropertyID uint   `gorm:"column:property_id;uniqueIndex:idx_property_unit_type" json:"property_id"`
	UnitType   string `gorm:"column:unit_type;size:32;uniqueIndex:idx_property_unit_type" json:"unit_type"`

	TotalUnits  int `gorm:"column:total_units;default:0" json:"total_units"`
	BookedUnits int `gorm:"column:booked_units;default:0" json:"booked_units"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Available clamps to zero so an oversold counter never renders negative.
func (s UnitStock) Available() int {
	if s.BookedUnits >= s.TotalUnits {
		return 0
	}
	return s.TotalUnits - s.BookedUnits
}
