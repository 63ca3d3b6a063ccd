package services

import (
	"errors"
	"fmt"
	"log"

	"estate-backend/models"

	"gorm.io/gorm"
)

// InventoryService maintains the advisory per (property, unit type)
// availability counters.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// GetAvailability returns remaining units per unit type for a property.
// Values are clamped to zero; an oversold counter must never render negative.
func (s *InventoryService) GetAvailability(propertyID uint) (map[string]int, error) {
	var rows []models.UnitStock
	if err := s.DB.Where("property_id = ?", propertyID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load unit stock: %w", err)
	}

	out := make(map[string]int, len(rows))
	for _, row := range rows {
		out[row.UnitType] = row.Available()
	}
	return out, nil
}

// IncrementBooked consumes one unit via a single conditional UPDATE so
// concurrent submissions cannot lose updates. The guard keeps booked_units
// from ever exceeding total_units.
//
// A missing row or an exhausted counter affects zero rows; that is logged and
// reported as ok because inventory must never block booking creation.
func (s *InventoryService) IncrementBooked(propertyID uint, unitType string) error {
	res := s.DB.Model(&models.UnitStock{}).
		Where("property_id = ? AND unit_type = ? AND booked_units < total_units", propertyID, unitType).
		UpdateColumn("booked_units", gorm.Expr("booked_units + 1"))
	if res.Error != nil {
		return fmt.Errorf("increment booked units: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		log.Printf("⚠️  inventory: no stock row consumed for property=%d unit_type=%s (missing row or sold out)", propertyID, unitType)
	}
	return nil
}

// ListStock returns all counters for a property, for the admin dashboard.
func (s *InventoryService) ListStock(propertyID uint) ([]models.UnitStock, error) {
	var rows []models.UnitStock
	err := s.DB.Where("property_id = ?", propertyID).Order("unit_type ASC").Find(&rows).Error
	return rows, err
}

// SetStock creates or updates the counter pair for a unit type. Totals below
// the already-booked count are rejected to keep booked_units <= total_units.
func (s *InventoryService) SetStock(propertyID uint, unitType string, totalUnits int) (models.UnitStock, error) {
	if totalUnits < 0 {
		return models.UnitStock{}, &ValidationError{Fields: map[string]string{"total_units": "must not be negative"}}
	}

	var row models.UnitStock
	err := s.DB.Where("property_id = ? AND unit_type = ?", propertyID, unitType).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row = models.UnitStock{PropertyID: propertyID, UnitType: unitType, TotalUnits: totalUnits}
		if err := s.DB.Create(&row).Error; err != nil {
			return models.UnitStock{}, fmt.Errorf("create unit stock: %w", err)
		}
		return row, nil
	}
	if err != nil {
		return models.UnitStock{}, fmt.Errorf("load unit stock: %w", err)
	}

	if totalUnits < row.BookedUnits {
		return models.UnitStock{}, &ValidationError{Fields: map[string]string{
			"total_units": fmt.Sprintf("must not be below booked count (%d)", row.BookedUnits),
		}}
	}

	row.TotalUnits = totalUnits
	if err := s.DB.Model(&models.UnitStock{}).Where("id = ?", row.ID).
		UpdateColumn("total_units", totalUnits).Error; err != nil {
		return models.UnitStock{}, fmt.Errorf("update unit stock: %w", err)
	}
	return row, nil
}
