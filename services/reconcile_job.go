package services

import (
	"log"
	"strings"

	"estate-backend/models"

	"gorm.io/gorm"
)

// ReconcileJob recounts live bookings against the advisory counters. Booking
// creation and the stock increment are two independent calls, so a failed
// increment leaves drift behind; this job is the out-of-band reconciliation
// for it. It logs every drift and only corrects the counter when
// RECONCILE_FIX=true (via fix), because the counter is advisory and silent
// rewrites would hide oversell bugs.
type ReconcileJob struct {
	DB  *gorm.DB
	Fix bool
}

func NewReconcileJob(db *gorm.DB, fix bool) *ReconcileJob {
	return &ReconcileJob{DB: db, Fix: fix}
}

// Run executes one reconciliation pass. Stock is consumed at submission and
// never returned on rejection, so the expected count is all live bookings for
// the pair regardless of status, capped at total_units (increments stop once
// the counter is full).
func (j *ReconcileJob) Run() {
	var stocks []models.UnitStock
	if err := j.DB.Find(&stocks).Error; err != nil {
		log.Printf("reconcile: failed to load unit stock: %v", err)
		return
	}

	drifted := 0
	for _, stock := range stocks {
		var count int64
		err := j.DB.Model(&models.Booking{}).
			Where("property_id = ? AND unit_type = ?", stock.PropertyID, strings.TrimSpace(stock.UnitType)).
			Count(&count).Error
		if err != nil {
			log.Printf("reconcile: count failed for property=%d unit_type=%s: %v", stock.PropertyID, stock.UnitType, err)
			continue
		}

		expected := int(count)
		if expected > stock.TotalUnits {
			expected = stock.TotalUnits
		}
		if expected == stock.BookedUnits {
			continue
		}

		drifted++
		log.Printf("⚠️  inventory drift: property=%d unit_type=%s booked_units=%d expected=%d (live bookings=%d)",
			stock.PropertyID, stock.UnitType, stock.BookedUnits, expected, count)

		if j.Fix {
			if err := j.DB.Model(&models.UnitStock{}).Where("id = ?", stock.ID).
				UpdateColumn("booked_units", expected).Error; err != nil {
				log.Printf("reconcile: failed to correct property=%d unit_type=%s: %v", stock.PropertyID, stock.UnitType, err)
			}
		}
	}

	if drifted == 0 {
		log.Println("reconcile: no inventory drift found")
	} else if j.Fix {
		log.Printf("reconcile: corrected %d drifted counters", drifted)
	}
}
