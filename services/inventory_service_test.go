package services

import (
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestGetAvailability(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewInventoryService(gdb)

	rows := sqlmock.NewRows([]string{"id", "property_id", "unit_type", "total_units", "booked_units"}).
		AddRow(1, 7, "1B", 20, 5).
		AddRow(2, 7, "2B", 10, 3).
		AddRow(3, 7, "3B", 5, 9) // oversold, must clamp

	mock.ExpectQuery("SELECT (.+) FROM `unit_stocks` WHERE property_id = \\?").
		WithArgs(uint(7)).
		WillReturnRows(rows)

	availability, err := svc.GetAvailability(7)
	assert.NoError(t, err)
	assert.Equal(t, map[string]int{"1B": 15, "2B": 7, "3B": 0}, availability)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementBooked_ConditionalUpdate(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewInventoryService(gdb)

	// one atomic conditional UPDATE, never a read-modify-write
	mock.ExpectExec("UPDATE `unit_stocks` SET `booked_units`=booked_units \\+ 1(.+)WHERE property_id = \\? AND unit_type = \\? AND booked_units < total_units").
		WithArgs(uint(7), "2B").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, svc.IncrementBooked(7, "2B"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementBooked_MissingRowIsTolerated(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewInventoryService(gdb)

	mock.ExpectExec("UPDATE `unit_stocks`").
		WillReturnResult(sqlmock.NewResult(0, 0))

	// zero affected rows must not surface as an error: inventory never
	// blocks booking creation
	assert.NoError(t, svc.IncrementBooked(99, "9X"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// N concurrent increments each issue their own atomic update; none is lost
// or collapsed into a shared read-modify-write.
func TestIncrementBooked_Concurrent(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewInventoryService(gdb)
	mock.MatchExpectationsInOrder(false)

	const n = 8
	for i := 0; i < n; i++ {
		mock.ExpectExec("UPDATE `unit_stocks`").
			WithArgs(uint(7), "2B").
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- svc.IncrementBooked(7, "2B")
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetStock_RejectsTotalBelowBooked(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewInventoryService(gdb)

	rows := sqlmock.NewRows([]string{"id", "property_id", "unit_type", "total_units", "booked_units"}).
		AddRow(1, 7, "2B", 10, 4)
	mock.ExpectQuery("SELECT (.+) FROM `unit_stocks`").WillReturnRows(rows)

	_, err := svc.SetStock(7, "2B", 3)
	ve, ok := AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "total_units")
	assert.NoError(t, mock.ExpectationsWereMet())
}
