package services

import (
	"errors"
	"testing"
	"time"

	"estate-backend/models"
	"estate-backend/utils"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newBookingService(t *testing.T) (*BookingService, sqlmock.Sqlmock, *[]string) {
	t.Helper()
	gdb, mock := newMockDB(t)

	sent := []string{}
	notifier := &NotificationService{
		DB: gdb,
		Send: func(recipient string, msg utils.BookingStatusEmail) error {
			sent = append(sent, recipient+"|"+msg.Subject)
			return nil
		},
	}

	svc := NewBookingService(gdb, NewInventoryService(gdb), notifier, NewHub(""))
	return svc, mock, &sent
}

func validInput() CreateBookingInput {
	return CreateBookingInput{
		PropertyID:     1,
		UnitType:       "2B",
		FullName:       "John Doe",
		Email:          "john@example.com",
		Phone:          "0912345678",
		NationalID:     "1234567890123",
		ContactChannel: "phone",
		Consent:        true,
		AcceptTerms:    true,
	}
}

func bookingRows(status, reason string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "property_id", "unit_type", "reference_code",
		"full_name", "email", "phone", "status", "rejection_reason",
	}).AddRow(5, 1, "2B", "BK-AB4D93KF", "John Doe", "john@example.com", "0912345678", status, reason)
}

func propertyRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "title", "slug"}).
		AddRow(1, "Riverside Residences", "riverside-residences")
}

func TestCreate_ValidationRejectsBadName(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	in := validInput()
	in.FullName = "John123"

	_, err := svc.Create(in)
	ve, ok := AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "full_name")

	// nothing was written: no booking row, no stock mutation
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ValidationRejectsMissingConsent(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	in := validInput()
	in.Consent = false
	in.AcceptTerms = false

	_, err := svc.Create(in)
	ve, ok := AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "consent")
	assert.Contains(t, ve.Fields, "accept_terms")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_ForcesPendingAndConsumesStock(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())
	mock.ExpectExec("INSERT INTO `property_bookings`").
		WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec("UPDATE `unit_stocks` SET `booked_units`=booked_units \\+ 1").
		WithArgs(uint(1), "2B").
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking, err := svc.Create(validInput())
	assert.NoError(t, err)
	assert.Equal(t, uint(5), booking.ID)
	assert.Equal(t, models.BookingStatusPending, booking.Status)
	assert.Contains(t, booking.ReferenceCode, "BK-")
	assert.Len(t, booking.ReferenceCode, 11)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_SurvivesIncrementFailure(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())
	mock.ExpectExec("INSERT INTO `property_bookings`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("UPDATE `unit_stocks`").
		WillReturnError(errors.New("backend unavailable"))

	// the booking already committed; increment failure is drift, not an error
	booking, err := svc.Create(validInput())
	assert.NoError(t, err)
	assert.Equal(t, uint(9), booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_UnknownPropertyIsValidationError(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnError(gorm.ErrRecordNotFound)

	_, err := svc.Create(validInput())
	ve, ok := AsValidationError(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "property_id")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_TransitionsAndNotifies(t *testing.T) {
	svc, mock, sent := newBookingService(t)

	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusPending, ""))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())
	mock.ExpectExec("UPDATE `property_bookings` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `email_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	result, err := svc.Approve(5)
	assert.NoError(t, err)
	assert.NoError(t, result.NotifyErr)
	assert.Equal(t, models.BookingStatusApproved, result.Booking.Status)

	assert.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0], "john@example.com|")
	assert.Contains(t, (*sent)[0], "approved")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_IsIdempotent(t *testing.T) {
	svc, mock, sent := newBookingService(t)

	// already approved: no update, no email, status stays approved
	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusApproved, ""))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())

	result, err := svc.Approve(5)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, result.Booking.Status)
	assert.Empty(t, *sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_NeverRevertsRejected(t *testing.T) {
	svc, mock, sent := newBookingService(t)

	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusRejected, "Sold out"))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())

	result, err := svc.Approve(5)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, result.Booking.Status)
	assert.Equal(t, "Sold out", result.Booking.RejectionReason)
	assert.Empty(t, *sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_LosesRaceToConcurrentReject(t *testing.T) {
	svc, mock, sent := newBookingService(t)

	// stale read: the row still looks pending, but a reject lands between the
	// read and our guarded update, so the update matches no rows
	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusPending, ""))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())
	mock.ExpectExec("UPDATE `property_bookings` SET").
		WithArgs(models.BookingStatusApproved, sqlmock.AnyArg(), int64(5), models.BookingStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusRejected, "Unit already reserved"))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())

	result, err := svc.Approve(5)
	assert.NoError(t, err)

	// the first decision sticks: no overwrite, no second email
	assert.Equal(t, models.BookingStatusRejected, result.Booking.Status)
	assert.Equal(t, "Unit already reserved", result.Booking.RejectionReason)
	assert.Empty(t, *sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_LosesRaceToConcurrentApprove(t *testing.T) {
	svc, mock, sent := newBookingService(t)

	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusPending, ""))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())
	mock.ExpectExec("UPDATE `property_bookings` SET").
		WithArgs("Sold out", models.BookingStatusRejected, sqlmock.AnyArg(), int64(5), models.BookingStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusApproved, ""))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())

	result, err := svc.Reject(5, "Sold out")
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusApproved, result.Booking.Status)
	assert.Empty(t, result.Booking.RejectionReason)
	assert.Empty(t, *sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_RequiresReason(t *testing.T) {
	svc, mock, sent := newBookingService(t)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := svc.Reject(5, reason)
		ve, ok := AsValidationError(err)
		assert.True(t, ok)
		assert.Contains(t, ve.Fields, "reason")
	}

	// no row was even read, let alone mutated
	assert.Empty(t, *sent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReject_SetsReasonAndNotifies(t *testing.T) {
	svc, mock, sent := newBookingService(t)

	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusPending, ""))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())
	mock.ExpectExec("UPDATE `property_bookings` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `email_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	result, err := svc.Reject(5, "Unit already reserved")
	assert.NoError(t, err)
	assert.Equal(t, models.BookingStatusRejected, result.Booking.Status)
	assert.Equal(t, "Unit already reserved", result.Booking.RejectionReason)

	assert.Len(t, *sent, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatusChange_SurvivesDispatchFailure(t *testing.T) {
	gdb, mock := newMockDB(t)
	notifier := &NotificationService{
		DB: gdb,
		Send: func(recipient string, msg utils.BookingStatusEmail) error {
			return errors.New("smtp unreachable")
		},
	}
	svc := NewBookingService(gdb, NewInventoryService(gdb), notifier, NewHub(""))

	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusPending, ""))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())
	mock.ExpectExec("UPDATE `property_bookings` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `email_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	result, err := svc.Approve(5)

	// the decision persists; dispatch failure is only a secondary warning
	assert.NoError(t, err)
	assert.Error(t, result.NotifyErr)
	assert.Equal(t, models.BookingStatusApproved, result.Booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApprove_PublishesChangeEvents(t *testing.T) {
	svc, mock, _ := newBookingService(t)

	subID, ch := svc.Hub.Subscribe(TopicBookings())
	defer svc.Hub.Unsubscribe(TopicBookings(), subID)

	mock.ExpectQuery("SELECT (.+) FROM `property_bookings`").
		WillReturnRows(bookingRows(models.BookingStatusPending, ""))
	mock.ExpectQuery("SELECT (.+) FROM `properties`").WillReturnRows(propertyRows())
	mock.ExpectExec("UPDATE `property_bookings` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `email_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	_, err := svc.Approve(5)
	assert.NoError(t, err)

	select {
	case ev := <-ch:
		assert.Equal(t, "property_bookings", ev.Table)
		assert.Equal(t, "update", ev.Action)
		assert.Equal(t, uint(5), ev.RowID)
	case <-time.After(time.Second):
		t.Fatal("expected a change event on the bookings topic")
	}
}
