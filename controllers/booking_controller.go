package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"estate-backend/services"
	"estate-backend/utils"

	"github.com/gin-gonic/gin"
)

// ---------------------------
// Payload / DTOs
// ---------------------------

// SubmitBookingRequest is the public submission form payload. A "status"
// field sent by a client is ignored on purpose; bookings always start
// pending.
type SubmitBookingRequest struct {
	PropertyID     uint   `json:"property_id" binding:"required"`
	UnitType       string `json:"unit_type" binding:"required"`
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	SecondaryPhone string `json:"secondary_phone"`
	NationalID     string `json:"national_id"`
	MoveInDate     string `json:"move_in_date"` // "2006-01-02", optional
	Notes          string `json:"notes"`
	ContactChannel string `json:"contact_channel"`
	Consent        bool   `json:"consent"`
	AcceptTerms    bool   `json:"accept_terms"`
	CaptchaToken   string `json:"captcha_token"`
}

type RejectBookingRequest struct {
	Reason string `json:"reason"`
}

// ---------------------------
// Controller
// ---------------------------

type BookingController struct {
	BookingSvc   *services.BookingService
	InventorySvc *services.InventoryService
	NotifySvc    *services.NotificationService
}

func NewBookingController(svc *services.BookingService, inventory *services.InventoryService, notifier *services.NotificationService) *BookingController {
	return &BookingController{BookingSvc: svc, InventorySvc: inventory, NotifySvc: notifier}
}

func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// respondServiceError maps service errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	if ve, ok := services.AsValidationError(err); ok {
		utils.JSONValidationError(c, ve.Fields)
		return
	}
	switch {
	case errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrPropertyNotFound),
		errors.Is(err, services.ErrAppointmentNotFound),
		errors.Is(err, services.ErrAnnouncementNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCaptchaFailed):
		utils.JSONError(c, http.StatusForbidden, "human verification failed")
	default:
		utils.JSONError(c, http.StatusInternalServerError, "backend error, please try again")
	}
}

// SubmitBooking handles the public booking form: captcha check, validation,
// create, advisory stock consumption.
func (bc *BookingController) SubmitBooking(c *gin.Context) {
	var req SubmitBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := services.VerifyCaptchaToken(req.CaptchaToken, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	input := services.CreateBookingInput{
		PropertyID:     req.PropertyID,
		UnitType:       req.UnitType,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		SecondaryPhone: req.SecondaryPhone,
		NationalID:     req.NationalID,
		Notes:          req.Notes,
		ContactChannel: req.ContactChannel,
		Consent:        req.Consent,
		AcceptTerms:    req.AcceptTerms,
	}
	if req.MoveInDate != "" {
		t, err := time.Parse("2006-01-02", req.MoveInDate)
		if err != nil {
			utils.JSONValidationError(c, map[string]string{"move_in_date": "must be YYYY-MM-DD"})
			return
		}
		input.MoveInDate = &t
	}

	booking, err := bc.BookingSvc.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"id":             booking.ID,
		"reference_code": booking.ReferenceCode,
		"status":         booking.Status,
	})
}

// GetBookings lists bookings for the admin dashboard, filterable by
// ?status=&property_id=&email=.
func (bc *BookingController) GetBookings(c *gin.Context) {
	filter := services.BookingFilter{
		Status: c.Query("status"),
		Email:  c.Query("email"),
	}
	if pid := c.Query("property_id"); pid != "" {
		id, err := strconv.ParseUint(pid, 10, 32)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid property_id")
			return
		}
		filter.PropertyID = uint(id)
	}

	bookings, err := bc.BookingSvc.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bookings)
}

func (bc *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	booking, err := bc.BookingSvc.Get(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

// statusChangeResponse reports the transition plus a secondary warning when
// the best-effort email did not go out. The transition itself already
// succeeded at that point.
func statusChangeResponse(c *gin.Context, result services.StatusChangeResult) {
	resp := gin.H{"booking": result.Booking}
	if result.NotifyErr != nil {
		resp["warning"] = "status saved but the notification email could not be sent"
	}
	utils.JSONSuccess(c, http.StatusOK, resp)
}

func (bc *BookingController) ApproveBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	result, err := bc.BookingSvc.Approve(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	statusChangeResponse(c, result)
}

func (bc *BookingController) RejectBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req RejectBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	result, err := bc.BookingSvc.Reject(id, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	statusChangeResponse(c, result)
}

func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := bc.BookingSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}

// GetEmailLogs returns the dispatch history for a booking.
func (bc *BookingController) GetEmailLogs(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	logs, err := bc.NotifySvc.ListEmailLogs(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, logs)
}

// GetAvailability is public: remaining units per unit type for a property.
func (bc *BookingController) GetAvailability(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	availability, err := bc.InventorySvc.GetAvailability(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, availability)
}

// SetUnitStock lets the admin create or resize a counter.
func (bc *BookingController) SetUnitStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req struct {
		UnitType   string `json:"unit_type" binding:"required"`
		TotalUnits int    `json:"total_units"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	row, err := bc.InventorySvc.SetStock(id, req.UnitType, req.TotalUnits)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, row)
}

// ListUnitStock returns the raw counters for the admin dashboard.
func (bc *BookingController) ListUnitStock(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	rows, err := bc.InventorySvc.ListStock(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rows)
}
