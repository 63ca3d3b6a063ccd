package controllers

import (
	"net/http"
	"time"

	"estate-backend/services"
	"estate-backend/utils"

	"github.com/gin-gonic/gin"
)

type SubmitAppointmentRequest struct {
	PropertyID     *uint  `json:"property_id"`
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	PreferredAt    string `json:"preferred_at"` // RFC3339, optional
	Notes          string `json:"notes"`
	ContactChannel string `json:"contact_channel"`
	Consent        bool   `json:"consent"`
	AcceptTerms    bool   `json:"accept_terms"`
	CaptchaToken   string `json:"captcha_token"`
}

type AppointmentController struct {
	AppointmentSvc *services.AppointmentService
}

func NewAppointmentController(svc *services.AppointmentService) *AppointmentController {
	return &AppointmentController{AppointmentSvc: svc}
}

// SubmitAppointment handles the public viewing-request form.
func (ac *AppointmentController) SubmitAppointment(c *gin.Context) {
	var req SubmitAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := services.VerifyCaptchaToken(req.CaptchaToken, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	input := services.CreateAppointmentInput{
		PropertyID:     req.PropertyID,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Notes:          req.Notes,
		ContactChannel: req.ContactChannel,
		Consent:        req.Consent,
		AcceptTerms:    req.AcceptTerms,
	}
	if req.PreferredAt != "" {
		t, err := time.Parse(time.RFC3339, req.PreferredAt)
		if err != nil {
			utils.JSONValidationError(c, map[string]string{"preferred_at": "must be an RFC3339 timestamp"})
			return
		}
		input.PreferredAt = &t
	}

	appt, err := ac.AppointmentSvc.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"id": appt.ID})
}

func (ac *AppointmentController) GetAppointments(c *gin.Context) {
	appts, err := ac.AppointmentSvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, appts)
}

func (ac *AppointmentController) DeleteAppointment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ac.AppointmentSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
