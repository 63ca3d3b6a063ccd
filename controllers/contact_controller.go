package controllers

import (
	"net/http"

	"estate-backend/services"
	"estate-backend/utils"

	"github.com/gin-gonic/gin"
)

type SubmitContactRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Phone        string `json:"phone"`
	Subject      string `json:"subject"`
	Message      string `json:"message" binding:"required"`
	CaptchaToken string `json:"captcha_token"`
}

type ContactController struct {
	ContactSvc *services.ContactService
}

func NewContactController(svc *services.ContactService) *ContactController {
	return &ContactController{ContactSvc: svc}
}

func (cc *ContactController) SubmitContact(c *gin.Context) {
	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	if err := services.VerifyCaptchaToken(req.CaptchaToken, c.ClientIP()); err != nil {
		respondServiceError(c, err)
		return
	}

	msg, err := cc.ContactSvc.Create(services.CreateContactInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"id": msg.ID})
}

func (cc *ContactController) GetContacts(c *gin.Context) {
	msgs, err := cc.ContactSvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, msgs)
}

func (cc *ContactController) DeleteContact(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := cc.ContactSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
