package controllers

import (
	"net/http"

	"estate-backend/services"
	"estate-backend/utils"

	"github.com/gin-gonic/gin"
)

type AnnouncementPayload struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Images    []string `json:"images"` // base64 payloads
	Published bool     `json:"published"`
}

type AnnouncementController struct {
	AnnouncementSvc *services.AnnouncementService
}

func NewAnnouncementController(svc *services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{AnnouncementSvc: svc}
}

// GetAnnouncements is public and only returns published entries.
func (ac *AnnouncementController) GetAnnouncements(c *gin.Context) {
	anns, err := ac.AnnouncementSvc.ListPublished()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, anns)
}

// GetAllAnnouncements includes drafts, for the dashboard.
func (ac *AnnouncementController) GetAllAnnouncements(c *gin.Context) {
	anns, err := ac.AnnouncementSvc.ListAll()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, anns)
}

func (ac *AnnouncementController) CreateAnnouncement(c *gin.Context) {
	var payload AnnouncementPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	ann, err := ac.AnnouncementSvc.Create(services.AnnouncementInput{
		Title:     payload.Title,
		Body:      payload.Body,
		Images:    payload.Images,
		Published: payload.Published,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, ann)
}

func (ac *AnnouncementController) UpdateAnnouncement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload AnnouncementPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	ann, err := ac.AnnouncementSvc.Update(id, services.AnnouncementInput{
		Title:     payload.Title,
		Body:      payload.Body,
		Images:    payload.Images,
		Published: payload.Published,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, ann)
}

func (ac *AnnouncementController) DeleteAnnouncement(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := ac.AnnouncementSvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
