package controllers

import (
	"net/http"
	"strconv"

	"estate-backend/services"
	"estate-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type PropertyPayload struct {
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Description string         `json:"description"`
	Location    string         `json:"location"`
	Status      string         `json:"status"`
	CoverImage  string         `json:"cover_image"` // base64, optional
	Gallery     datatypes.JSON `json:"gallery"`
}

type PropertyController struct {
	PropertySvc *services.PropertyService
}

func NewPropertyController(svc *services.PropertyService) *PropertyController {
	return &PropertyController{PropertySvc: svc}
}

func (pc *PropertyController) payloadToInput(p PropertyPayload) services.PropertyInput {
	return services.PropertyInput{
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		Location:    p.Location,
		Status:      p.Status,
		CoverImage:  p.CoverImage,
		Gallery:     p.Gallery,
	}
}

// GetProperties is public: all projects with their unit availability.
func (pc *PropertyController) GetProperties(c *gin.Context) {
	properties, err := pc.PropertySvc.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, properties)
}

// GetProperty resolves by numeric id or slug.
func (pc *PropertyController) GetProperty(c *gin.Context) {
	key := c.Param("id")
	if id, err := strconv.ParseUint(key, 10, 32); err == nil {
		property, err := pc.PropertySvc.Get(uint(id))
		if err != nil {
			respondServiceError(c, err)
			return
		}
		utils.JSONSuccess(c, http.StatusOK, property)
		return
	}

	property, err := pc.PropertySvc.GetBySlug(key)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

func (pc *PropertyController) CreateProperty(c *gin.Context) {
	var payload PropertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	property, err := pc.PropertySvc.Create(pc.payloadToInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, property)
}

func (pc *PropertyController) UpdateProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var payload PropertyPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}
	property, err := pc.PropertySvc.Update(id, pc.payloadToInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, property)
}

func (pc *PropertyController) DeleteProperty(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	if err := pc.PropertySvc.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"deleted": true})
}
