package controllers

import (
	"errors"
	"net/http"

	"estate-backend/config"
	"estate-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type companySettingsPayload struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Website   string `json:"website"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Logo      string `json:"logo"`
}

func GetCompanySettings(c *gin.Context) {
	var company models.CompanySetting
	if err := config.DB.First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusOK, gin.H{"company": models.CompanySetting{}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}

func UpdateCompanySettings(c *gin.Context) {
	var payload companySettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	apply := func(company *models.CompanySetting) {
		company.Name = payload.Name
		company.Address = payload.Address
		company.Phone = payload.Phone
		company.Email = payload.Email
		company.Website = payload.Website
		company.Facebook = payload.Facebook
		company.Instagram = payload.Instagram
		company.Logo = payload.Logo
	}

	var company models.CompanySetting
	err := config.DB.First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			apply(&company)
			if err := config.DB.Create(&company).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusOK, gin.H{"company": company})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	apply(&company)
	if err := config.DB.Save(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"company": company})
}
