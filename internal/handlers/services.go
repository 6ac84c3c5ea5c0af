package handlers

import (
	"salon-app-server/internal/models"
	"salon-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ServiceHandler handles the salon service catalogue.
type ServiceHandler struct {
	DB *gorm.DB
}

// NewServiceHandler creates a new ServiceHandler.
func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{DB: db}
}

// CreateServiceRequest represents the request body for creating a service.
type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	DurationMin int    `json:"durationMin" binding:"required,gt=0"`
	PriceCents  int64  `json:"priceCents" binding:"gte=0"`
}

// CreateService handles creating a new service (admin).
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req CreateServiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		DurationMin: req.DurationMin,
		PriceCents:  req.PriceCents,
	}
	if err := h.DB.Create(&service).Error; err != nil {
		utils.InternalServerError(c, "Failed to create service: "+err.Error())
		return
	}

	utils.Created(c, "Service created successfully", service)
}

// GetServices handles listing the whole catalogue.
func (h *ServiceHandler) GetServices(c *gin.Context) {
	var services []models.Service
	if err := h.DB.Order("name asc").Find(&services).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch services: "+err.Error())
		return
	}
	utils.Success(c, "Services fetched successfully", services)
}

// GetServiceByID handles fetching a single service.
func (h *ServiceHandler) GetServiceByID(c *gin.Context) {
	serviceID := c.Param("id")

	var service models.Service
	if err := h.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Service not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}
	utils.Success(c, "Service fetched successfully", service)
}

// UpdateServiceRequest represents the request body for updating a service.
// Pointer fields distinguish "absent" from zero values.
type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	DurationMin *int    `json:"durationMin,omitempty"`
	PriceCents  *int64  `json:"priceCents,omitempty"`
}

// UpdateService handles updating a service by ID (admin).
func (h *ServiceHandler) UpdateService(c *gin.Context) {
	serviceID := c.Param("id")

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	var service models.Service
	if err := h.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Service not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.DurationMin != nil {
		if *req.DurationMin <= 0 {
			utils.BadRequest(c, "Service duration must be positive")
			return
		}
		service.DurationMin = *req.DurationMin
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			utils.BadRequest(c, "Service price cannot be negative")
			return
		}
		service.PriceCents = *req.PriceCents
	}

	if err := h.DB.Save(&service).Error; err != nil {
		utils.InternalServerError(c, "Failed to update service: "+err.Error())
		return
	}

	utils.Success(c, "Service updated successfully", service)
}

// DeleteService handles deleting a service by ID (admin).
func (h *ServiceHandler) DeleteService(c *gin.Context) {
	serviceID := c.Param("id")

	var service models.Service
	if err := h.DB.First(&service, "id = ?", serviceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Service not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&service).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete service: "+err.Error())
		return
	}

	utils.Success(c, "Service deleted successfully", nil)
}
