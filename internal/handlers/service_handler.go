package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/artisanhub/marketplace-api/internal/httperr"
	"github.com/artisanhub/marketplace-api/internal/httpresp"
	"github.com/artisanhub/marketplace-api/internal/middleware"
	"github.com/artisanhub/marketplace-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateServiceRequest struct {
	Title       string  `json:"title" binding:"required,max=100"`
	Description string  `json:"description" binding:"max=500"`
	Price       float64 `json:"price" binding:"min=0"`
	DurationMin int     `json:"duration_min" binding:"min=5"`
}

type UpdateServiceRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	DurationMin *int     `json:"duration_min"`
	Active      *bool    `json:"active"`
}

// ======================================================
// ROUTES
// ======================================================

// ListPublic is the browse endpoint: active services only.
func (h *ServiceHandler) ListPublic(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Preload("Creative").
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "services_fetch_failed", "Could not load services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	var s models.Service
	if err := h.db.Preload("Creative").First(&s, serviceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	httpresp.OK(c, s)
}

func (h *ServiceHandler) ListMine(c *gin.Context) {
	creativeID := c.MustGet(middleware.ContextUserID).(uint)

	var services []models.Service
	if err := h.db.
		Where("creative_id = ?", creativeID).
		Order("created_at DESC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "services_fetch_failed", "Could not load services.")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	creativeID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	s := models.Service{
		CreativeID:  creativeID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Active:      true,
	}
	if err := h.db.Create(&s).Error; err != nil {
		httperr.Internal(c, "service_create_failed", "Could not create service.")
		return
	}

	httpresp.Created(c, s)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	creativeID := c.MustGet(middleware.ContextUserID).(uint)

	serviceID, ok := paramUint(c, "serviceId")
	if !ok {
		return
	}

	var s models.Service
	if err := h.db.First(&s, serviceID).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	if s.CreativeID != creativeID {
		httperr.Forbidden(c, "not_your_service", "You do not own this service.")
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid service data.")
		return
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DurationMin != nil {
		updates["duration_min"] = *req.DurationMin
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := h.db.Model(&s).Updates(updates).Error; err != nil {
			httperr.Internal(c, "service_update_failed", "Could not update service.")
			return
		}
	}

	httpresp.OK(c, s)
}
