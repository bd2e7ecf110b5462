package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/cache"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/httpresp"
	"github.com/barberbook/booking-api/internal/middleware"
	"github.com/barberbook/booking-api/internal/models"
)

type ServiceHandler struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewServiceHandler(db *gorm.DB, c *cache.Cache) *ServiceHandler {
	return &ServiceHandler{db: db, cache: c}
}

// ======================================================
// REQUESTS
// ======================================================

type ServiceRequest struct {
	ShopID      uint    `json:"shop_id" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"min=0"`
	DurationMin int     `json:"duration_min" binding:"required,min=1"`
	ImageURL    string  `json:"image_url"`
}

// ======================================================
// PUBLIC READS
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}
	httpresp.List(c, services)
}

func (h *ServiceHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}
	httpresp.OK(c, svc)
}

// ListByBarber returns the services of every shop the barber works in.
func (h *ServiceHandler) ListByBarber(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid barber id.")
		return
	}

	var barber models.User
	if err := h.db.
		Where("id = ? AND role = ?", id, models.RoleBarber).
		First(&barber).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barber not found.")
		return
	}

	var services []models.Service
	if err := h.db.
		Joins("JOIN shop_barbers sb ON sb.shop_id = services.shop_id").
		Where("sb.user_id = ?", barber.ID).
		Order("services.shop_id, services.name").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, services)
}

// Popular ranks services by how many bookings reference them.
func (h *ServiceHandler) Popular(c *gin.Context) {
	type popularService struct {
		models.Service
		BookingCount int64 `json:"booking_count"`
	}

	var out []popularService
	if err := h.db.
		Model(&models.Service{}).
		Select("services.*, COUNT(bookings.id) AS booking_count").
		Joins("LEFT JOIN bookings ON bookings.service_id = services.id").
		Group("services.id").
		Order("booking_count DESC").
		Limit(10).
		Find(&out).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// WRITES (shop owner / admin)
// ======================================================

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if !h.authorizeShop(c, req.ShopID) {
		return
	}

	svc := models.Service{
		ShopID:      req.ShopID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		ImageURL:    req.ImageURL,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Could not create service.")
		return
	}

	h.invalidate(c, svc.ShopID)
	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if !h.authorizeShop(c, svc.ShopID) {
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.Price = req.Price
	svc.DurationMin = req.DurationMin
	svc.ImageURL = req.ImageURL

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Could not update service.")
		return
	}

	h.invalidate(c, svc.ShopID)
	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid service id.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Service not found.")
		return
	}

	if !h.authorizeShop(c, svc.ShopID) {
		return
	}

	if err := h.db.Delete(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Could not delete service.")
		return
	}

	h.invalidate(c, svc.ShopID)
	httpresp.OK(c, gin.H{"message": "service_deleted"})
}

// ======================================================
// HELPERS
// ======================================================

func (h *ServiceHandler) authorizeShop(c *gin.Context, shopID uint) bool {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return false
	}

	if role != models.RoleAdmin && shop.OwnerID != userID {
		httperr.Forbidden(c, "forbidden", "You do not own this shop.")
		return false
	}
	return true
}

func (h *ServiceHandler) invalidate(c *gin.Context, shopID uint) {
	h.cache.Del(c.Request.Context(), fmt.Sprintf("shops:%d:services", shopID))
}
