package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberbook/booking-api/internal/cache"
	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/httpresp"
	"github.com/barberbook/booking-api/internal/imaging"
	"github.com/barberbook/booking-api/internal/middleware"
	"github.com/barberbook/booking-api/internal/models"
	"github.com/barberbook/booking-api/internal/storage"
	ucBooking "github.com/barberbook/booking-api/internal/usecase/booking"
)

const maxUploadBytes = 8 << 20

// ======================================================
// HANDLER
// ======================================================

type ShopHandler struct {
	db       *gorm.DB
	cache    *cache.Cache
	uploader *storage.Uploader
	slots    *ucBooking.ListFreeSlots
	check    *ucBooking.CheckAvailability
}

func NewShopHandler(
	db *gorm.DB,
	c *cache.Cache,
	uploader *storage.Uploader,
	slots *ucBooking.ListFreeSlots,
	check *ucBooking.CheckAvailability,
) *ShopHandler {
	return &ShopHandler{
		db:       db,
		cache:    c,
		uploader: uploader,
		slots:    slots,
		check:    check,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ShopRequest struct {
	Name         string              `json:"name" binding:"required"`
	Description  string              `json:"description"`
	Address      string              `json:"address"`
	Phone        string              `json:"phone"`
	Email        string              `json:"email" binding:"omitempty,email"`
	Instagram    string              `json:"instagram"`
	Website      string              `json:"website"`
	OpeningHours models.OpeningHours `json:"opening_hours"`
}

// ======================================================
// PUBLIC READS
// ======================================================

func (h *ShopHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var shops []models.Shop
	if h.cache.GetJSON(ctx, "shops:all", &shops) {
		httpresp.List(c, shops)
		return
	}

	if err := h.db.WithContext(ctx).Order("name ASC").Find(&shops).Error; err != nil {
		httperr.Internal(c, "failed_to_list_shops", "Could not list shops.")
		return
	}

	h.cache.SetJSON(ctx, "shops:all", shops)
	httpresp.List(c, shops)
}

func (h *ShopHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid shop id.")
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	var barbers []models.User
	h.db.
		Select("users.id", "users.name", "users.email", "users.phone").
		Joins("JOIN shop_barbers sb ON sb.user_id = users.id").
		Where("sb.shop_id = ? AND users.role = ?", shop.ID, models.RoleBarber).
		Find(&barbers)

	httpresp.OK(c, gin.H{
		"shop":    shop,
		"barbers": barbers,
	})
}

func (h *ShopHandler) ListServices(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid shop id.")
		return
	}

	cacheKey := fmt.Sprintf("shops:%d:services", id)

	var services []models.Service
	if h.cache.GetJSON(ctx, cacheKey, &services) {
		httpresp.List(c, services)
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	if err := h.db.
		Where("shop_id = ?", shop.ID).
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Could not list services.")
		return
	}

	h.cache.SetJSON(ctx, cacheKey, services)
	httpresp.List(c, services)
}

// Availability lists the free service-sized slots of a barber for one
// day, based on the shop's opening hours. With start and end query
// params it answers for that single slot instead.
func (h *ShopHandler) Availability(c *gin.Context) {
	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid shop id.")
		return
	}

	barberID, err := strconv.ParseUint(c.Query("barber_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "barber_id is required.")
		return
	}

	if start, end := c.Query("start"), c.Query("end"); start != "" || end != "" {
		date, slot, err := domain.NewTimeRange(c.Query("date"), start, end)
		if err != nil {
			writeUsecaseError(c, err)
			return
		}

		free, err := h.check.Execute(c.Request.Context(), uint(barberID), date, slot)
		if err != nil {
			writeUsecaseError(c, err)
			return
		}

		httpresp.OK(c, gin.H{"available": free})
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "service_id is required.")
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), ucBooking.ListFreeSlotsInput{
		ShopID:    uint(shopID),
		BarberID:  uint(barberID),
		ServiceID: uint(serviceID),
		Date:      c.Query("date"),
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.List(c, slots)
}

// ======================================================
// WRITES
// ======================================================

func (h *ShopHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	if role != models.RoleBarber && role != models.RoleAdmin {
		httperr.Forbidden(c, "forbidden", "Only barbers can open a shop.")
		return
	}

	var req ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	shop := models.Shop{
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		Phone:        req.Phone,
		Email:        req.Email,
		Instagram:    req.Instagram,
		Website:      req.Website,
		OpeningHours: req.OpeningHours,
		OwnerID:      userID,
	}

	if err := h.db.Create(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_create_shop", "Could not create shop.")
		return
	}

	// A barber owner also works in their own shop.
	if role == models.RoleBarber {
		h.db.Create(&models.ShopBarber{ShopID: shop.ID, UserID: userID})
	}

	h.cache.Del(c.Request.Context(), "shops:all")
	httpresp.Created(c, shop)
}

func (h *ShopHandler) Update(c *gin.Context) {
	shop, ok := h.loadOwnedShop(c)
	if !ok {
		return
	}

	var req ShopRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	shop.Name = req.Name
	shop.Description = req.Description
	shop.Address = req.Address
	shop.Phone = req.Phone
	shop.Email = req.Email
	shop.Instagram = req.Instagram
	shop.Website = req.Website
	if req.OpeningHours != nil {
		shop.OpeningHours = req.OpeningHours
	}

	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not update shop.")
		return
	}

	h.invalidateShop(c, shop.ID)
	httpresp.OK(c, shop)
}

func (h *ShopHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid shop id.")
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return
	}

	if err := h.db.Delete(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_shop", "Could not delete shop.")
		return
	}

	h.invalidateShop(c, shop.ID)
	httpresp.OK(c, gin.H{"message": "shop_deleted"})
}

type AddBarberRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

func (h *ShopHandler) AddBarber(c *gin.Context) {
	shop, ok := h.loadOwnedShop(c)
	if !ok {
		return
	}

	var req AddBarberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var barber models.User
	if err := h.db.First(&barber, req.UserID).Error; err != nil || barber.Role != models.RoleBarber {
		httperr.BadRequest(c, "barber_not_found", "User is not a barber.")
		return
	}

	link := models.ShopBarber{ShopID: shop.ID, UserID: barber.ID}
	if err := h.db.Create(&link).Error; err != nil {
		httperr.BadRequest(c, "barber_already_in_shop", "Barber is already attached to this shop.")
		return
	}

	httpresp.Created(c, link)
}

// ======================================================
// IMAGE UPLOADS
// ======================================================

func (h *ShopHandler) UploadLogo(c *gin.Context) {
	h.uploadImage(c, "logo", func(shop *models.Shop, url string) {
		shop.LogoURL = url
	})
}

func (h *ShopHandler) UploadCover(c *gin.Context) {
	h.uploadImage(c, "cover", func(shop *models.Shop, url string) {
		shop.CoverImageURL = url
	})
}

func (h *ShopHandler) uploadImage(c *gin.Context, kind string, assign func(*models.Shop, string)) {
	if !h.uploader.Enabled() {
		httperr.Internal(c, "uploads_disabled", "Image storage is not configured.")
		return
	}

	shop, ok := h.loadOwnedShop(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Send the file in the 'image' form field.")
		return
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil || len(raw) > maxUploadBytes {
		httperr.BadRequest(c, "image_too_large", "Image exceeds the upload limit.")
		return
	}

	converted, err := imaging.ToWebP(raw)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	key := fmt.Sprintf("shops/%d/%s-%s.webp", shop.ID, kind, uuid.NewString())
	url, err := h.uploader.Upload(c.Request.Context(), key, "image/webp", converted)
	if err != nil {
		httperr.Internal(c, "upload_failed", "Could not store the image.")
		return
	}

	assign(shop, url)
	shop.UpdatedAt = time.Now()
	if err := h.db.Save(shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Could not update shop.")
		return
	}

	h.invalidateShop(c, shop.ID)
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// ======================================================
// HELPERS
// ======================================================

// loadOwnedShop resolves :id and enforces owner-or-admin. Writes the
// error response itself when it returns ok=false.
func (h *ShopHandler) loadOwnedShop(c *gin.Context) (*models.Shop, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid shop id.")
		return nil, false
	}

	var shop models.Shop
	if err := h.db.First(&shop, id).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Shop not found.")
		return nil, false
	}

	if role != models.RoleAdmin && shop.OwnerID != userID {
		httperr.Forbidden(c, "forbidden", "You do not own this shop.")
		return nil, false
	}

	return &shop, true
}

func (h *ShopHandler) invalidateShop(c *gin.Context, shopID uint) {
	h.cache.Del(
		c.Request.Context(),
		"shops:all",
		fmt.Sprintf("shops:%d:services", shopID),
	)
}
