package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/barberbook/booking-api/internal/dto"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/httpresp"
	"github.com/barberbook/booking-api/internal/middleware"
	ucBooking "github.com/barberbook/booking-api/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	create       *ucBooking.CreateBooking
	get          *ucBooking.GetBooking
	listByUser   *ucBooking.ListByUser
	listByShop   *ucBooking.ListByShop
	updateStatus *ucBooking.UpdateStatus
	remove       *ucBooking.DeleteBooking
}

func NewBookingHandler(
	create *ucBooking.CreateBooking,
	get *ucBooking.GetBooking,
	listByUser *ucBooking.ListByUser,
	listByShop *ucBooking.ListByShop,
	updateStatus *ucBooking.UpdateStatus,
	del *ucBooking.DeleteBooking,
) *BookingHandler {
	return &BookingHandler{
		create:       create,
		get:          get,
		listByUser:   listByUser,
		listByShop:   listByShop,
		updateStatus: updateStatus,
		remove:       del,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	BarberID  uint `json:"barber_id" binding:"required"`
	ShopID    uint `json:"shop_id" binding:"required"`
	ServiceID uint `json:"service_id" binding:"required"`

	BookingDate string `json:"booking_date" binding:"required"` // YYYY-MM-DD
	StartTime   string `json:"start_time" binding:"required"`   // HH:MM
	EndTime     string `json:"end_time" binding:"required"`     // HH:MM

	TotalPrice float64 `json:"total_price"`
	Notes      string  `json:"notes"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.create.Execute(c.Request.Context(), ucBooking.CreateBookingInput{
		CustomerID: userID,
		BarberID:   req.BarberID,
		ShopID:     req.ShopID,
		ServiceID:  req.ServiceID,
		Date:       req.BookingDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		TotalPrice: req.TotalPrice,
		Notes:      req.Notes,
	})
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.Created(c, dto.FromBooking(b))
}

// ======================================================
// READ
// ======================================================

func (h *BookingHandler) GetByID(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	b, err := h.get.Execute(c.Request.Context(), uint(id), userID, role)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, dto.FromBooking(b))
}

func (h *BookingHandler) ListMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookings, err := h.listByUser.Execute(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookings(bookings))
}

func (h *BookingHandler) ListByShop(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	shopID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid shop id.")
		return
	}

	var barberID uint
	if raw := c.Query("barber_id"); raw != "" {
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Invalid barber id.")
			return
		}
		barberID = uint(v)
	}

	bookings, err := h.listByShop.Execute(
		c.Request.Context(),
		ucBooking.ListByShopInput{
			ShopID:   uint(shopID),
			Date:     c.Query("date"),
			BarberID: barberID,
			Status:   c.Query("status"),
		},
		userID,
		role,
	)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.List(c, dto.FromBookings(bookings))
}

// ======================================================
// STATUS TRANSITION
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	role := c.GetString(middleware.ContextUserRole)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	res, err := h.updateStatus.Execute(c.Request.Context(), uint(id), userID, role, req.Status)
	if err != nil {
		writeUsecaseError(c, err)
		return
	}

	out := gin.H{"booking": dto.FromBooking(res.Booking)}
	if res.PaymentURL != "" {
		out["payment_url"] = res.PaymentURL
	}
	httpresp.OK(c, out)
}

// ======================================================
// DELETE (admin)
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid booking id.")
		return
	}

	if err := h.remove.Execute(c.Request.Context(), uint(id), userID); err != nil {
		writeUsecaseError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "booking_deleted"})
}
