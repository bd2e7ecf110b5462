package dto

import (
	"time"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/models"
)

// BookingDTO is the wire shape of a booking: the date and the slot
// bounds go out as "YYYY-MM-DD" / "HH:MM" strings. Joined names are
// present when the associations were loaded.
type BookingDTO struct {
	ID uint `json:"id"`

	CustomerID uint `json:"customer_id"`
	BarberID   uint `json:"barber_id"`
	ShopID     uint `json:"shop_id"`
	ServiceID  uint `json:"service_id"`

	BookingDate string `json:"booking_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`

	Status     string  `json:"status"`
	TotalPrice float64 `json:"total_price"`
	Notes      string  `json:"notes,omitempty"`

	CustomerName string `json:"customer_name,omitempty"`
	BarberName   string `json:"barber_name,omitempty"`
	ShopName     string `json:"shop_name,omitempty"`
	ServiceName  string `json:"service_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromBooking(b *models.Booking) BookingDTO {
	return BookingDTO{
		ID:         b.ID,
		CustomerID: b.CustomerID,
		BarberID:   b.BarberID,
		ShopID:     b.ShopID,
		ServiceID:  b.ServiceID,

		BookingDate: b.BookingDate.Format(domain.DateLayout),
		StartTime:   b.StartTime.Format(domain.TimeLayout),
		EndTime:     b.EndTime.Format(domain.TimeLayout),

		Status:     b.Status,
		TotalPrice: b.TotalPrice,
		Notes:      b.Notes,

		CustomerName: b.Customer.Name,
		BarberName:   b.Barber.Name,
		ShopName:     b.Shop.Name,
		ServiceName:  b.Service.Name,

		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func FromBookings(bs []models.Booking) []BookingDTO {
	out := make([]BookingDTO, 0, len(bs))
	for i := range bs {
		out = append(out, FromBooking(&bs[i]))
	}
	return out
}
