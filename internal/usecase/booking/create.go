package booking

import (
	"context"

	"github.com/barberbook/booking-api/internal/audit"
	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint

	BarberID  uint
	ShopID    uint
	ServiceID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM

	TotalPrice float64
	Notes      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.TotalPrice < 0 {
		return nil, httperr.ErrBusiness("invalid_price")
	}

	date, slot, err := domain.NewTimeRange(in.Date, in.StartTime, in.EndTime)
	if err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetUser(ctx, in.BarberID)
	if err != nil || barber.Role != models.RoleBarber {
		return nil, httperr.ErrBusiness("barber_not_found")
	}

	if _, err := uc.repo.GetShop(ctx, in.ShopID); err != nil {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || svc.ShopID != in.ShopID {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	// Fast read-only check; the repository repeats it under a row lock
	// inside the insert transaction.
	if err := uc.repo.AssertSlotFree(ctx, in.BarberID, date, slot); err != nil {
		return nil, err
	}

	b := &models.Booking{
		CustomerID:  in.CustomerID,
		BarberID:    in.BarberID,
		ShopID:      in.ShopID,
		ServiceID:   in.ServiceID,
		BookingDate: date,
		StartTime:   slot.Start,
		EndTime:     slot.End,
		Status:      string(domain.InitialStatus()),
		TotalPrice:  in.TotalPrice,
		Notes:       in.Notes,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
