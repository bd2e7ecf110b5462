package booking

import (
	"context"
	"time"

	"github.com/barberbook/booking-api/internal/models"
)

// ShopListFilter narrows a shop's booking listing. Zero values mean
// "no filter".
type ShopListFilter struct {
	Date     *time.Time
	BarberID uint
	Status   Status
}

type Repository interface {
	// -------- Referenced entities --------
	GetUser(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetShop(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	IsShopBarber(
		ctx context.Context,
		shopID uint,
		userID uint,
	) (bool, error)

	// -------- Availability --------
	AssertSlotFree(
		ctx context.Context,
		barberID uint,
		date time.Time,
		slot TimeRange,
	) error

	ListForBarberDay(
		ctx context.Context,
		barberID uint,
		date time.Time,
	) ([]models.Booking, error)

	// -------- Booking (create / mutate) --------

	// CreateBooking re-runs the slot check under a row lock scoped to
	// the barber+date key and inserts in the same transaction.
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		id uint,
	) error

	// -------- Listings --------
	ListByCustomer(
		ctx context.Context,
		customerID uint,
		status Status,
	) ([]models.Booking, error)

	ListByShop(
		ctx context.Context,
		shopID uint,
		filter ShopListFilter,
	) ([]models.Booking, error)
}
