package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/models"
)

// Postgres SQLSTATE for exclusion-constraint violations.
const pgExclusionViolation = "23P01"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Referenced entities
// --------------------------------------------------

func (r *BookingGormRepository) GetUser(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *BookingGormRepository) GetShop(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) IsShopBarber(
	ctx context.Context,
	shopID uint,
	userID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShopBarber{}).
		Where("shop_id = ? AND user_id = ?", shopID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) AssertSlotFree(
	ctx context.Context,
	barberID uint,
	date time.Time,
	slot domain.TimeRange,
) error {
	return assertSlotFree(r.db.WithContext(ctx), barberID, date, slot, false)
}

// assertSlotFree counts non-cancelled rows satisfying the half-open
// overlap test (s < end AND e > start). With lock=true the matching
// rows are locked FOR UPDATE so a concurrent create on the same
// barber+date serializes behind this transaction.
func assertSlotFree(
	tx *gorm.DB,
	barberID uint,
	date time.Time,
	slot domain.TimeRange,
	lock bool,
) error {

	q := tx.Model(&models.Booking{})
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var count int64
	if err := q.
		Where(
			"barber_id = ? AND booking_date = ? AND status <> 'cancelled' AND start_time < ? AND end_time > ?",
			barberID,
			date,
			slot.End,
			slot.Start,
		).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return nil
}

func (r *BookingGormRepository) ListForBarberDay(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time", "status").
		Where(
			"barber_id = ? AND booking_date = ? AND status <> 'cancelled'",
			barberID, date,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Booking (create / mutate)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		slot := domain.TimeRange{Start: b.StartTime, End: b.EndTime}
		if err := assertSlotFree(tx, b.BarberID, b.BookingDate, slot, true); err != nil {
			return err
		}
		return tx.Create(b).Error
	})

	// The exclusion constraint is the backstop for anything the lock
	// misses; surface it as the same business error.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation {
		return httperr.ErrBusiness("slot_unavailable")
	}

	return err
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}

// --------------------------------------------------
// Listings
// --------------------------------------------------

func (r *BookingGormRepository) ListByCustomer(
	ctx context.Context,
	customerID uint,
	status domain.Status,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Shop").
		Preload("Service").
		Where("customer_id = ?", customerID)

	if status != "" {
		q = q.Where("status = ?", string(status))
	}

	var bookings []models.Booking
	if err := q.
		Order("booking_date DESC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListByShop(
	ctx context.Context,
	shopID uint,
	filter domain.ShopListFilter,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Barber").
		Preload("Service").
		Where("shop_id = ?", shopID)

	if filter.Date != nil {
		q = q.Where("booking_date = ?", *filter.Date)
	}
	if filter.BarberID != 0 {
		q = q.Where("barber_id = ?", filter.BarberID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", string(filter.Status))
	}

	var bookings []models.Booking
	if err := q.
		Order("booking_date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
