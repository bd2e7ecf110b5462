package booking

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/barberbook/booking-api/internal/audit"
	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/models"
)

// PaymentLinker builds a checkout link for a booking's total price.
// Nil when payments are not configured.
type PaymentLinker interface {
	CheckoutLink(ctx context.Context, b *models.Booking) (string, error)
}

type UpdateStatusResult struct {
	Booking    *models.Booking `json:"booking"`
	PaymentURL string          `json:"payment_url,omitempty"`
}

type UpdateStatus struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	payments PaymentLinker
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	payments PaymentLinker,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		audit:    audit,
		payments: payments,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	bookingID uint,
	userID uint,
	role string,
	rawStatus string,
) (*UpdateStatusResult, error) {

	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	shop, err := uc.repo.GetShop(ctx, b.ShopID)
	if err != nil {
		return nil, err
	}

	if !domain.CanUpdateStatus(b, shop.OwnerID, userID, role) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	b.Status = string(status)
	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	res := &UpdateStatusResult{Booking: b}

	if status == domain.StatusConfirmed && uc.payments != nil && b.TotalPrice > 0 {
		url, err := uc.payments.CheckoutLink(ctx, b)
		if err != nil {
			// The transition already committed; a failed checkout link
			// must not roll it back.
			log.Warn().Err(err).Uint("booking_id", b.ID).Msg("checkout link failed")
		} else {
			res.PaymentURL = url
		}
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		UserRole: role,
		Action:   "booking_status_" + rawStatus,
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return res, nil
}
