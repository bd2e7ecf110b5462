package booking

import (
	"context"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/models"
)

type ListByUser struct {
	repo domain.Repository
}

func NewListByUser(repo domain.Repository) *ListByUser {
	return &ListByUser{repo: repo}
}

// Execute always lists the caller's own bookings.
func (uc *ListByUser) Execute(
	ctx context.Context,
	userID uint,
	rawStatus string,
) ([]models.Booking, error) {

	var status domain.Status
	if rawStatus != "" {
		parsed, err := domain.ParseStatus(rawStatus)
		if err != nil {
			return nil, err
		}
		status = parsed
	}

	return uc.repo.ListByCustomer(ctx, userID, status)
}
