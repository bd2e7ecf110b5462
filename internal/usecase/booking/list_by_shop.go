package booking

import (
	"context"
	"time"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/models"
)

type ListByShopInput struct {
	ShopID uint

	Date     string // optional, YYYY-MM-DD
	BarberID uint   // optional
	Status   string // optional
}

type ListByShop struct {
	repo domain.Repository
}

func NewListByShop(repo domain.Repository) *ListByShop {
	return &ListByShop{repo: repo}
}

func (uc *ListByShop) Execute(
	ctx context.Context,
	in ListByShopInput,
	userID uint,
	role string,
) ([]models.Booking, error) {

	shop, err := uc.repo.GetShop(ctx, in.ShopID)
	if err != nil {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	isBarber, err := uc.repo.IsShopBarber(ctx, in.ShopID, userID)
	if err != nil {
		return nil, err
	}

	if !domain.CanListShop(shop.OwnerID, isBarber, userID, role) {
		return nil, httperr.ErrBusiness("forbidden")
	}

	var filter domain.ShopListFilter

	if in.Date != "" {
		d, err := time.ParseInLocation(domain.DateLayout, in.Date, time.UTC)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_date")
		}
		filter.Date = &d
	}
	filter.BarberID = in.BarberID
	if in.Status != "" {
		status, err := domain.ParseStatus(in.Status)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	return uc.repo.ListByShop(ctx, in.ShopID, filter)
}
