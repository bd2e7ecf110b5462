package booking

import (
	"context"
	"time"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
)

// ======================================================
// AVAILABILITY
// ======================================================

type CheckAvailability struct {
	repo domain.Repository
}

func NewCheckAvailability(repo domain.Repository) *CheckAvailability {
	return &CheckAvailability{repo: repo}
}

// Execute reports whether the barber has no active booking overlapping
// [start, end) on the given date. Read-only; the caller must have
// validated start < end already.
func (uc *CheckAvailability) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
	slot domain.TimeRange,
) (bool, error) {

	err := uc.repo.AssertSlotFree(ctx, barberID, date, slot)
	if err == nil {
		return true, nil
	}
	if httperr.IsBusiness(err, "slot_unavailable") {
		return false, nil
	}
	return false, err
}

// ======================================================
// FREE SLOT LISTING
// ======================================================

type FreeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ListFreeSlotsInput struct {
	ShopID    uint
	BarberID  uint
	ServiceID uint
	Date      string // YYYY-MM-DD
}

type ListFreeSlots struct {
	repo domain.Repository
}

func NewListFreeSlots(repo domain.Repository) *ListFreeSlots {
	return &ListFreeSlots{repo: repo}
}

// Execute walks the shop's opening hours for the day in service-length
// steps and drops every slot that overlaps an active booking.
func (uc *ListFreeSlots) Execute(
	ctx context.Context,
	in ListFreeSlotsInput,
) ([]FreeSlot, error) {

	shop, err := uc.repo.GetShop(ctx, in.ShopID)
	if err != nil {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil || svc.ShopID != in.ShopID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	if svc.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_service_duration")
	}

	day, err := time.ParseInLocation(domain.DateLayout, in.Date, time.UTC)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	hours := shop.OpeningHours.ForDay(day.Weekday())
	if hours.Closed || hours.Opens == "" || hours.Closes == "" {
		return []FreeSlot{}, nil
	}

	_, window, err := domain.NewTimeRange(in.Date, hours.Opens, hours.Closes)
	if err != nil {
		return nil, err
	}

	taken, err := uc.repo.ListForBarberDay(ctx, in.BarberID, day)
	if err != nil {
		return nil, err
	}

	step := time.Duration(svc.DurationMin) * time.Minute
	slots := []FreeSlot{}

	for cur := window.Start; !cur.Add(step).After(window.End); cur = cur.Add(step) {
		candidate := domain.TimeRange{Start: cur, End: cur.Add(step)}

		conflict := false
		for _, b := range taken {
			if candidate.Overlaps(domain.TimeRange{Start: b.StartTime, End: b.EndTime}) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, FreeSlot{
				Start: candidate.Start.Format(domain.TimeLayout),
				End:   candidate.End.Format(domain.TimeLayout),
			})
		}
	}

	return slots, nil
}
