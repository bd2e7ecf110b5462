package booking

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
)

func baseInput() CreateBookingInput {
	return CreateBookingInput{
		CustomerID: 1,
		BarberID:   2,
		ShopID:     10,
		ServiceID:  20,
		Date:       "2025-03-10",
		StartTime:  "09:00",
		EndTime:    "09:30",
		TotalPrice: 30,
	}
}

func TestCreateBooking(t *testing.T) {
	repo := seedRepo()
	uc := NewCreateBooking(repo, nil)

	b, err := uc.Execute(context.Background(), baseInput())
	require.NoError(t, err)

	assert.NotZero(t, b.ID)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	assert.Equal(t, uint(1), b.CustomerID)
	assert.Equal(t, uint(2), b.BarberID)
	assert.Equal(t, "09:00", b.StartTime.Format(domain.TimeLayout))
	assert.Equal(t, "09:30", b.EndTime.Format(domain.TimeLayout))

	stored, err := repo.GetBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), stored.Status)
}

func TestCreateBookingRejectsOverlap(t *testing.T) {
	repo := seedRepo()
	uc := NewCreateBooking(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, baseInput())
	require.NoError(t, err)

	cases := []struct {
		name       string
		start, end string
	}{
		{"identical", "09:00", "09:30"},
		{"straddles start", "08:45", "09:15"},
		{"straddles end", "09:15", "09:45"},
		{"contains", "08:30", "10:00"},
		{"contained", "09:10", "09:20"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput()
			in.StartTime = tc.start
			in.EndTime = tc.end

			_, err := uc.Execute(ctx, in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, "slot_unavailable"))
		})
	}

	// Only the first booking made it in.
	list, err := repo.ListByCustomer(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateBookingAllowsTouchingSlots(t *testing.T) {
	repo := seedRepo()
	uc := NewCreateBooking(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, baseInput())
	require.NoError(t, err)

	before := baseInput()
	before.StartTime = "08:30"
	before.EndTime = "09:00"
	_, err = uc.Execute(ctx, before)
	assert.NoError(t, err, "slot ending exactly at an existing start must be free")

	after := baseInput()
	after.StartTime = "09:30"
	after.EndTime = "10:00"
	_, err = uc.Execute(ctx, after)
	assert.NoError(t, err, "slot starting exactly at an existing end must be free")
}

func TestCreateBookingIgnoresCancelled(t *testing.T) {
	repo := seedRepo()
	uc := NewCreateBooking(repo, nil)
	ctx := context.Background()

	first, err := uc.Execute(ctx, baseInput())
	require.NoError(t, err)

	first.Status = string(domain.StatusCancelled)
	require.NoError(t, repo.UpdateBooking(ctx, first))

	_, err = uc.Execute(ctx, baseInput())
	assert.NoError(t, err, "a cancelled booking must not block the slot")
}

func TestCreateBookingSameSlotOtherBarber(t *testing.T) {
	repo := seedRepo()
	repo.addUser(seedBarber(3))
	repo.linkBarber(10, 3)
	uc := NewCreateBooking(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, baseInput())
	require.NoError(t, err)

	in := baseInput()
	in.BarberID = 3
	_, err = uc.Execute(ctx, in)
	assert.NoError(t, err, "overlap checks are scoped per barber")
}

func TestCreateBookingSameSlotOtherDay(t *testing.T) {
	repo := seedRepo()
	uc := NewCreateBooking(repo, nil)
	ctx := context.Background()

	_, err := uc.Execute(ctx, baseInput())
	require.NoError(t, err)

	in := baseInput()
	in.Date = "2025-03-11"
	_, err = uc.Execute(ctx, in)
	assert.NoError(t, err, "overlap checks are scoped per day")
}

func TestCreateBookingValidation(t *testing.T) {
	repo := seedRepo()
	uc := NewCreateBooking(repo, nil)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateBookingInput)
		code   string
	}{
		{"negative price", func(in *CreateBookingInput) { in.TotalPrice = -1 }, "invalid_price"},
		{"inverted range", func(in *CreateBookingInput) { in.StartTime, in.EndTime = "10:00", "09:00" }, "invalid_time_range"},
		{"bad date", func(in *CreateBookingInput) { in.Date = "tomorrow" }, "invalid_date"},
		{"unknown barber", func(in *CreateBookingInput) { in.BarberID = 999 }, "barber_not_found"},
		{"customer as barber", func(in *CreateBookingInput) { in.BarberID = 1 }, "barber_not_found"},
		{"unknown shop", func(in *CreateBookingInput) { in.ShopID = 999 }, "shop_not_found"},
		{"unknown service", func(in *CreateBookingInput) { in.ServiceID = 999 }, "service_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := baseInput()
			tc.mutate(&in)

			_, err := uc.Execute(ctx, in)
			require.Error(t, err)
			assert.True(t, httperr.IsBusiness(err, tc.code), "want %s, got %v", tc.code, err)
		})
	}

	list, err := repo.ListByCustomer(ctx, 1, "")
	require.NoError(t, err)
	assert.Empty(t, list, "failed validations must not persist anything")
}

func TestCreateBookingServiceFromOtherShop(t *testing.T) {
	repo := seedRepo()
	repo.addShop(seedShop(11, 5))
	repo.addService(seedService(21, 11))
	uc := NewCreateBooking(repo, nil)

	in := baseInput()
	in.ServiceID = 21 // belongs to shop 11, not 10

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

// Two goroutines race for the same slot; exactly one wins.
func TestCreateBookingConcurrentSameSlot(t *testing.T) {
	repo := seedRepo()
	uc := NewCreateBooking(repo, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Execute(ctx, baseInput())
		}(i)
	}
	wg.Wait()

	var ok, conflict int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case httperr.IsBusiness(err, "slot_unavailable"):
			conflict++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflict)

	list, err := repo.ListByCustomer(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
