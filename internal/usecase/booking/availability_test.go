package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/models"
)

func TestCheckAvailability(t *testing.T) {
	repo := seedRepo()
	createPending(t, repo) // 2025-03-10 09:00-09:30, barber 2
	uc := NewCheckAvailability(repo)
	ctx := context.Background()

	day, slot, err := domain.NewTimeRange("2025-03-10", "09:00", "09:30")
	require.NoError(t, err)

	free, err := uc.Execute(ctx, 2, day, slot)
	require.NoError(t, err)
	assert.False(t, free)

	_, touching, err := domain.NewTimeRange("2025-03-10", "09:30", "10:00")
	require.NoError(t, err)

	free, err = uc.Execute(ctx, 2, day, touching)
	require.NoError(t, err)
	assert.True(t, free)

	free, err = uc.Execute(ctx, 3, day, slot)
	require.NoError(t, err)
	assert.True(t, free, "another barber's calendar is independent")
}

// openShop gives shop 10 a 09:00-12:00 window on 2025-03-10 (a Monday).
func openShop(repo *fakeRepository) {
	shop := *repo.shops[10]
	shop.OpeningHours = models.OpeningHours{
		time.Monday: {Opens: "09:00", Closes: "12:00"},
		time.Sunday: {Closed: true},
	}
	repo.addShop(shop)
}

func TestListFreeSlots(t *testing.T) {
	repo := seedRepo()
	openShop(repo)
	uc := NewListFreeSlots(repo)
	ctx := context.Background()

	in := ListFreeSlotsInput{ShopID: 10, BarberID: 2, ServiceID: 20, Date: "2025-03-10"}

	t.Run("empty calendar", func(t *testing.T) {
		slots, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		require.Len(t, slots, 6, "09:00-12:00 in 30min steps")
		assert.Equal(t, FreeSlot{Start: "09:00", End: "09:30"}, slots[0])
		assert.Equal(t, FreeSlot{Start: "11:30", End: "12:00"}, slots[5])
	})

	t.Run("booked slot dropped", func(t *testing.T) {
		in2 := baseInput()
		in2.StartTime = "10:00"
		in2.EndTime = "10:30"
		_, err := NewCreateBooking(repo, nil).Execute(ctx, in2)
		require.NoError(t, err)

		slots, err := uc.Execute(ctx, in)
		require.NoError(t, err)
		assert.Len(t, slots, 5)
		assert.NotContains(t, slots, FreeSlot{Start: "10:00", End: "10:30"})
	})

	t.Run("closed day yields nothing", func(t *testing.T) {
		closed := in
		closed.Date = "2025-03-09" // Sunday, marked closed
		slots, err := uc.Execute(ctx, closed)
		require.NoError(t, err)
		assert.Empty(t, slots)

		missing := in
		missing.Date = "2025-03-11" // Tuesday, no entry at all
		slots, err = uc.Execute(ctx, missing)
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("bad input", func(t *testing.T) {
		bad := in
		bad.Date = "someday"
		_, err := uc.Execute(ctx, bad)
		assert.True(t, httperr.IsBusiness(err, "invalid_date"))

		bad = in
		bad.ShopID = 999
		_, err = uc.Execute(ctx, bad)
		assert.True(t, httperr.IsBusiness(err, "shop_not_found"))

		bad = in
		bad.ServiceID = 999
		_, err = uc.Execute(ctx, bad)
		assert.True(t, httperr.IsBusiness(err, "service_not_found"))
	})
}

func TestListFreeSlotsDurationMustDivideWindow(t *testing.T) {
	repo := seedRepo()
	openShop(repo)
	repo.addService(models.Service{ID: 22, ShopID: 10, Name: "Full Works", Price: 80, DurationMin: 50})
	uc := NewListFreeSlots(repo)

	slots, err := uc.Execute(context.Background(), ListFreeSlotsInput{
		ShopID: 10, BarberID: 2, ServiceID: 22, Date: "2025-03-10",
	})
	require.NoError(t, err)

	// 09:00-12:00 fits three 50-minute steps; a slot past 12:00 never appears.
	require.Len(t, slots, 3)
	assert.Equal(t, FreeSlot{Start: "10:40", End: "11:30"}, slots[2])
}
