package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/models"
)

func TestGetBooking(t *testing.T) {
	repo := seedRepo()
	b := createPending(t, repo)
	uc := NewGetBooking(repo)
	ctx := context.Background()

	got, err := uc.Execute(ctx, b.ID, 1, models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = uc.Execute(ctx, b.ID, 2, models.RoleBarber)
	assert.NoError(t, err, "assigned barber can view")

	_, err = uc.Execute(ctx, b.ID, 99, models.RoleAdmin)
	assert.NoError(t, err, "admin can view")

	_, err = uc.Execute(ctx, b.ID, 77, models.RoleCustomer)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "forbidden"))

	_, err = uc.Execute(ctx, 999, 1, models.RoleCustomer)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}

func TestListByUser(t *testing.T) {
	repo := seedRepo()
	ctx := context.Background()
	create := NewCreateBooking(repo, nil)

	first, err := create.Execute(ctx, baseInput())
	require.NoError(t, err)

	second := baseInput()
	second.StartTime = "10:00"
	second.EndTime = "10:30"
	_, err = create.Execute(ctx, second)
	require.NoError(t, err)

	first.Status = string(domain.StatusCancelled)
	require.NoError(t, repo.UpdateBooking(ctx, first))

	uc := NewListByUser(repo)

	all, err := uc.Execute(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cancelled, err := uc.Execute(ctx, 1, "cancelled")
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	assert.Equal(t, first.ID, cancelled[0].ID)

	_, err = uc.Execute(ctx, 1, "nope")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))

	other, err := uc.Execute(ctx, 42, "")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestListByShop(t *testing.T) {
	repo := seedRepo()
	repo.addUser(seedBarber(3))
	repo.linkBarber(10, 3)
	ctx := context.Background()
	create := NewCreateBooking(repo, nil)

	_, err := create.Execute(ctx, baseInput())
	require.NoError(t, err)

	other := baseInput()
	other.BarberID = 3
	other.Date = "2025-03-11"
	_, err = create.Execute(ctx, other)
	require.NoError(t, err)

	uc := NewListByShop(repo)

	t.Run("owner sees everything", func(t *testing.T) {
		list, err := uc.Execute(ctx, ListByShopInput{ShopID: 10}, 5, models.RoleBarber)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("attached barber allowed", func(t *testing.T) {
		_, err := uc.Execute(ctx, ListByShopInput{ShopID: 10}, 2, models.RoleBarber)
		assert.NoError(t, err)
	})

	t.Run("customer forbidden", func(t *testing.T) {
		_, err := uc.Execute(ctx, ListByShopInput{ShopID: 10}, 1, models.RoleCustomer)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "forbidden"))
	})

	t.Run("unattached barber forbidden", func(t *testing.T) {
		_, err := uc.Execute(ctx, ListByShopInput{ShopID: 10}, 77, models.RoleBarber)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "forbidden"))
	})

	t.Run("filter by date", func(t *testing.T) {
		list, err := uc.Execute(ctx, ListByShopInput{ShopID: 10, Date: "2025-03-11"}, 5, models.RoleBarber)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, uint(3), list[0].BarberID)
	})

	t.Run("filter by barber", func(t *testing.T) {
		list, err := uc.Execute(ctx, ListByShopInput{ShopID: 10, BarberID: 2}, 5, models.RoleBarber)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, uint(2), list[0].BarberID)
	})

	t.Run("bad filters", func(t *testing.T) {
		_, err := uc.Execute(ctx, ListByShopInput{ShopID: 10, Date: "soon"}, 5, models.RoleBarber)
		assert.True(t, httperr.IsBusiness(err, "invalid_date"))

		_, err = uc.Execute(ctx, ListByShopInput{ShopID: 10, Status: "nope"}, 5, models.RoleBarber)
		assert.True(t, httperr.IsBusiness(err, "invalid_status"))
	})

	t.Run("unknown shop", func(t *testing.T) {
		_, err := uc.Execute(ctx, ListByShopInput{ShopID: 999}, 5, models.RoleBarber)
		assert.True(t, httperr.IsBusiness(err, "shop_not_found"))
	})
}

func TestDeleteBooking(t *testing.T) {
	repo := seedRepo()
	b := createPending(t, repo)
	uc := NewDeleteBooking(repo, nil)
	ctx := context.Background()

	require.NoError(t, uc.Execute(ctx, b.ID, 99))

	_, err := repo.GetBooking(ctx, b.ID)
	require.Error(t, err)

	err = uc.Execute(ctx, b.ID, 99)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "booking_not_found"))
}
