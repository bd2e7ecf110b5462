package booking

import "github.com/barberbook/booking-api/internal/models"

// ===============================
// Authorization predicates
// ===============================

// CanView allows the booking's customer, its barber, or an admin.
func CanView(b *models.Booking, userID uint, role string) bool {
	if role == models.RoleAdmin {
		return true
	}
	return userID == b.CustomerID || userID == b.BarberID
}

// CanUpdateStatus allows the assigned barber, the owning shop's owner,
// or an admin.
func CanUpdateStatus(b *models.Booking, shopOwnerID uint, userID uint, role string) bool {
	if role == models.RoleAdmin {
		return true
	}
	return userID == b.BarberID || userID == shopOwnerID
}

// CanListShop allows the shop owner, a barber attached to the shop, or
// an admin.
func CanListShop(shopOwnerID uint, isShopBarber bool, userID uint, role string) bool {
	if role == models.RoleAdmin {
		return true
	}
	return userID == shopOwnerID || isShopBarber
}
