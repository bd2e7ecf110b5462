package booking

import (
	"context"
	"sync"
	"time"

	domain "github.com/barberbook/booking-api/internal/domain/booking"
	"github.com/barberbook/booking-api/internal/httperr"
	"github.com/barberbook/booking-api/internal/models"
)

// fakeRepository is an in-memory domain.Repository. CreateBooking
// re-checks the slot and inserts under one lock, mirroring the
// transactional check the real repository runs.
type fakeRepository struct {
	mu sync.Mutex

	users    map[uint]*models.User
	shops    map[uint]*models.Shop
	services map[uint]*models.Service
	barbers  map[uint]map[uint]bool // shopID -> userID

	bookings map[uint]*models.Booking
	nextID   uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		users:    map[uint]*models.User{},
		shops:    map[uint]*models.Shop{},
		services: map[uint]*models.Service{},
		barbers:  map[uint]map[uint]bool{},
		bookings: map[uint]*models.Booking{},
	}
}

func (f *fakeRepository) addUser(u models.User) {
	f.users[u.ID] = &u
}

func (f *fakeRepository) addShop(s models.Shop) {
	f.shops[s.ID] = &s
}

func (f *fakeRepository) addService(s models.Service) {
	f.services[s.ID] = &s
}

func (f *fakeRepository) linkBarber(shopID, userID uint) {
	if f.barbers[shopID] == nil {
		f.barbers[shopID] = map[uint]bool{}
	}
	f.barbers[shopID][userID] = true
}

func (f *fakeRepository) GetUser(_ context.Context, id uint) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, httperr.ErrBusiness("user_not_found")
}

func (f *fakeRepository) GetShop(_ context.Context, id uint) (*models.Shop, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.shops[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, httperr.ErrBusiness("shop_not_found")
}

func (f *fakeRepository) GetService(_ context.Context, id uint) (*models.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s, ok := f.services[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, httperr.ErrBusiness("service_not_found")
}

func (f *fakeRepository) IsShopBarber(_ context.Context, shopID, userID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.barbers[shopID][userID], nil
}

func (f *fakeRepository) conflictLocked(barberID uint, date time.Time, slot domain.TimeRange) bool {
	for _, b := range f.bookings {
		if b.BarberID != barberID || !b.BookingDate.Equal(date) {
			continue
		}
		if !domain.Status(b.Status).BlocksSlot() {
			continue
		}
		if slot.Overlaps(domain.TimeRange{Start: b.StartTime, End: b.EndTime}) {
			return true
		}
	}
	return false
}

func (f *fakeRepository) AssertSlotFree(
	_ context.Context,
	barberID uint,
	date time.Time,
	slot domain.TimeRange,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflictLocked(barberID, date, slot) {
		return httperr.ErrBusiness("slot_unavailable")
	}
	return nil
}

func (f *fakeRepository) ListForBarberDay(
	_ context.Context,
	barberID uint,
	date time.Time,
) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.BarberID == barberID && b.BookingDate.Equal(date) &&
			domain.Status(b.Status).BlocksSlot() {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeRepository) CreateBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	slot := domain.TimeRange{Start: b.StartTime, End: b.EndTime}
	if f.conflictLocked(b.BarberID, b.BookingDate, slot) {
		return httperr.ErrBusiness("slot_unavailable")
	}

	f.nextID++
	b.ID = f.nextID
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeRepository) GetBooking(_ context.Context, id uint) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b, ok := f.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (f *fakeRepository) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bookings[b.ID]; !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeRepository) DeleteBooking(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bookings, id)
	return nil
}

func (f *fakeRepository) ListByCustomer(
	_ context.Context,
	customerID uint,
	status domain.Status,
) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.CustomerID != customerID {
			continue
		}
		if status != "" && b.Status != string(status) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeRepository) ListByShop(
	_ context.Context,
	shopID uint,
	filter domain.ShopListFilter,
) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ShopID != shopID {
			continue
		}
		if filter.Date != nil && !b.BookingDate.Equal(*filter.Date) {
			continue
		}
		if filter.BarberID != 0 && b.BarberID != filter.BarberID {
			continue
		}
		if filter.Status != "" && b.Status != string(filter.Status) {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

var _ domain.Repository = (*fakeRepository)(nil)

func seedBarber(id uint) models.User {
	return models.User{ID: id, Name: "Barber", Role: models.RoleBarber}
}

func seedShop(id, ownerID uint) models.Shop {
	return models.Shop{ID: id, Name: "Shop", OwnerID: ownerID}
}

func seedService(id, shopID uint) models.Service {
	return models.Service{ID: id, ShopID: shopID, Name: "Service", Price: 25, DurationMin: 30}
}

// seedRepo returns a repo with one customer (1), one barber (2), one
// shop (10, owned by 5) and one 30-minute service (20).
func seedRepo() *fakeRepository {
	f := newFakeRepository()
	f.addUser(models.User{ID: 1, Name: "Carla", Role: models.RoleCustomer})
	f.addUser(models.User{ID: 2, Name: "Bruno", Role: models.RoleBarber})
	f.addUser(models.User{ID: 5, Name: "Otto", Role: models.RoleBarber})
	f.addShop(models.Shop{ID: 10, Name: "Downtown Cuts", OwnerID: 5})
	f.addService(models.Service{ID: 20, ShopID: 10, Name: "Haircut", Price: 30, DurationMin: 30})
	f.linkBarber(10, 2)
	return f
}
