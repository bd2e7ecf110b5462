package booking

import "github.com/barberbook/booking-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func InitialStatus() Status {
	return StatusPending
}

// IsTerminal reports whether no further transitions are expected.
// Transitions out of terminal states are still allowed for an
// authorized caller; the store keeps whatever was last written.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ParseStatus validates a caller-supplied status value.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return Status(raw), nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// BlocksSlot reports whether a booking in this status occupies its
// time slot. Only cancelled bookings free the slot.
func (s Status) BlocksSlot() bool {
	return s != StatusCancelled
}
