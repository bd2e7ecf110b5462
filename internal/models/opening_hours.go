package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// DayHours describes a shop's schedule for a single weekday.
type DayHours struct {
	Opens  string `json:"open"`
	Closes string `json:"close"`
	Closed bool   `json:"is_closed"`
}

// OpeningHours keys the weekly schedule by weekday (Sunday = 0).
// Stored as a jsonb column.
type OpeningHours map[time.Weekday]DayHours

func (h OpeningHours) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	b, err := json.Marshal(h)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (h *OpeningHours) Scan(value any) error {
	if value == nil {
		*h = nil
		return nil
	}

	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return errors.New("opening_hours: unsupported scan type")
	}

	return json.Unmarshal(b, h)
}

// ForDay returns the schedule for a weekday. Missing entries count as closed.
func (h OpeningHours) ForDay(day time.Weekday) DayHours {
	dh, ok := h[day]
	if !ok {
		return DayHours{Closed: true}
	}
	return dh
}
