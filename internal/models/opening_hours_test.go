package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpeningHoursValueScan(t *testing.T) {
	in := OpeningHours{
		time.Monday:  {Opens: "09:00", Closes: "18:00"},
		time.Sunday:  {Closed: true},
		time.Tuesday: {Opens: "10:00", Closes: "16:00"},
	}

	v, err := in.Value()
	require.NoError(t, err)

	var out OpeningHours
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)

	// Postgres drivers hand jsonb back as []byte.
	var fromBytes OpeningHours
	require.NoError(t, fromBytes.Scan([]byte(v.(string))))
	assert.Equal(t, in, fromBytes)
}

func TestOpeningHoursNilAndNull(t *testing.T) {
	var h OpeningHours

	v, err := h.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	h = OpeningHours{time.Monday: {Opens: "09:00", Closes: "18:00"}}
	require.NoError(t, h.Scan(nil))
	assert.Nil(t, h)

	assert.Error(t, h.Scan(42))
}

func TestOpeningHoursForDay(t *testing.T) {
	h := OpeningHours{
		time.Monday: {Opens: "09:00", Closes: "18:00"},
	}

	assert.Equal(t, DayHours{Opens: "09:00", Closes: "18:00"}, h.ForDay(time.Monday))
	assert.Equal(t, DayHours{Closed: true}, h.ForDay(time.Wednesday), "missing day counts as closed")

	var empty OpeningHours
	assert.Equal(t, DayHours{Closed: true}, empty.ForDay(time.Monday))
}
