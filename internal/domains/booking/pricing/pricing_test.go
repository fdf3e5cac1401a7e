package pricing_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locally/internal/domains/booking/pricing"
)

func money(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name     string
		price    string
		start    string
		end      string
		hours    string
		subtotal string
		fee      string
		total    string
	}{
		{name: "one hour", price: "450", start: "10:00", end: "11:00", hours: "1", subtotal: "450.00", fee: "45.00", total: "495.00"},
		{name: "ninety minutes", price: "320", start: "09:00", end: "10:30", hours: "1.5", subtotal: "480.00", fee: "48.00", total: "528.00"},
		{name: "twenty minutes rounds the subtotal", price: "450", start: "10:00", end: "10:20", hours: "0.33", subtotal: "150.00", fee: "15.00", total: "165.00"},
		{name: "fee rounds half away from zero", price: "0.25", start: "10:00", end: "11:00", hours: "1", subtotal: "0.25", fee: "0.03", total: "0.28"},
		{name: "cents in the price", price: "199.99", start: "08:00", end: "11:00", hours: "3", subtotal: "599.97", fee: "60.00", total: "659.97"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := pricing.ParseWindow("2025-03-14", tt.start, tt.end)
			require.NoError(t, err)

			q := pricing.Compute(money(tt.price), w)

			assert.True(t, money(tt.hours).Equal(q.Hours), "hours %s", q.Hours)
			assert.True(t, money(tt.subtotal).Equal(q.Subtotal), "subtotal %s", q.Subtotal)
			assert.True(t, money(tt.fee).Equal(q.Fee), "fee %s", q.Fee)
			assert.True(t, money(tt.total).Equal(q.Total), "total %s", q.Total)
			assert.True(t, q.Subtotal.Add(q.Fee).Equal(q.Total))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		capacity int
		guests   int
		start    string
		end      string
		want     error
	}{
		{name: "at capacity", capacity: 15, guests: 15, start: "13:00", end: "14:00"},
		{name: "over capacity", capacity: 15, guests: 16, start: "13:00", end: "14:00", want: pricing.ErrCapacityExceeded},
		{name: "no guests", capacity: 15, guests: 0, start: "13:00", end: "14:00", want: pricing.ErrInvalidGuests},
		{name: "end before start", capacity: 15, guests: 2, start: "14:00", end: "13:00", want: pricing.ErrInvalidTimeRange},
		{name: "empty range", capacity: 15, guests: 2, start: "14:00", end: "14:00", want: pricing.ErrInvalidTimeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := pricing.ParseWindow("2025-03-14", tt.start, tt.end)
			require.NoError(t, err)

			err = pricing.Validate(tt.capacity, tt.guests, w)
			if tt.want == nil {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseWindow(t *testing.T) {
	w, err := pricing.ParseWindow("2025-03-14", "10:00", "11:30")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14 10:00", w.Start.Format("2006-01-02 15:04"))
	assert.Equal(t, 90.0, w.Duration().Minutes())

	_, err = pricing.ParseWindow("14/03/2025", "10:00", "11:00")
	assert.ErrorIs(t, err, pricing.ErrInvalidDate)

	_, err = pricing.ParseWindow("2025-03-14", "10am", "11:00")
	assert.ErrorIs(t, err, pricing.ErrInvalidClock)

	_, err = pricing.ParseWindow("2025-03-14", "10:00", "25:00")
	assert.ErrorIs(t, err, pricing.ErrInvalidClock)
}

func TestParseWindowIn_DaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	t.Run("spring forward bills the wall clock", func(t *testing.T) {
		w, err := pricing.ParseWindowIn(loc, "2026-03-08", "01:00", "03:00")
		require.NoError(t, err)
		assert.Equal(t, 120.0, w.Duration().Minutes())

		q := pricing.Compute(money("100"), w)
		assert.Equal(t, "2.00", q.Hours.StringFixed(2))
		assert.Equal(t, "200.00", q.Subtotal.StringFixed(2))
		assert.Equal(t, "220.00", q.Total.StringFixed(2))
	})

	t.Run("fall back bills the wall clock", func(t *testing.T) {
		w, err := pricing.ParseWindowIn(loc, "2026-11-01", "00:30", "02:30")
		require.NoError(t, err)
		assert.Equal(t, 120.0, w.Duration().Minutes())
		assert.Equal(t, "220.00", pricing.Compute(money("100"), w).Total.StringFixed(2))
	})

	t.Run("skipped local time is rejected", func(t *testing.T) {
		_, err := pricing.ParseWindowIn(loc, "2026-03-08", "02:30", "02:45")
		assert.ErrorIs(t, err, pricing.ErrSkippedClock)
	})

	t.Run("same inputs price the same in any zone", func(t *testing.T) {
		ny, err := pricing.ParseWindowIn(loc, "2026-03-08", "01:00", "03:00")
		require.NoError(t, err)
		utc, err := pricing.ParseWindowIn(time.UTC, "2026-03-08", "01:00", "03:00")
		require.NoError(t, err)

		assert.True(t, pricing.Compute(money("100"), ny).Total.Equal(pricing.Compute(money("100"), utc).Total))
	})
}

func TestPrice(t *testing.T) {
	w, q, err := pricing.Price(money("450"), 15, 4, "2025-03-14", "10:00", "11:00")
	require.NoError(t, err)
	assert.Equal(t, 60.0, w.Duration().Minutes())
	assert.Equal(t, "495.00", q.Total.StringFixed(2))

	_, _, err = pricing.Price(money("450"), 15, 16, "2025-03-14", "10:00", "11:00")
	assert.ErrorIs(t, err, pricing.ErrCapacityExceeded)

	_, _, err = pricing.Price(money("450"), 15, 4, "2025-03-14", "14:00", "13:00")
	assert.ErrorIs(t, err, pricing.ErrInvalidTimeRange)
}
