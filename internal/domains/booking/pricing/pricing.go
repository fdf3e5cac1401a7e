// Package pricing validates a booking window against a space and quotes its price.
//
// Amounts use arbitrary precision decimals and are rounded to cents once per stage, half away
// from zero: the subtotal, then the service fee on that subtotal. The total is their sum.
package pricing

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"locally/shared/constant"
	"locally/shared/timezone"
)

const (
	centPlaces    = 2
	minutesInHour = 60
)

var (
	ErrCapacityExceeded = errors.New("guest count exceeds the space capacity")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrInvalidGuests    = errors.New("guest count must be at least 1")
	ErrInvalidDate      = errors.New("date must use the YYYY-MM-DD format")
	ErrInvalidClock     = errors.New("times must use the HH:MM format")
	ErrSkippedClock     = errors.New("time does not exist on that date in the local timezone")
)

// FeeRate is the platform service fee charged on the subtotal.
var FeeRate = decimal.RequireFromString("0.10")

var minutesPerHour = decimal.NewFromInt(minutesInHour)

// Window is a booked time range on a single day. Start and End are the stored instants,
// StartMinute and EndMinute the wall-clock minutes of the day the price is billed on.
type Window struct {
	Start       time.Time
	End         time.Time
	StartMinute int
	EndMinute   int
}

// Duration is the wall-clock length of w, independent of any offset change during the day.
func (w Window) Duration() time.Duration {
	return time.Duration(w.EndMinute-w.StartMinute) * time.Minute
}

// ParseWindow reads a day and two wall-clock times in the application timezone.
func ParseWindow(day, start, end string) (Window, error) {
	return ParseWindowIn(timezone.GetLocation(), day, start, end)
}

// ParseWindowIn is ParseWindow for an explicit location. A clock value the location skips
// on that day is rejected.
func ParseWindowIn(loc *time.Location, day, start, end string) (Window, error) {
	if _, err := time.ParseInLocation(constant.DayFormat, day, loc); err != nil {
		return Window{}, ErrInvalidDate
	}

	startAt, startMinute, err := parseClock(loc, day, start)
	if err != nil {
		return Window{}, err
	}

	endAt, endMinute, err := parseClock(loc, day, end)
	if err != nil {
		return Window{}, err
	}

	return Window{Start: startAt, End: endAt, StartMinute: startMinute, EndMinute: endMinute}, nil
}

func parseClock(loc *time.Location, day, clock string) (time.Time, int, error) {
	wall, err := time.Parse(constant.ClockFormat, clock)
	if err != nil {
		return time.Time{}, 0, ErrInvalidClock
	}

	at, err := time.ParseInLocation(constant.DayClockFormat, day+" "+clock, loc)
	if err != nil {
		return time.Time{}, 0, ErrInvalidClock
	}

	if at.Hour() != wall.Hour() || at.Minute() != wall.Minute() {
		return time.Time{}, 0, ErrSkippedClock
	}

	return at, wall.Hour()*minutesInHour + wall.Minute(), nil
}

// Validate checks a request for capacity guests over w.
func Validate(capacity, guests int, w Window) error {
	if guests < 1 {
		return ErrInvalidGuests
	}

	if guests > capacity {
		return ErrCapacityExceeded
	}

	if w.EndMinute <= w.StartMinute {
		return ErrInvalidTimeRange
	}

	return nil
}

type Quote struct {
	Hours    decimal.Decimal
	Subtotal decimal.Decimal
	Fee      decimal.Decimal
	Total    decimal.Decimal
}

// Compute prices w at pricePerHour. It does not validate w.
func Compute(pricePerHour decimal.Decimal, w Window) Quote {
	minutes := decimal.NewFromInt(int64(w.Duration() / time.Minute))

	subtotal := pricePerHour.Mul(minutes).Div(minutesPerHour).Round(centPlaces)
	fee := subtotal.Mul(FeeRate).Round(centPlaces)

	return Quote{
		Hours:    minutes.Div(minutesPerHour).Round(centPlaces),
		Subtotal: subtotal,
		Fee:      fee,
		Total:    subtotal.Add(fee),
	}
}

// Price validates a request and returns its window and quote.
func Price(pricePerHour decimal.Decimal, capacity, guests int, day, start, end string) (Window, Quote, error) {
	w, err := ParseWindow(day, start, end)
	if err != nil {
		return Window{}, Quote{}, err
	}

	if err = Validate(capacity, guests, w); err != nil {
		return Window{}, Quote{}, err
	}

	return w, Compute(pricePerHour, w), nil
}
