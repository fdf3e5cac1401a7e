// Package timezone pins every wall-clock conversion to the APP_TIMEZONE location.
//
//	now := timezone.Now()
//	start, err := timezone.Parse("2006-01-02 15:04", "2025-03-14 10:00")
//
// Booking dates and times arrive as local wall-clock values and are interpreted here,
// so two clients in different zones quote the same hours for the same input.
package timezone
