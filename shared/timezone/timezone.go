package timezone

import (
	"time"

	"github.com/rs/zerolog/log"

	"locally/config"
)

const defaultTimezone = "UTC"

var appLocation = time.UTC

func init() {
	name := config.Get().App.Timezone
	if name == "" {
		log.Warn().Msg("No timezone configured, using UTC as default")

		return
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().
			Err(err).
			Str("timezone", name).
			Str("fallback", defaultTimezone).
			Msg("Failed to load timezone, use IANA names like 'America/Santiago' or 'UTC'")

		return
	}

	appLocation = loc

	log.Info().Str("timezone", loc.String()).Msg("Application timezone initialized")
}

// Now returns the current time in the application timezone.
func Now() time.Time {
	return time.Now().In(appLocation)
}

// ToAppTime converts a time to the application timezone.
func ToAppTime(t time.Time) time.Time {
	return t.In(appLocation)
}

// GetLocation returns the application timezone location.
func GetLocation() *time.Location {
	return appLocation
}

// Parse parses a wall-clock value as application local time.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, appLocation)
}

// Format formats a time in the application timezone.
func Format(t time.Time, layout string) string {
	return ToAppTime(t).Format(layout)
}
