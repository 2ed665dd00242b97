package helpers

import (
	"time"

	"github.com/rs/zerolog/log"
)

// ParseDuration parses a duration string, falling back to the default when
// the value is empty or malformed. Misconfigured durations are logged, not
// fatal.
func ParseDuration(durationStr string, defaultDuration time.Duration) time.Duration {
	duration, err := time.ParseDuration(durationStr)
	if err != nil {
		log.Warn().Err(err).Str("value", durationStr).Dur("default", defaultDuration).Msg("Invalid duration, using default")
		return defaultDuration
	}
	return duration
}
