package helpers

import (
	"time"

	"github.com/yigit/clubhub/internal/pkg/logger"
)

// ParseDuration parses a config duration such as "1h" or "720h", falling back to def.
func ParseDuration(value string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn().Err(err).Str("value", value).Dur("default", def).Msg("Invalid duration in config, using default")
		return def
	}
	return d
}

// WholeDaysBetween returns the number of complete days from start to end, never negative.
func WholeDaysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start) / (24 * time.Hour))
}
