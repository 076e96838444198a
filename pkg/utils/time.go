package utils

import "time"

// NowMillis returns the current UTC time truncated to millisecond precision,
// the finest resolution every supported store round-trips.
func NowMillis() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
