package roster

import "time"

// IsExpired reports whether the expiry date is strictly before now,
// comparing calendar dates only. An entry expiring today is still valid
// for the whole day. The caller supplies now so the policy stays
// deterministic.
func IsExpired(expires, now time.Time) bool {
	e := time.Date(expires.Year(), expires.Month(), expires.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return e.Before(n)
}
