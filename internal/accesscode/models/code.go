package models

import "time"

// AccessCode is the short-lived, numeric credential minted after a successful
// login. At most one live instance exists; issuing a new one replaces the
// previous one unconditionally.
type AccessCode struct {
	Value     string    `json:"value"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExpiredAt reports whether the code has outlived its TTL as of now. A code
// expiring exactly at now is still live; expiry is strictly after ExpiresAt.
func (c *AccessCode) ExpiredAt(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// RemainingSeconds returns whole seconds until expiry, never negative.
func (c *AccessCode) RemainingSeconds(now time.Time) int {
	remaining := c.ExpiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining / time.Second)
}
