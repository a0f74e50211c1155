package domain

import "time"

// Session is the server-side half of a login. A signed token is only
// honoured while its session row exists and has not expired.
type Session struct {
	ID        string
	UserID    string
	TokenHash string // fingerprint of the issued token
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer usable at now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Principal is the identified user behind an authenticated request.
type Principal struct {
	UserID    string
	Username  string
	SessionID string
}
