package domain

import "time"

// Claims is the verified content of a bearer token. It is rebuilt from the
// token on every protected request and never persisted.
type Claims struct {
	Username  string
	Role      Role
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
