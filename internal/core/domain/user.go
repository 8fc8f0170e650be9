package domain

import "time"

// Role selects which credential store and route set apply to a caller.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

func (r Role) String() string { return string(r) }

// Account is a credential record held in a role's store. Admin records only
// ever carry the credential fields; user records also own a purchase ledger.
type Account struct {
	ID               string    `json:"id"`
	Username         string    `json:"username"`
	PasswordHash     string    `json:"-"`
	Role             Role      `json:"role"`
	PurchasedCourses []string  `json:"purchasedCourses,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// HasPurchased reports whether courseID is already in the account's ledger.
func (a *Account) HasPurchased(courseID string) bool {
	for _, id := range a.PurchasedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}
