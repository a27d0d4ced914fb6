package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleMerchant Role = "merchant"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleMerchant, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           string
	Email        string
	Name         string
	Role         Role
	ProfileImage *string
	Phone        *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is an opaque bearer token handed out after sign-in. The token
// string itself is the primary key.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
