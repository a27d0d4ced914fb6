package domain

import "time"

type Review struct {
	ID         string
	CustomerID string
	ShopID     *string
	ProductID  *string
	OrderID    string
	Rating     int
	Title      *string
	Comment    *string
	IsVerified bool
	IsApproved bool
	CreatedAt  time.Time
}

// IdempotencyKey records a caller-supplied order-creation token so a
// retried submission replays the original order instead of creating a
// duplicate.
type IdempotencyKey struct {
	Key        string
	CustomerID string
	OrderID    string
	CreatedAt  time.Time
}
