package dto

import (
	"time"

	"bazaar/internal/domain"
)

type CreateReviewRequest struct {
	ShopID    *string `json:"shopId,omitempty"`
	ProductID *string `json:"productId,omitempty"`
	OrderID   string  `json:"orderId"`
	Rating    int     `json:"rating"`
	Title     *string `json:"title,omitempty"`
	Comment   *string `json:"comment,omitempty"`
}

type ModerateReviewRequest struct {
	IsApproved bool `json:"isApproved"`
}

type ReviewResponse struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customerId"`
	ShopID     *string   `json:"shopId,omitempty"`
	ProductID  *string   `json:"productId,omitempty"`
	OrderID    string    `json:"orderId"`
	Rating     int       `json:"rating"`
	Title      *string   `json:"title,omitempty"`
	Comment    *string   `json:"comment,omitempty"`
	IsVerified bool      `json:"isVerified"`
	IsApproved bool      `json:"isApproved"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ReviewsResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

func FromReview(r *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		ShopID:     r.ShopID,
		ProductID:  r.ProductID,
		OrderID:    r.OrderID,
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		IsVerified: r.IsVerified,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
	}
}

func FromReviews(reviews []domain.Review) ReviewsResponse {
	out := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		out[i] = FromReview(&reviews[i])
	}
	return ReviewsResponse{Reviews: out}
}
