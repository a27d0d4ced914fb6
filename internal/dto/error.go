package dto

import "time"

// ErrorResponse is the uniform error body every service writes. Details
// holds kind-specific context (validation fields, stock numbers) when
// the error carries any.
type ErrorResponse struct {
	TraceID   string      `json:"traceId"`
	Status    int         `json:"status"`
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

type StockErrorDetails struct {
	ProductName string `json:"productName"`
	Requested   int    `json:"requested"`
	Available   int    `json:"available"`
}

type ItemErrorDetails struct {
	ProductID string `json:"productId"`
	VariantID string `json:"variantId,omitempty"`
}

type QuantityErrorDetails struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}
