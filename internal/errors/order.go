package errors

import "fmt"

// Order-building failure kinds. Each carries enough context for the HTTP
// layer to surface an actionable message naming the offending cart line.

type ShopUnavailableError struct {
	ShopID string
}

func (e *ShopUnavailableError) Error() string {
	return fmt.Sprintf("shop %s is not accepting orders", e.ShopID)
}

func NewShopUnavailableError(shopID string) *ShopUnavailableError {
	return &ShopUnavailableError{ShopID: shopID}
}

func IsShopUnavailableError(err error) (*ShopUnavailableError, bool) {
	if se, ok := err.(*ShopUnavailableError); ok {
		return se, true
	}
	return nil, false
}

type EmptyCartError struct{}

func (e *EmptyCartError) Error() string {
	return "order must contain at least one item"
}

func NewEmptyCartError() *EmptyCartError {
	return &EmptyCartError{}
}

func IsEmptyCartError(err error) (*EmptyCartError, bool) {
	if ee, ok := err.(*EmptyCartError); ok {
		return ee, true
	}
	return nil, false
}

type ItemNotFoundError struct {
	ProductID string
	VariantID string
}

func (e *ItemNotFoundError) Error() string {
	if e.VariantID != "" {
		return fmt.Sprintf("variant %s of product %s not found", e.VariantID, e.ProductID)
	}
	return fmt.Sprintf("product %s not found", e.ProductID)
}

func NewItemNotFoundError(productID, variantID string) *ItemNotFoundError {
	return &ItemNotFoundError{ProductID: productID, VariantID: variantID}
}

func IsItemNotFoundError(err error) (*ItemNotFoundError, bool) {
	if ie, ok := err.(*ItemNotFoundError); ok {
		return ie, true
	}
	return nil, false
}

type InvalidQuantityError struct {
	ProductID string
	Quantity  int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("invalid quantity %d for product %s", e.Quantity, e.ProductID)
}

func NewInvalidQuantityError(productID string, quantity int) *InvalidQuantityError {
	return &InvalidQuantityError{ProductID: productID, Quantity: quantity}
}

func IsInvalidQuantityError(err error) (*InvalidQuantityError, bool) {
	if qe, ok := err.(*InvalidQuantityError); ok {
		return qe, true
	}
	return nil, false
}

type InsufficientStockError struct {
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

func NewInsufficientStockError(productName string, requested, available int) *InsufficientStockError {
	return &InsufficientStockError{
		ProductName: productName,
		Requested:   requested,
		Available:   available,
	}
}

func IsInsufficientStockError(err error) (*InsufficientStockError, bool) {
	if se, ok := err.(*InsufficientStockError); ok {
		return se, true
	}
	return nil, false
}

type PersistenceError struct {
	Message string
	Cause   error
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}

func NewPersistenceError(message string, cause error) *PersistenceError {
	return &PersistenceError{Message: message, Cause: cause}
}

func IsPersistenceError(err error) (*PersistenceError, bool) {
	if pe, ok := err.(*PersistenceError); ok {
		return pe, true
	}
	return nil, false
}
