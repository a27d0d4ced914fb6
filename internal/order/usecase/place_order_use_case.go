package usecase

import (
	"context"
	stderrors "errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
)

type ShopFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Shop, error)
}

type ProductCatalog interface {
	FindByID(ctx context.Context, id string) (*domain.Product, error)
}

type OrderCommitter interface {
	Commit(ctx context.Context, order *domain.Order) error
}

type OrderFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
}

type IdempotencyRepository interface {
	Find(ctx context.Context, key, customerID string) (*domain.IdempotencyKey, error)
	Save(ctx context.Context, record *domain.IdempotencyKey) error
}

// PlaceOrderUseCase builds an order from a submitted cart: it validates
// the shop and every line, prices the cart with decimal arithmetic, and
// hands the PENDING aggregate to the checkout service for the atomic
// stock-and-persist commit.
type PlaceOrderUseCase struct {
	shops            ShopFinder
	catalog          ProductCatalog
	checkout         OrderCommitter
	orders           OrderFinder
	idempotency      IdempotencyRepository
	logger           *zap.Logger
	maxRetryAttempts int
}

func NewPlaceOrderUseCase(
	shops ShopFinder,
	catalog ProductCatalog,
	checkout OrderCommitter,
	orders OrderFinder,
	idempotency IdempotencyRepository,
	logger *zap.Logger,
	maxRetryAttempts int,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		shops:            shops,
		catalog:          catalog,
		checkout:         checkout,
		orders:           orders,
		idempotency:      idempotency,
		logger:           logger,
		maxRetryAttempts: maxRetryAttempts,
	}
}

func (uc *PlaceOrderUseCase) PlaceOrder(ctx context.Context, customerID string, req dto.CreateOrderRequest, idemKey string) (*domain.Order, error) {
	uc.logger.Info("order build started",
		zap.String("customerId", customerID),
		zap.String("shopId", req.ShopID),
		zap.Int("lineCount", len(req.Items)))

	mode := domain.DeliveryMode(req.DeliveryMode)
	if !mode.Valid() {
		return nil, apperrors.NewValidationError("invalid delivery mode", apperrors.ValidationDetail{
			Field:   "deliveryMode",
			Message: fmt.Sprintf("unknown delivery mode %q", req.DeliveryMode),
		})
	}
	if mode == domain.DeliveryModeDelivery && (req.DeliveryAddress == nil || *req.DeliveryAddress == "") {
		return nil, apperrors.NewValidationError("delivery address is required", apperrors.ValidationDetail{
			Field:   "deliveryAddress",
			Message: "deliveryAddress is required for delivery orders",
		})
	}

	// A replayed idempotency key returns the order it originally created.
	if idemKey != "" {
		if record, err := uc.idempotency.Find(ctx, idemKey, customerID); err == nil {
			uc.logger.Info("idempotent replay",
				zap.String("customerId", customerID),
				zap.String("orderId", record.OrderID))
			return uc.orders.FindByID(ctx, record.OrderID)
		} else if _, ok := apperrors.IsNotFoundError(err); !ok {
			return nil, err
		}
	}

	// Precondition 1: the shop must exist and be taking orders.
	shop, err := uc.shops.FindByID(ctx, req.ShopID)
	if err != nil {
		if _, ok := apperrors.IsNotFoundError(err); ok {
			return nil, apperrors.NewShopUnavailableError(req.ShopID)
		}
		return nil, err
	}
	if !shop.Orderable() {
		return nil, apperrors.NewShopUnavailableError(shop.ID)
	}

	// Precondition 2: an empty cart has no natural total.
	if len(req.Items) == 0 {
		return nil, apperrors.NewEmptyCartError()
	}

	// Precondition 3: every line must resolve to a live product variant.
	type resolvedLine struct {
		cart    dto.CartLine
		product *domain.Product
		variant domain.Variant
	}
	resolved := make([]resolvedLine, 0, len(req.Items))
	for _, item := range req.Items {
		product, err := uc.catalog.FindByID(ctx, item.ProductID)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				return nil, apperrors.NewItemNotFoundError(item.ProductID, "")
			}
			return nil, err
		}
		if product.ShopID != shop.ID || !product.IsActive {
			return nil, apperrors.NewItemNotFoundError(item.ProductID, "")
		}
		variant, ok := product.FindVariant(item.VariantID)
		if !ok || !variant.IsActive {
			return nil, apperrors.NewItemNotFoundError(item.ProductID, item.VariantID)
		}
		resolved = append(resolved, resolvedLine{cart: item, product: product, variant: variant})
	}

	// Precondition 4: advisory stock check. The commit phase re-checks
	// atomically; this pass exists to reject hopeless carts early.
	for _, line := range resolved {
		if line.cart.Quantity > line.variant.StockQuantity {
			return nil, apperrors.NewInsufficientStockError(
				line.product.Name, line.cart.Quantity, line.variant.StockQuantity)
		}
	}

	// Precondition 5: quantities must be positive.
	for _, line := range resolved {
		if line.cart.Quantity <= 0 {
			return nil, apperrors.NewInvalidQuantityError(line.cart.ProductID, line.cart.Quantity)
		}
	}

	// Price in cart submission order; every money field is a decimal.
	subtotal := decimal.Zero
	lines := make([]domain.OrderLine, 0, len(resolved))
	for _, line := range resolved {
		lineTotal := line.variant.SellingPrice.Mul(decimal.NewFromInt(int64(line.cart.Quantity)))
		subtotal = subtotal.Add(lineTotal)
		lines = append(lines, domain.OrderLine{
			ID:          uuid.New().String(),
			ProductID:   line.product.ID,
			VariantID:   line.variant.ID,
			ProductName: line.product.Name,
			VariantName: line.variant.Name,
			Quantity:    line.cart.Quantity,
			UnitPrice:   line.variant.SellingPrice,
			TotalPrice:  lineTotal,
		})
	}

	deliveryFee := decimal.Zero
	if mode == domain.DeliveryModeDelivery {
		deliveryFee = shop.DeliveryFee
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:              newOrderID(),
		CustomerID:      customerID,
		ShopID:          shop.ID,
		Lines:           lines,
		Subtotal:        subtotal,
		DeliveryFee:     deliveryFee,
		TotalAmount:     subtotal.Add(deliveryFee),
		Status:          domain.OrderStatusPending,
		DeliveryMode:    mode,
		DeliveryAddress: req.DeliveryAddress,
		CustomerNote:    req.CustomerNote,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := uc.commitWithRetry(ctx, order); err != nil {
		return nil, err
	}

	if idemKey != "" {
		record := &domain.IdempotencyKey{
			Key:        idemKey,
			CustomerID: customerID,
			OrderID:    order.ID,
			CreatedAt:  now,
		}
		if err := uc.idempotency.Save(ctx, record); err != nil {
			uc.logger.Error("failed to record idempotency key",
				zap.String("orderId", order.ID), zap.Error(err))
		}
	}

	uc.logger.Info("order placed",
		zap.String("orderId", order.ID),
		zap.String("customerId", customerID),
		zap.String("totalAmount", order.TotalAmount.String()))
	return order, nil
}

func (uc *PlaceOrderUseCase) commitWithRetry(ctx context.Context, order *domain.Order) error {
	backoffs := []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond}

	for attempt := 1; attempt <= uc.maxRetryAttempts; attempt++ {
		err := uc.checkout.Commit(ctx, order)
		if err == nil {
			return nil
		}
		if !isDeadlockError(err) {
			return err
		}
		if attempt == uc.maxRetryAttempts {
			break
		}

		backoff := backoffs[len(backoffs)-1]
		if attempt-1 < len(backoffs) {
			backoff = backoffs[attempt-1]
		}
		// Jitter: ±20% around the base interval.
		jittered := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
		uc.logger.Warn("deadlock during commit, retrying",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", uc.maxRetryAttempts),
			zap.String("orderId", order.ID))
		time.Sleep(jittered)
	}

	return apperrors.NewDeadlockError("max retries exceeded")
}

// newOrderID builds a human-readable but globally unique identifier:
// "ORD" plus eight uppercase hex characters of a fresh uuid.
func newOrderID() string {
	u := uuid.New()
	return fmt.Sprintf("ORD%X", u[:4])
}

func isDeadlockError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		// 1213: deadlock found, 1205: lock wait timeout.
		return mysqlErr.Number == 1213 || mysqlErr.Number == 1205
	}
	_, ok := apperrors.IsDeadlockError(err)
	return ok
}
