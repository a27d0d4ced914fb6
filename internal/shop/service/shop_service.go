package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"bazaar/internal/domain"
	"bazaar/internal/dto"
	apperrors "bazaar/internal/errors"
)

type Repository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	FindByID(ctx context.Context, id string) (*domain.Shop, error)
	FindByMerchant(ctx context.Context, merchantID string) ([]domain.Shop, error)
	FindByStatus(ctx context.Context, status domain.ShopStatus) ([]domain.Shop, error)
	FindApproved(ctx context.Context, category string) ([]domain.Shop, error)
	FindAll(ctx context.Context) ([]domain.Shop, error)
	Update(ctx context.Context, shop *domain.Shop) error
}

type ShopService struct {
	repo   Repository
	logger *zap.Logger
}

func NewShopService(repo Repository, logger *zap.Logger) *ShopService {
	return &ShopService{repo: repo, logger: logger}
}

// BrowseApproved lists shops visible to customers, with optional
// category and case-insensitive name filters.
func (s *ShopService) BrowseApproved(ctx context.Context, category, search string) ([]domain.Shop, error) {
	shops, err := s.repo.FindApproved(ctx, category)
	if err != nil {
		return nil, err
	}

	if search == "" {
		return shops, nil
	}

	needle := strings.ToLower(search)
	filtered := shops[:0]
	for _, shop := range shops {
		if strings.Contains(strings.ToLower(shop.Name), needle) {
			filtered = append(filtered, shop)
		}
	}
	return filtered, nil
}

// GetApproved returns a shop for customer viewing; non-approved shops
// are reported as not found rather than leaking their state.
func (s *ShopService) GetApproved(ctx context.Context, shopID string) (*domain.Shop, error) {
	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.Status != domain.ShopStatusApproved {
		return nil, apperrors.NewNotFoundError("shop " + shopID + " not found")
	}
	return shop, nil
}

func (s *ShopService) CreateShop(ctx context.Context, merchantID string, req dto.CreateShopRequest) (*domain.Shop, error) {
	now := time.Now().UTC()
	shop := &domain.Shop{
		ID:              uuid.NewString(),
		MerchantID:      merchantID,
		Name:            req.Name,
		Description:     req.Description,
		Category:        req.Category,
		Address:         req.Address,
		City:            req.City,
		Phone:           req.Phone,
		Email:           req.Email,
		Status:          domain.ShopStatusPendingApproval,
		IsOpen:          true,
		AcceptingOrders: true,
		MinimumOrder:    decimal.Zero,
		DeliveryFee:     decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if req.MinimumOrder != nil {
		shop.MinimumOrder = *req.MinimumOrder
	}
	if req.DeliveryFee != nil {
		shop.DeliveryFee = *req.DeliveryFee
	}

	if err := s.repo.Create(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.Info("shop created", zap.String("shopId", shop.ID), zap.String("merchantId", merchantID))
	return shop, nil
}

func (s *ShopService) ListByMerchant(ctx context.Context, merchantID string) ([]domain.Shop, error) {
	return s.repo.FindByMerchant(ctx, merchantID)
}

// GetOwned returns a shop after checking the caller owns it.
func (s *ShopService) GetOwned(ctx context.Context, merchantID, shopID string) (*domain.Shop, error) {
	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop.MerchantID != merchantID {
		return nil, apperrors.NewForbiddenError("shop does not belong to this merchant")
	}
	return shop, nil
}

func (s *ShopService) UpdateShop(ctx context.Context, merchantID, shopID string, req dto.UpdateShopRequest) (*domain.Shop, error) {
	shop, err := s.GetOwned(ctx, merchantID, shopID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		shop.Name = *req.Name
	}
	if req.Description != nil {
		shop.Description = req.Description
	}
	if req.Category != nil {
		shop.Category = *req.Category
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}
	if req.City != nil {
		shop.City = *req.City
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Email != nil {
		shop.Email = req.Email
	}
	if req.MinimumOrder != nil {
		shop.MinimumOrder = *req.MinimumOrder
	}
	if req.DeliveryFee != nil {
		shop.DeliveryFee = *req.DeliveryFee
	}

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

func (s *ShopService) UpdateAvailability(ctx context.Context, merchantID, shopID string, isOpen, acceptingOrders bool) (*domain.Shop, error) {
	shop, err := s.GetOwned(ctx, merchantID, shopID)
	if err != nil {
		return nil, err
	}

	shop.IsOpen = isOpen
	shop.AcceptingOrders = acceptingOrders

	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.Info("shop availability updated",
		zap.String("shopId", shopID), zap.Bool("isOpen", isOpen), zap.Bool("acceptingOrders", acceptingOrders))
	return shop, nil
}

// Admin operations.

func (s *ShopService) ListAll(ctx context.Context) ([]domain.Shop, error) {
	return s.repo.FindAll(ctx)
}

func (s *ShopService) ListPendingApproval(ctx context.Context) ([]domain.Shop, error) {
	return s.repo.FindByStatus(ctx, domain.ShopStatusPendingApproval)
}

func (s *ShopService) SetApprovalStatus(ctx context.Context, shopID string, status domain.ShopStatus) (*domain.Shop, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid shop status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of pending_approval, approved, rejected, suspended",
		})
	}

	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	shop.Status = status
	if err := s.repo.Update(ctx, shop); err != nil {
		return nil, err
	}

	s.logger.Info("shop approval updated", zap.String("shopId", shopID), zap.String("status", string(status)))
	return shop, nil
}
