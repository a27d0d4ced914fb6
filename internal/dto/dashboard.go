package dto

import "github.com/shopspring/decimal"

type MerchantDashboardResponse struct {
	Shops        []ShopResponse     `json:"shops"`
	RecentOrders []OrderResponse    `json:"recentOrders"`
	Statistics   MerchantStatistics `json:"statistics"`
}

type MerchantStatistics struct {
	TotalShops    int             `json:"totalShops"`
	TotalOrders   int             `json:"totalOrders"`
	PendingOrders int             `json:"pendingOrders"`
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
}

type AdminDashboardResponse struct {
	Statistics AdminStatistics `json:"statistics"`
}

type AdminStatistics struct {
	TotalUsers           int             `json:"totalUsers"`
	TotalShops           int             `json:"totalShops"`
	TotalOrders          int             `json:"totalOrders"`
	TotalReviews         int             `json:"totalReviews"`
	PendingShopApprovals int             `json:"pendingShopApprovals"`
	PendingOrders        int             `json:"pendingOrders"`
	PendingReviews       int             `json:"pendingReviews"`
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
}
