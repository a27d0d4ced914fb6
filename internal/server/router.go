package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"bazaar/internal/auth"
	catalogctrl "bazaar/internal/catalog/controller"
	dashboardctrl "bazaar/internal/dashboard/controller"
	"bazaar/internal/domain"
	orderctrl "bazaar/internal/order/controller"
	reviewctrl "bazaar/internal/review/controller"
	shopctrl "bazaar/internal/shop/controller"
	"bazaar/internal/user"
)

func newRouter() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Get("/health", handleHealth)
	return router
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// NewCustomerRouter exposes the storefront: public browsing plus
// customer-authenticated profile, order, and review operations.
func NewCustomerRouter(
	authCtrl *auth.Controller,
	authSvc *auth.Service,
	userCtrl *user.Controller,
	shops *shopctrl.Controller,
	catalog *catalogctrl.Controller,
	orders *orderctrl.Controller,
	reviews *reviewctrl.Controller,
	logger *zap.Logger,
) http.Handler {
	router := newRouter()

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/google", authCtrl.HandleGoogleSignIn)

		r.Get("/shops", shops.HandleBrowseShops)
		r.Get("/shops/{shopId}", shops.HandleGetShop)
		r.Get("/shops/{shopId}/products", catalog.HandleBrowseProducts)
		r.Get("/shops/{shopId}/products/{productId}", catalog.HandleGetProduct)
		r.Get("/shops/{shopId}/reviews", reviews.HandleListShopReviews)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(authSvc, domain.RoleCustomer, logger))

			r.Get("/profile", userCtrl.HandleGetProfile)
			r.Put("/profile", userCtrl.HandleUpdateProfile)

			r.Post("/orders", orders.HandleCreateOrder)
			r.Get("/orders", orders.HandleListOrders)
			r.Get("/orders/{orderId}", orders.HandleGetOrder)
			r.Post("/orders/{orderId}/cancel", orders.HandleCancelOrder)

			r.Post("/reviews", reviews.HandleCreateReview)
		})
	})

	return router
}

// NewMerchantRouter exposes shop management, catalog management, order
// fulfilment, and the merchant dashboard.
func NewMerchantRouter(
	authCtrl *auth.Controller,
	authSvc *auth.Service,
	userCtrl *user.Controller,
	shops *shopctrl.Controller,
	catalog *catalogctrl.Controller,
	orders *orderctrl.Controller,
	dashboard *dashboardctrl.Controller,
	logger *zap.Logger,
) http.Handler {
	router := newRouter()

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/google", authCtrl.HandleGoogleSignIn)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(authSvc, domain.RoleMerchant, logger))

			r.Get("/profile", userCtrl.HandleGetProfile)
			r.Put("/profile", userCtrl.HandleUpdateProfile)
			r.Get("/dashboard", dashboard.HandleMerchantDashboard)

			r.Get("/shops", shops.HandleListMerchantShops)
			r.Post("/shops", shops.HandleCreateShop)
			r.Get("/shops/{shopId}", shops.HandleGetMerchantShop)
			r.Put("/shops/{shopId}", shops.HandleUpdateShop)
			r.Put("/shops/{shopId}/availability", shops.HandleUpdateAvailability)

			r.Get("/shops/{shopId}/products", catalog.HandleListShopProducts)
			r.Post("/shops/{shopId}/products", catalog.HandleCreateProduct)
			r.Put("/shops/{shopId}/products/{productId}", catalog.HandleUpdateProduct)
			r.Post("/shops/{shopId}/products/{productId}/variants", catalog.HandleAddVariant)
			r.Put("/shops/{shopId}/products/{productId}/variants/{variantId}", catalog.HandleUpdateVariant)

			r.Get("/shops/{shopId}/orders", orders.HandleListShopOrders)
			r.Put("/shops/{shopId}/orders/{orderId}/status", orders.HandleUpdateShopOrderStatus)
		})
	})

	return router
}

// NewAdminRouter exposes platform oversight: user management, shop
// approvals, order supervision, and review moderation.
func NewAdminRouter(
	authCtrl *auth.Controller,
	authSvc *auth.Service,
	userCtrl *user.Controller,
	shops *shopctrl.Controller,
	orders *orderctrl.Controller,
	reviews *reviewctrl.Controller,
	dashboard *dashboardctrl.Controller,
	logger *zap.Logger,
) http.Handler {
	router := newRouter()

	router.Route("/api", func(r chi.Router) {
		r.Post("/auth/google", authCtrl.HandleGoogleSignIn)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(authSvc, domain.RoleAdmin, logger))

			r.Get("/profile", userCtrl.HandleGetProfile)
			r.Put("/profile", userCtrl.HandleUpdateProfile)
			r.Get("/dashboard", dashboard.HandleAdminDashboard)

			r.Get("/users", userCtrl.HandleListUsers)
			r.Get("/users/{userId}", userCtrl.HandleGetUser)
			r.Put("/users/{userId}/role", userCtrl.HandleUpdateUserRole)
			r.Put("/users/{userId}/status", userCtrl.HandleUpdateUserStatus)

			r.Get("/shops", shops.HandleListAllShops)
			r.Get("/shops/pending", shops.HandleListPendingShops)
			r.Put("/shops/{shopId}/approval", shops.HandleApproveShop)

			r.Get("/orders", orders.HandleListAllOrders)
			r.Get("/orders/{orderId}", orders.HandleGetAnyOrder)
			r.Put("/orders/{orderId}/status", orders.HandleUpdateOrderStatus)

			r.Get("/reviews", reviews.HandleListAllReviews)
			r.Get("/reviews/pending", reviews.HandleListPendingReviews)
			r.Get("/reviews/{reviewId}", reviews.HandleGetReview)
			r.Put("/reviews/{reviewId}/moderation", reviews.HandleModerateReview)
		})
	})

	return router
}
