package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/komolbek/raadarenda-sub001/internal/i18n"
	"github.com/komolbek/raadarenda-sub001/internal/service"
)

// RouterConfig collects everything the router needs.
type RouterConfig struct {
	AuthSvc    service.AuthService
	CatalogSvc service.CatalogService
	OrderSvc   service.OrderService
	UserSvc    service.UserService
	AdminSvc   service.AdminService
	UploadSvc  service.UploadService

	// UploadDir enables serving local uploads under /uploads/ when the
	// local storage backend is active. Empty disables the route.
	UploadDir string

	// SecureCookies marks the admin session cookie Secure. On in production.
	SecureCookies bool
}

// NewRouter wires all routes with locale, logging and metrics middleware.
func NewRouter(cfg RouterConfig) *mux.Router {
	authHandler := NewAuthHandler(cfg.AuthSvc, cfg.SecureCookies)
	catalogHandler := NewCatalogHandler(cfg.CatalogSvc)
	orderHandler := NewOrderHandler(cfg.OrderSvc)
	userHandler := NewUserHandler(cfg.UserSvc)
	adminHandler := NewAdminHandler(cfg.AdminSvc)
	uploadHandler := NewUploadHandler(cfg.UploadSvc)
	authMw := NewAuthMiddleware(cfg.AuthSvc)

	router := mux.NewRouter()
	router.Use(LocaleMiddleware, LoggingMiddleware, MetricsMiddleware)
	router.NotFoundHandler = LocaleMiddleware(http.HandlerFunc(notFound))
	router.MethodNotAllowedHandler = LocaleMiddleware(http.HandlerFunc(methodNotAllowed))

	router.HandleFunc("/healthz", healthz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if cfg.UploadDir != "" {
		router.PathPrefix("/uploads/").Handler(
			http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))
	}

	api := router.PathPrefix("/api").Subrouter()

	// Public routes.
	api.HandleFunc("/auth/otp/send", authHandler.SendOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/otp/verify", authHandler.VerifyOTP).Methods(http.MethodPost)
	api.HandleFunc("/categories", catalogHandler.ListCategories).Methods(http.MethodGet)
	api.HandleFunc("/products", catalogHandler.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", catalogHandler.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}/availability", catalogHandler.GetAvailability).Methods(http.MethodGet)
	api.HandleFunc("/cart/price", catalogHandler.PriceCart).Methods(http.MethodPost)

	// Customer routes.
	customer := api.NewRoute().Subrouter()
	customer.Use(authMw.RequireCustomer)
	customer.HandleFunc("/auth/logout", authHandler.Logout).Methods(http.MethodPost)
	customer.HandleFunc("/profile", userHandler.GetProfile).Methods(http.MethodGet)
	customer.HandleFunc("/profile", userHandler.UpdateProfile).Methods(http.MethodPut)
	customer.HandleFunc("/addresses", userHandler.ListAddresses).Methods(http.MethodGet)
	customer.HandleFunc("/addresses", userHandler.CreateAddress).Methods(http.MethodPost)
	customer.HandleFunc("/addresses/{id:[0-9]+}", userHandler.UpdateAddress).Methods(http.MethodPut)
	customer.HandleFunc("/addresses/{id:[0-9]+}", userHandler.DeleteAddress).Methods(http.MethodDelete)
	customer.HandleFunc("/cards", userHandler.ListCards).Methods(http.MethodGet)
	customer.HandleFunc("/cards", userHandler.CreateCard).Methods(http.MethodPost)
	customer.HandleFunc("/cards/{id:[0-9]+}/default", userHandler.SetDefaultCard).Methods(http.MethodPost)
	customer.HandleFunc("/cards/{id:[0-9]+}", userHandler.DeleteCard).Methods(http.MethodDelete)
	customer.HandleFunc("/favorites", userHandler.ListFavorites).Methods(http.MethodGet)
	customer.HandleFunc("/favorites/{id:[0-9]+}", userHandler.AddFavorite).Methods(http.MethodPost)
	customer.HandleFunc("/favorites/{id:[0-9]+}", userHandler.RemoveFavorite).Methods(http.MethodDelete)
	customer.HandleFunc("/orders", orderHandler.Checkout).Methods(http.MethodPost)
	customer.HandleFunc("/orders", orderHandler.ListOrders).Methods(http.MethodGet)
	customer.HandleFunc("/orders/{id:[0-9]+}", orderHandler.GetOrder).Methods(http.MethodGet)
	customer.HandleFunc("/orders/{id:[0-9]+}/cancel", orderHandler.CancelOrder).Methods(http.MethodPost)

	// Admin routes.
	api.HandleFunc("/admin/login", authHandler.AdminLogin).Methods(http.MethodPost)
	api.HandleFunc("/admin/logout", authHandler.AdminLogout).Methods(http.MethodPost)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(authMw.RequireAdmin)
	admin.HandleFunc("/dashboard", adminHandler.Dashboard).Methods(http.MethodGet)
	admin.HandleFunc("/orders", adminHandler.ListOrders).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id:[0-9]+}", adminHandler.GetOrder).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{id:[0-9]+}/status", adminHandler.UpdateOrderStatus).Methods(http.MethodPut)
	admin.HandleFunc("/categories", adminHandler.ListCategories).Methods(http.MethodGet)
	admin.HandleFunc("/categories", adminHandler.CreateCategory).Methods(http.MethodPost)
	admin.HandleFunc("/categories/{id:[0-9]+}", adminHandler.UpdateCategory).Methods(http.MethodPut)
	admin.HandleFunc("/categories/{id:[0-9]+}", adminHandler.DeleteCategory).Methods(http.MethodDelete)
	admin.HandleFunc("/products", adminHandler.CreateProduct).Methods(http.MethodPost)
	admin.HandleFunc("/products/{id:[0-9]+}", adminHandler.UpdateProduct).Methods(http.MethodPut)
	admin.HandleFunc("/products/{id:[0-9]+}", adminHandler.DeleteProduct).Methods(http.MethodDelete)
	admin.HandleFunc("/customers", adminHandler.ListCustomers).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{id:[0-9]+}", adminHandler.GetCustomer).Methods(http.MethodGet)
	admin.HandleFunc("/settings", adminHandler.GetSettings).Methods(http.MethodGet)
	admin.HandleFunc("/settings", adminHandler.UpdateSetting).Methods(http.MethodPut)
	admin.HandleFunc("/upload", uploadHandler.Upload).Methods(http.MethodPost)

	return router
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func notFound(w http.ResponseWriter, r *http.Request) {
	respondErrorKey(w, r, http.StatusNotFound, i18n.MsgNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondErrorKey(w, r, http.StatusMethodNotAllowed, i18n.MsgMethodNotAllowed)
}
