package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"yoyo-backend/internal/handlers"
	"yoyo-backend/internal/middleware"
	"yoyo-backend/internal/models"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	totpHandler *handlers.TOTPHandler,
	userHandler *handlers.UserHandler,
	customerHandler *handlers.CustomerHandler,
	productHandler *handlers.ProductHandler,
	materialHandler *handlers.MaterialHandler,
	orderHandler *handlers.OrderHandler,
	expenseHandler *handlers.ExpenseHandler,
	reportHandler *handlers.ReportHandler,
	dashboardHandler *handlers.DashboardHandler,
	salesHandler *handlers.SalesHandler,
	settingsHandler *handlers.SettingsHandler,
	activityLogHandler *handlers.ActivityLogHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	adminOnly := authMiddleware.RequireRole(models.RoleAdmin)
	adminStaff := authMiddleware.RequireRole(models.RoleAdmin, models.RoleStaff)

	// Public API routes - Authentication
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/auth/totp", authHandler.VerifyLoginTOTP).Methods("POST")

	// Protected API routes - TOTP management (any authenticated user)
	totpAPI := r.PathPrefix("/api/auth/totp").Subrouter()
	totpAPI.Use(authMiddleware.Authenticate)
	totpAPI.HandleFunc("/setup", totpHandler.Setup).Methods("POST")
	totpAPI.HandleFunc("/enable", totpHandler.VerifyAndEnable).Methods("POST")
	totpAPI.HandleFunc("/disable", totpHandler.Disable).Methods("POST")

	// Protected API routes - Dashboard (all roles can view)
	dashboardAPI := r.PathPrefix("/api/dashboard").Subrouter()
	dashboardAPI.Use(authMiddleware.Authenticate)
	dashboardAPI.HandleFunc("", dashboardHandler.GetDashboard).Methods("GET")
	dashboardAPI.HandleFunc("/ws", dashboardHandler.Stream).Methods("GET")

	// Protected API routes - Customers
	customersAPI := r.PathPrefix("/api/customers").Subrouter()
	customersAPI.Use(adminStaff)
	customersAPI.HandleFunc("", customerHandler.ListCustomers).Methods("GET")
	customersAPI.HandleFunc("", customerHandler.CreateCustomer).Methods("POST")
	customersAPI.HandleFunc("/{id}", customerHandler.GetCustomer).Methods("GET")
	customersAPI.HandleFunc("/{id}", customerHandler.UpdateCustomer).Methods("PUT")
	customersAPI.HandleFunc("/{id}", customerHandler.DeleteCustomer).Methods("DELETE")

	// Protected API routes - Products
	productsAPI := r.PathPrefix("/api/products").Subrouter()
	productsAPI.Use(adminStaff)
	productsAPI.HandleFunc("", productHandler.ListProducts).Methods("GET")
	productsAPI.HandleFunc("", productHandler.CreateProduct).Methods("POST")
	productsAPI.HandleFunc("/{id}", productHandler.GetProduct).Methods("GET")
	productsAPI.HandleFunc("/{id}", productHandler.UpdateProduct).Methods("PUT")
	productsAPI.HandleFunc("/{id}", productHandler.DeleteProduct).Methods("DELETE")

	// Protected API routes - Orders
	ordersAPI := r.PathPrefix("/api/orders").Subrouter()
	ordersAPI.Use(adminStaff)
	ordersAPI.HandleFunc("", orderHandler.ListOrders).Methods("GET")
	ordersAPI.HandleFunc("", orderHandler.CreateOrder).Methods("POST")
	ordersAPI.HandleFunc("/{id}", orderHandler.GetOrder).Methods("GET")
	ordersAPI.HandleFunc("/{id}", orderHandler.UpdateOrder).Methods("PUT")
	ordersAPI.HandleFunc("/{id}/status", orderHandler.ChangeStatus).Methods("PATCH")
	ordersAPI.HandleFunc("/{id}/cancel", orderHandler.CancelOrder).Methods("POST")
	ordersAPI.HandleFunc("/{id}", orderHandler.DeleteOrder).Methods("DELETE")
	ordersAPI.HandleFunc("/{id}/invoice", orderHandler.GetInvoice).Methods("GET")

	// Protected API routes - Sales and rewards
	salesAPI := r.PathPrefix("/api/sales").Subrouter()
	salesAPI.Use(adminStaff)
	salesAPI.HandleFunc("/overview", salesHandler.GetOverview).Methods("GET")

	rewardsAPI := r.PathPrefix("/api/rewards").Subrouter()
	rewardsAPI.Use(adminOnly)
	rewardsAPI.HandleFunc("/earned", salesHandler.ListEarnedRewards).Methods("GET")
	rewardsAPI.HandleFunc("", salesHandler.ListRewards).Methods("GET")
	rewardsAPI.HandleFunc("", salesHandler.CreateReward).Methods("POST")
	rewardsAPI.HandleFunc("/{id}", salesHandler.UpdateReward).Methods("PUT")
	rewardsAPI.HandleFunc("/{id}", salesHandler.DeleteReward).Methods("DELETE")

	// Protected API routes - Materials (admin only)
	materialsAPI := r.PathPrefix("/api/materials").Subrouter()
	materialsAPI.Use(adminOnly)
	materialsAPI.HandleFunc("", materialHandler.ListMaterials).Methods("GET")
	materialsAPI.HandleFunc("", materialHandler.CreateMaterial).Methods("POST")
	materialsAPI.HandleFunc("/{id}", materialHandler.GetMaterial).Methods("GET")
	materialsAPI.HandleFunc("/{id}", materialHandler.UpdateMaterial).Methods("PUT")
	materialsAPI.HandleFunc("/{id}", materialHandler.DeleteMaterial).Methods("DELETE")

	// Protected API routes - Expenses (admin only)
	expensesAPI := r.PathPrefix("/api/expenses").Subrouter()
	expensesAPI.Use(adminOnly)
	expensesAPI.HandleFunc("", expenseHandler.ListExpenses).Methods("GET")
	expensesAPI.HandleFunc("", expenseHandler.CreateExpense).Methods("POST")
	expensesAPI.HandleFunc("/categories", expenseHandler.ListCategories).Methods("GET")
	expensesAPI.HandleFunc("/{id}", expenseHandler.UpdateExpense).Methods("PUT")
	expensesAPI.HandleFunc("/{id}", expenseHandler.DeleteExpense).Methods("DELETE")

	// Protected API routes - Reports (admin only)
	reportsAPI := r.PathPrefix("/api/reports").Subrouter()
	reportsAPI.Use(adminOnly)
	reportsAPI.HandleFunc("", reportHandler.GetReport).Methods("GET")
	reportsAPI.HandleFunc("/csv", reportHandler.GetReportCSV).Methods("GET")
	reportsAPI.HandleFunc("/pdf", reportHandler.GetReportPDF).Methods("GET")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(adminOnly)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", userHandler.CreateUser).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.UpdateUser).Methods("PUT")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")

	// Protected API routes - Settings (admin only)
	settingsAPI := r.PathPrefix("/api/settings").Subrouter()
	settingsAPI.Use(adminOnly)
	settingsAPI.HandleFunc("", settingsHandler.GetSettings).Methods("GET")
	settingsAPI.HandleFunc("", settingsHandler.UpdateSettings).Methods("PUT")

	// Protected API routes - Activity log (admin only)
	activityAPI := r.PathPrefix("/api/activity-log").Subrouter()
	activityAPI.Use(adminOnly)
	activityAPI.HandleFunc("", activityLogHandler.ListActivity).Methods("GET")

	// Health endpoints (no auth required - for probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
