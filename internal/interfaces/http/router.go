package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/lagerverwaltung-api/internal/application/auth"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/inventory"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/report"
	"github.com/jhoicas/lagerverwaltung-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	SupplierUC *usecase.SupplierUseCase
	ArticleUC  *usecase.ArticleUseCase
	CustomerUC *usecase.CustomerUseCase
	ProjectUC  *usecase.ProjectUseCase
	Ledger     *inventory.LedgerUseCase
	Reports    *report.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth (público salvo logout/me/users)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Get("/users", requireAuth, authHandler.Users)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", requireAuth)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	articles := protected.Group("/articles")
	articleHandler := NewArticleHandler(deps.ArticleUC)
	articles.Get("/", articleHandler.List)
	articles.Post("/", articleHandler.Create)
	articles.Get("/:code", articleHandler.GetByCode)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)

	projects := protected.Group("/projects")
	projectHandler := NewProjectHandler(deps.ProjectUC, deps.Reports)
	projects.Get("/", projectHandler.List)
	projects.Post("/", projectHandler.Create)
	projects.Get("/:id", projectHandler.Overview)

	// Stock (lotes FIFO)
	stock := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.Ledger, deps.Reports)
	stock.Post("/receipts", stockHandler.Receive)
	stock.Get("/", stockHandler.Summary)
	stock.Get("/:code", stockHandler.Lots)

	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.Ledger)
	sales.Post("/", saleHandler.Sell)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/projects", reportHandler.Projects)
	reports.Get("/projects/:id/pdf", reportHandler.ProjectPDF)
	reports.Get("/profit", reportHandler.Profit)
	reports.Get("/turnover", reportHandler.Turnover)
	reports.Get("/below-minimum", reportHandler.BelowMinimum)
}
