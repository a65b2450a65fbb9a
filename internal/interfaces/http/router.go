package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pos-api/internal/application/activity"
	"github.com/jhoicas/pos-api/internal/application/auth"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/capability"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC           *auth.UseCase
	ProductUC        *catalog.ProductUseCase
	CategoryUC       *catalog.CategoryUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	LedgerUC         *inventory.LedgerUseCase
	CommitSale       *sales.CommitSaleUseCase
	SaleQueries      *sales.QueryUseCase
	ReceiptPDF       *sales.ReceiptPDFUseCase
	FeedUC           *activity.FeedUseCase
	SummaryUC        *activity.SummaryUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users (solo admin)
	users := protected.Group("/users", RequireCapability(capability.ActionManageUsers))
	users.Post("/", authHandler.Register)
	users.Get("/", authHandler.List)
	users.Patch("/:id/toggle-active", authHandler.ToggleActive)

	// Products (lectura para cualquier rol; escritura requiere catalog.write)
	productHandler := NewProductHandler(deps.ProductUC)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireCapability(capability.ActionWriteCatalog), productHandler.Create)
	products.Put("/:id", RequireCapability(capability.ActionWriteCatalog), productHandler.Update)

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := protected.Group("/categories")
	categories.Get("/", categoryHandler.List)
	categories.Post("/", RequireCapability(capability.ActionWriteCatalog), categoryHandler.Create)
	categories.Put("/:id", RequireCapability(capability.ActionWriteCatalog), categoryHandler.Update)
	categories.Delete("/:id", RequireCapability(capability.ActionWriteCatalog), categoryHandler.Delete)

	// Inventory movements + libro de stock
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.LedgerUC)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/stock/:id", inventoryHandler.GetStock)
	invGroup.Post("/movements", RequireCapability(capability.ActionMoveStock), inventoryHandler.RegisterMovement)

	// Sales (checkout + historial + recibo PDF)
	saleHandler := NewSaleHandler(deps.CommitSale, deps.SaleQueries, deps.ReceiptPDF)
	salesGroup := protected.Group("/sales")
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.GetPDF)
	salesGroup.Post("/", RequireCapability(capability.ActionCommitSale), saleHandler.Commit)

	// Actividad y dashboard
	activityHandler := NewActivityHandler(deps.FeedUC, deps.SummaryUC)
	protected.Get("/activity", activityHandler.Feed)
	protected.Get("/dashboard/summary", activityHandler.Summary)
}
