package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/planta-pos/internal/application/auth"
	"github.com/tu-usuario/planta-pos/internal/application/inventory"
	"github.com/tu-usuario/planta-pos/internal/application/pricing"
	"github.com/tu-usuario/planta-pos/internal/application/production"
	"github.com/tu-usuario/planta-pos/internal/application/sales"
	"github.com/tu-usuario/planta-pos/internal/application/supply"
	"github.com/tu-usuario/planta-pos/internal/application/sync"
	"github.com/tu-usuario/planta-pos/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	SalesUC      *sales.Orchestrator
	SyncUC       *sync.Processor
	StockEngine  *inventory.StockEngine
	SupplyEngine *supply.DeductionEngine
	Pricing      *pricing.Resolver
	ProductionUC *production.Recorder
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ventas
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SalesUC)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Post("/:id/cancel", saleHandler.Cancel)
	salesGroup.Post("/:id/pay", saleHandler.MarkPaid)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Sincronización offline
	syncGroup := protected.Group("/sync")
	syncHandler := NewSyncHandler(deps.SyncUC)
	syncGroup.Post("/push", syncHandler.Push)
	syncGroup.Get("/conflicts", syncHandler.ListConflicts,
		RequireRole(entity.RoleGerente, entity.RoleAdmin))
	syncGroup.Post("/conflicts/:id/resolve", syncHandler.ResolveConflict,
		RequireRole(entity.RoleGerente, entity.RoleAdmin))

	// Inventario de producto terminado
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.StockEngine)
	invGroup.Get("/stock", inventoryHandler.Stock)
	invGroup.Get("/products/:id/movements", inventoryHandler.Movements)
	invGroup.Post("/adjustments", inventoryHandler.Adjust)

	// Precios
	pricingHandler := NewPricingHandler(deps.Pricing)
	protected.Get("/prices", pricingHandler.Available)

	// Insumos
	suppliesGroup := protected.Group("/supplies")
	supplyHandler := NewSupplyHandler(deps.SupplyEngine)
	suppliesGroup.Get("/stock", supplyHandler.Stock)
	suppliesGroup.Get("/low-stock", supplyHandler.LowStock)
	suppliesGroup.Post("/intake", supplyHandler.Intake)
	suppliesGroup.Post("/adjustments", supplyHandler.Adjust)

	// Producción
	prodGroup := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	prodGroup.Post("/", productionHandler.Create)
	prodGroup.Get("/", productionHandler.List)
}
