package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/julianrc/panaderia-api/internal/application/auth"
	"github.com/julianrc/panaderia-api/internal/application/catalog"
	"github.com/julianrc/panaderia-api/internal/application/recipe"
	"github.com/julianrc/panaderia-api/internal/application/stock"
	"github.com/julianrc/panaderia-api/internal/domain/entity"
	"github.com/julianrc/panaderia-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	StockItemUC   *stock.StockItemUseCase
	MovementUC    *stock.MovementUseCase
	CatalogUC     *catalog.CatalogUseCase
	RecipeUC      *recipe.RecipeUseCase
	AuthUC        *auth.AuthUseCase
	StockItemRepo repository.StockItemRepository
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Stock items (protegido); borrado y restauración solo admin
	stockItems := protected.Group("/stock-items")
	stockItemHandler := NewStockItemHandler(deps.StockItemUC)
	stockItems.Post("/", stockItemHandler.Create)
	stockItems.Get("/", stockItemHandler.List)
	stockItems.Get("/:id", stockItemHandler.GetByID)
	stockItems.Put("/:id", stockItemHandler.Update)
	stockItems.Get("/:id/can-delete", stockItemHandler.CanDelete)
	stockItems.Delete("/:id", adminOnly, stockItemHandler.Delete)
	stockItems.Post("/:id/restore", adminOnly, stockItemHandler.Restore)

	// Marcas asociadas a un insumo
	brandHandler := NewBrandHandler(deps.CatalogUC)
	stockItems.Post("/:id/brands", brandHandler.AddToStockItem)
	stockItems.Get("/:id/brands", brandHandler.ListForStockItem)
	stockItems.Put("/:id/brands/:brandId/preferred", brandHandler.SetPreferred)
	stockItems.Delete("/:id/brands/:brandId", brandHandler.RemoveFromStockItem)

	// Brands (protegido)
	brands := protected.Group("/brands")
	brands.Post("/", brandHandler.Create)
	brands.Get("/", brandHandler.List)
	brands.Get("/:id", brandHandler.GetByID)
	brands.Put("/:id", brandHandler.Update)
	brands.Delete("/:id", adminOnly, brandHandler.Delete)
	brands.Post("/:id/restore", adminOnly, brandHandler.Restore)

	// Ledger de movimientos (protegido)
	stockGroup := protected.Group("/stock")
	movementHandler := NewMovementHandler(deps.MovementUC, deps.StockItemRepo)
	stockGroup.Post("/movements", movementHandler.Register)
	stockGroup.Get("/movements", movementHandler.List)
	stockGroup.Get("/movements/export", movementHandler.Export)
	stockGroup.Get("/movements/:id", movementHandler.GetByID)

	// Products y recetas (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.RecipeUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)
	products.Get("/:id/recipe", productHandler.GetRecipe)
	products.Get("/:id/cost", productHandler.GetCost)
	products.Post("/:id/recipe", productHandler.AddIngredient)
	products.Put("/:id/recipe/:stockItemId", productHandler.UpdateIngredient)
	products.Delete("/:id/recipe/:stockItemId", productHandler.RemoveIngredient)
}
