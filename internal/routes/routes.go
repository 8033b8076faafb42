package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/motoluxe/internal/config"
	"github.com/example/motoluxe/internal/handlers"
	"github.com/example/motoluxe/internal/middleware"
	"github.com/example/motoluxe/internal/storage"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, files storage.FileStore) {
	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	attributeHandler := handlers.NewAttributeHandler(db)
	productHandler := handlers.NewProductHandler(db, files)
	adminHandler := handlers.NewAdminHandler(db)
	siteHandler := handlers.NewSiteHandler(cfg)

	app.Static("/media", cfg.MediaDir)

	api := app.Group("/api")

	// Public storefront routes
	api.Get("/site-info", siteHandler.Info)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/categories/:id", catalogHandler.GetCategory)
	api.Get("/colors", catalogHandler.ListColors)
	api.Get("/attributes", attributeHandler.ListDefinitions)
	api.Get("/attributes/applicable", attributeHandler.ResolveApplicable)
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/featured", productHandler.FeaturedProducts)
	api.Get("/products/search", productHandler.SearchProducts)
	api.Get("/products/:id", productHandler.GetProduct)

	// Auth
	api.Post("/auth/login", authHandler.Login)

	// Admin routes, staff only
	admin := api.Group("/admin",
		middleware.AuthMiddleware(cfg),
		middleware.StaffOnly(db),
	)

	admin.Get("/me", authHandler.Me)
	admin.Get("/dashboard", adminHandler.DashboardStats)

	admin.Post("/categories", catalogHandler.CreateCategory)
	admin.Put("/categories/:id", catalogHandler.UpdateCategory)
	admin.Delete("/categories/:id", catalogHandler.DeleteCategory)

	admin.Post("/colors", catalogHandler.CreateColor)
	admin.Put("/colors/:id", catalogHandler.UpdateColor)
	admin.Delete("/colors/:id", catalogHandler.DeleteColor)

	admin.Post("/attributes", attributeHandler.CreateDefinition)
	admin.Put("/attributes/:id", attributeHandler.UpdateDefinition)
	admin.Delete("/attributes/:id", attributeHandler.DeleteDefinition)

	admin.Get("/products", productHandler.AdminListProducts)
	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Post("/products/:id/toggle", productHandler.ToggleActive)
	admin.Delete("/products/:id", productHandler.DeleteProduct)

	admin.Put("/products/:id/attributes", productHandler.ReplaceValues)
	admin.Post("/products/:id/attributes", attributeHandler.AddProductValue)
	admin.Patch("/products/:id/attributes", attributeHandler.SetProductValue)

	admin.Post("/products/:id/image", productHandler.UploadPrimaryImage)
	admin.Post("/products/:id/gallery", productHandler.UploadGalleryImage)
	admin.Delete("/gallery/:imageId", productHandler.DeleteGalleryImage)
}
