package routes

import (
	"inventory-api/internal/api/handlers"
	"inventory-api/internal/api/middleware"
	"inventory-api/internal/config"
	"inventory-api/internal/models"
	"inventory-api/internal/services"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config) {
	// Initialize services
	authService := services.NewAuthService(cfg)
	auditService := services.NewAuditService(cfg)
	productService := services.NewProductService(cfg)
	categoryService := services.NewCategoryService(cfg)
	supplierService := services.NewSupplierService(cfg)
	userService := services.NewUserService(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(cfg)
	userHandler := handlers.NewUserHandler(cfg)
	productHandler := handlers.NewProductHandler(cfg)
	categoryHandler := handlers.NewCategoryHandler(cfg)
	supplierHandler := handlers.NewSupplierHandler(cfg)
	auditHandler := handlers.NewAuditHandler(cfg)

	// Before-snapshot loaders for the audit recorder
	captureProduct := middleware.CaptureOriginal(func(id uint) (interface{}, error) {
		return productService.GetProduct(id)
	})
	captureCategory := middleware.CaptureOriginal(func(id uint) (interface{}, error) {
		return categoryService.GetCategory(id)
	})
	captureSupplier := middleware.CaptureOriginal(func(id uint) (interface{}, error) {
		return supplierService.GetSupplier(id)
	})
	captureUser := middleware.CaptureOriginal(func(id uint) (interface{}, error) {
		return userService.GetUser(id)
	})

	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(auditService, action, resource)
	}

	// Middleware
	r.Use(middleware.CORSMiddleware(cfg.Server.FrontendOrigin))
	r.Use(middleware.ErrorHandler())

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"message": "Inventory API is running",
			})
		})

		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/verify-mfa", authHandler.VerifyMFA)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		// Auth routes (protected)
		protected.POST("/auth/logout", authHandler.Logout)
		protected.GET("/auth/me", authHandler.GetMe)
		protected.POST("/auth/setup-mfa", authHandler.SetupMFA)
		protected.POST("/auth/verify-setup-mfa", authHandler.VerifySetupMFA)
		protected.POST("/auth/register", middleware.RequireRole(models.RoleAdmin), authHandler.Register)

		// Product routes: reads for all roles, mutations for ADMIN and MANAGER
		products := protected.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("",
				middleware.RequireRole(models.RoleAdmin, models.RoleManager),
				audit(models.AuditActionCreate, models.AuditResourceProduct),
				productHandler.CreateProduct)
			products.PUT("/:id",
				middleware.RequireRole(models.RoleAdmin, models.RoleManager),
				captureProduct,
				audit(models.AuditActionUpdate, models.AuditResourceProduct),
				productHandler.UpdateProduct)
			products.DELETE("/:id",
				middleware.RequireRole(models.RoleAdmin, models.RoleManager),
				captureProduct,
				audit(models.AuditActionDelete, models.AuditResourceProduct),
				productHandler.DeleteProduct)
		}

		// Category routes
		categories := protected.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.POST("",
				middleware.RequireRole(models.RoleAdmin, models.RoleManager),
				audit(models.AuditActionCreate, models.AuditResourceCategory),
				categoryHandler.CreateCategory)
			categories.PUT("/:id",
				middleware.RequireRole(models.RoleAdmin, models.RoleManager),
				captureCategory,
				audit(models.AuditActionUpdate, models.AuditResourceCategory),
				categoryHandler.UpdateCategory)
			categories.DELETE("/:id",
				middleware.RequireRole(models.RoleAdmin, models.RoleManager),
				captureCategory,
				audit(models.AuditActionDelete, models.AuditResourceCategory),
				categoryHandler.DeleteCategory)
		}

		// Supplier routes
		suppliers := protected.Group("/suppliers")
		{
			suppliers.GET("", supplierHandler.GetSuppliers)
			suppliers.GET("/:id", supplierHandler.GetSupplier)
			suppliers.POST("",
				middleware.RequireRole(models.RoleAdmin, models.RoleManager),
				audit(models.AuditActionCreate, models.AuditResourceSupplier),
				supplierHandler.CreateSupplier)
			suppliers.PUT("/:id",
				middleware.RequireRole(models.RoleAdmin, models.RoleManager),
				captureSupplier,
				audit(models.AuditActionUpdate, models.AuditResourceSupplier),
				supplierHandler.UpdateSupplier)
			suppliers.DELETE("/:id",
				middleware.RequireRole(models.RoleAdmin, models.RoleManager),
				captureSupplier,
				audit(models.AuditActionDelete, models.AuditResourceSupplier),
				supplierHandler.DeleteSupplier)
		}

		// User management routes (ADMIN only). Create and password routes
		// are not audit-wrapped: their bodies carry plaintext passwords,
		// which must never land in an audit snapshot.
		users := protected.Group("/users")
		users.Use(middleware.RequireRole(models.RoleAdmin))
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id",
				captureUser,
				audit(models.AuditActionUpdate, models.AuditResourceUser),
				userHandler.UpdateUser)
			users.DELETE("/:id",
				captureUser,
				audit(models.AuditActionDelete, models.AuditResourceUser),
				userHandler.DeleteUser)
			users.POST("/:id/password", userHandler.UpdatePassword)
		}

		// Audit log routes (ADMIN only)
		auditLogs := protected.Group("/audit-logs")
		auditLogs.Use(middleware.RequireRole(models.RoleAdmin))
		{
			auditLogs.GET("", auditHandler.GetAuditLogs)
			auditLogs.GET("/:id", auditHandler.GetAuditLog)
		}
	}
}
