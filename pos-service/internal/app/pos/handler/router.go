package handler

import (
	"net/http"
	"slices"
	"time"

	"webpos/pkg/logger"
	"webpos/pkg/metrics"
	"webpos/pos-service/internal/app/pos/entity"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "pos-service"

type Handlers struct {
	Sales    *SaleHandler
	Backups  *BackupHandler
	Catalog  *CatalogHandler
	Staff    *StaffHandler
	Settings *SettingsHandler
	Reports  *ReportHandler
}

type RouterOptions struct {
	AllowOrigins []string
	// RateLimit is applied to authenticated routes. Nil disables it.
	RateLimit gin.HandlerFunc
}

// SetupRoutes builds the gin engine with every POS endpoint.
func SetupRoutes(h Handlers, auth *AuthMiddleware, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLoggerMiddleware())
	router.Use(metrics.GinPrometheusMiddleware(serviceName))
	router.Use(corsMiddleware(opts.AllowOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": serviceName,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.POST("/auth/login", h.Staff.Login)

	protected := api.Group("")
	protected.Use(auth.Authenticate())
	if opts.RateLimit != nil {
		protected.Use(opts.RateLimit)
	}

	admin := auth.RequireRole(entity.StaffRoleAdmin)
	managers := auth.RequireRole(entity.StaffRoleAdmin, entity.StaffRoleManager)

	categories := protected.Group("/categories")
	{
		categories.GET("", h.Catalog.ListCategories)
		categories.GET("/:id", h.Catalog.GetCategory)
		categories.POST("", managers, h.Catalog.CreateCategory)
		categories.PUT("/:id", managers, h.Catalog.UpdateCategory)
		categories.DELETE("/:id", managers, h.Catalog.DeleteCategory)
	}

	products := protected.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/:id", h.Catalog.GetProduct)
		products.POST("", managers, h.Catalog.CreateProduct)
		products.PUT("/:id", managers, h.Catalog.UpdateProduct)
		products.DELETE("/:id", managers, h.Catalog.DeleteProduct)
		products.PATCH("/:id/stock", managers, h.Catalog.UpdateStock)
	}

	staff := protected.Group("/staff", admin)
	{
		staff.GET("", h.Staff.ListStaff)
		staff.POST("", h.Staff.CreateStaff)
		staff.PUT("/credentials", h.Staff.SetCredentials)
		staff.GET("/:id", h.Staff.GetStaff)
		staff.PUT("/:id", h.Staff.UpdateStaff)
	}

	printers := protected.Group("/printers")
	{
		printers.GET("", h.Settings.ListPrinters)
		printers.POST("", admin, h.Settings.CreatePrinter)
	}

	taxes := protected.Group("/taxes")
	{
		taxes.GET("", h.Settings.ListTaxes)
		taxes.POST("", managers, h.Settings.CreateTax)
	}

	discounts := protected.Group("/discounts")
	{
		discounts.GET("", h.Settings.ListDiscounts)
		discounts.POST("", managers, h.Settings.CreateDiscount)
	}

	sales := protected.Group("/sales")
	{
		sales.POST("", h.Sales.CreateSale)
		sales.GET("", h.Sales.ListSales)
		sales.GET("/:id", h.Sales.GetSale)
	}

	reports := protected.Group("/reports", managers)
	{
		reports.GET("/sales", h.Reports.SalesReport)
		reports.GET("/sales/export", h.Reports.ExportSalesReport)
	}

	backup := protected.Group("/backup", admin)
	{
		backup.GET("", h.Backups.CreateBackup)
		backup.POST("/restore", h.Backups.RestoreBackup)
	}

	return router
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", logger.RequestIDHeader},
		ExposeHeaders: []string{"Content-Disposition", logger.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}
