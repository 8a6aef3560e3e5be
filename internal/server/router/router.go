package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Diaealaoui/agrimanager-sub000/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(stats *handlers.StatsHandler, inventory *handlers.InventoryHandler, orders *handlers.OrderHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/dashboard", stats.Dashboard)
		api.GET("/search", stats.Search)

		api.GET("/products", inventory.ListProducts)
		api.POST("/products", inventory.CreateProduct)
		api.PUT("/products/:id", inventory.UpdateProduct)
		api.DELETE("/products/:id", inventory.DeleteProduct)

		api.GET("/purchases", inventory.ListPurchases)
		api.POST("/purchases", inventory.CreatePurchase)
		api.DELETE("/purchases/:id", inventory.DeletePurchase)
		api.POST("/purchases/import", inventory.ImportPurchases)

		api.GET("/treatments", inventory.ListTreatments)
		api.POST("/treatments", inventory.CreateTreatment)
		api.DELETE("/treatments/:id", inventory.DeleteTreatment)
		api.GET("/treatments/mixes", stats.MixBatches)

		api.GET("/parcels", inventory.ListParcels)
		api.POST("/parcels", inventory.CreateParcel)
		api.PUT("/parcels/:id", inventory.UpdateParcel)
		api.DELETE("/parcels/:id", inventory.DeleteParcel)

		api.GET("/suppliers", inventory.ListSuppliers)
		api.POST("/suppliers", inventory.CreateSupplier)
		api.DELETE("/suppliers/:id", inventory.DeleteSupplier)

		api.GET("/orders", orders.List)
		api.POST("/orders/generate", orders.Generate)
		api.POST("/orders/:id/send", orders.Send)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
