package routers

import (
	"github.com/gin-gonic/gin"

	"lss/backend/internal/app/pkg/logger"
	"lss/backend/internal/app/server/handlers/order"
	"lss/backend/internal/app/server/middlewares"
)

// SetupRoutes 配置所有路由
// /order 下的路径形状是与移动端的既有约定，不要调整
func SetupRoutes(orderHandler *order.OrderHandler, log logger.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middlewares.Recovery(log))
	r.Use(middlewares.CORS())
	r.Use(middlewares.Logger(log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": "lss-backend",
		})
	})

	orders := r.Group("/order")
	{
		orders.POST("", orderHandler.Create)
		orders.GET("/list", orderHandler.List)
		orders.GET("/:id", orderHandler.Get)
		orders.PUT("/:id/status", orderHandler.UpdateStatus)
		orders.POST("/take", orderHandler.Take)
	}

	return r
}
