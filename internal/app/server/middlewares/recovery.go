package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lss/backend/internal/app/pkg/ginx"
	"lss/backend/internal/app/pkg/logger"
)

// Recovery panic 恢复中间件，统一按响应约定返回
func Recovery(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf(c.Request.Context(), "panic recovered: %v", r)
				c.Abort()
				ginx.Error(c, http.StatusInternalServerError, "internal server error")
			}
		}()

		c.Next()
	}
}
