package order

import (
	"github.com/gin-gonic/gin"

	"lss/backend/internal/app/domains/apimodel/request"
	"lss/backend/internal/app/domains/apimodel/response"
	"lss/backend/internal/app/pkg/ginx"
)

// Create 创建订单接口
// POST /order
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	order, err := h.orderService.CreateOrder(
		c.Request.Context(),
		req.UserID,
		req.ToItemEntities(),
		req.ToAmountsEntity(),
		req.ToAddressEntity(),
		req.Remark,
	)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
