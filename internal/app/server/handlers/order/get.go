package order

import (
	"github.com/gin-gonic/gin"

	"lss/backend/internal/app/domains/apimodel/response"
	"lss/backend/internal/app/pkg/ginx"
)

// Get 查询订单详情
// GET /order/:id  （id 也接受订单号，以 LS 前缀区分）
func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		ginx.BadRequest(c, "order id is required")
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		// 兜底按订单号再查一次，移动端两种标识都在用
		byNo, errNo := h.orderService.GetOrderByOrderNo(c.Request.Context(), id)
		if errNo != nil {
			h.respondError(c, err)
			return
		}
		order = byNo
	}

	ginx.Success(c, response.FromOrderEntity(order))
}
