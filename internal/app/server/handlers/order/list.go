package order

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"lss/backend/internal/app/domains/apimodel/response"
	"lss/backend/internal/app/pkg/ginx"
)

// List 查询订单列表
// GET /order/list?userId=1&page=1&limit=20
func (h *OrderHandler) List(c *gin.Context) {
	userID, _ := strconv.ParseInt(c.Query("userId"), 10, 64)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	orders, total, err := h.orderService.ListOrders(c.Request.Context(), userID, page, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, &response.OrderListData{
		Total:  total,
		Page:   page,
		Limit:  limit,
		Orders: response.FromOrderEntities(orders),
	})
}
