package order

import (
	"github.com/gin-gonic/gin"

	"lss/backend/internal/app/domains/apimodel/request"
	"lss/backend/internal/app/domains/apimodel/response"
	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/pkg/ginx"
)

// Take 取件接口（商户端凭取件码确认取件）
// POST /order/take
func (h *OrderHandler) Take(c *gin.Context) {
	var req request.TakeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	order, err := h.lifecycle.TakeByPickupCode(c.Request.Context(), req.PickupCode, req.Operator)
	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.NewStatusUpdateData(order, []etorder.Status{etorder.StatusPickedUp}, false))
}
