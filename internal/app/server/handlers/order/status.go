package order

import (
	"github.com/gin-gonic/gin"

	"lss/backend/internal/app/domains/apimodel/request"
	"lss/backend/internal/app/domains/apimodel/response"
	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/domains/services/svlifecycle"
	"lss/backend/internal/app/pkg/ginx"
)

// UpdateStatus 状态变更接口（商户端）
// PUT /order/:id/status
// body.status 接受细粒度状态名或商户端粗粒度别名（如 processing）
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID := c.Param("id")
	if orderID == "" {
		ginx.BadRequest(c, "order id is required")
		return
	}

	var req request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ginx.BadRequestWithValidation(c, err)
		return
	}

	opts := svlifecycle.TransitionOptions{
		ForceFromPending: req.AllowPendingToProcessing,
		Remark:           req.Remark,
	}
	if req.CurrentStatus != "" {
		expected, ok := etorder.ParseStatus(req.CurrentStatus)
		if !ok {
			ginx.BadRequest(c, "unknown currentStatus: "+req.CurrentStatus)
			return
		}
		opts.ExpectedCurrent = expected
	}

	ctx := c.Request.Context()

	var result *svlifecycle.AdvanceResult
	var err error
	if target, ok := etorder.ParseStatus(req.Status); ok {
		result, err = h.lifecycle.MoveTo(ctx, orderID, target, req.Operator, opts)
	} else if category, ok := etorder.ParseCoarse(req.Status, etorder.VocabularyOperator); ok {
		result, err = h.lifecycle.AdvanceToCategory(ctx, orderID, category, etorder.VocabularyOperator, req.Operator, opts)
	} else {
		ginx.BadRequest(c, "unknown status: "+req.Status)
		return
	}

	if err != nil {
		h.respondError(c, err)
		return
	}

	ginx.Success(c, response.NewStatusUpdateData(result.Order, result.Applied, result.NoOp))
}
