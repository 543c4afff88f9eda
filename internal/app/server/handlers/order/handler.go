package order

import (
	"errors"

	"github.com/gin-gonic/gin"

	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/domains/services/svlifecycle"
	"lss/backend/internal/app/domains/services/svorder"
	"lss/backend/internal/app/pkg/errorx"
	"lss/backend/internal/app/pkg/ginx"
	"lss/backend/internal/app/pkg/logger"
)

// OrderHandler 订单 HTTP 处理器
type OrderHandler struct {
	orderService *svorder.OrderService
	lifecycle    *svlifecycle.Service
	logger       logger.Logger
}

// NewOrderHandler 创建订单处理器实例
func NewOrderHandler(orderService *svorder.OrderService, lifecycle *svlifecycle.Service, log logger.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		lifecycle:    lifecycle,
		logger:       log,
	}
}

// respondError 领域错误到响应的统一映射
// 状态机类错误返回 code -1 且消息必须带上具体状态名，便于运营排查
func (h *OrderHandler) respondError(c *gin.Context, err error) {
	var invalidTransition *etorder.InvalidTransitionError
	var terminalFrozen *etorder.TerminalStateFrozenError
	var unreachableGoal *etorder.UnreachableGoalError

	switch {
	case errors.Is(err, errorx.ErrOrderNotFound):
		ginx.NotFound(c, "order not found")
	case errors.Is(err, etorder.ErrPickupCodeMismatch):
		ginx.Fail(c, "pickup code mismatch")
	case errors.As(err, &invalidTransition),
		errors.As(err, &terminalFrozen),
		errors.As(err, &unreachableGoal),
		errors.Is(err, errorx.ErrStatusConflict),
		errors.Is(err, errorx.ErrOrderLocked),
		errors.Is(err, etorder.ErrUnknownStatus):
		ginx.Fail(c, err.Error())
	default:
		h.logger.Errorf(c.Request.Context(), "order handler internal error: %v", err)
		ginx.InternalError(c, err.Error())
	}
}
