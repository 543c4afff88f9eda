package svorder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/domains/modules/mdorder"
	"lss/backend/internal/app/pkg/idgen"
	"lss/backend/internal/app/pkg/logger"
)

// OrderService 订单服务，负责下单与查询编排
// 状态变更一律走 svlifecycle，这里不碰 status / status_history
type OrderService struct {
	orderModule *mdorder.OrderModule
	orderNoGen  *idgen.OrderNoGenerator
	logger      logger.Logger
}

// NewOrderService 创建订单服务实例
func NewOrderService(orderModule *mdorder.OrderModule, orderNoGen *idgen.OrderNoGenerator, log logger.Logger) *OrderService {
	return &OrderService{
		orderModule: orderModule,
		orderNoGen:  orderNoGen,
		logger:      log,
	}
}

// CreateOrder 创建订单（完整业务流程）
// 1. 校验商品
// 2. 生成订单号与取件码
// 3. 构建聚合（初始 pending + 首条状态历史）并落库
func (s *OrderService) CreateOrder(ctx context.Context, userID int64, items []etorder.Item, amounts *etorder.Amounts, address *etorder.Address, remark string) (*etorder.Order, error) {
	if len(items) == 0 {
		return nil, etorder.ErrEmptyItems
	}

	orderNo, err := s.orderNoGen.Next()
	if err != nil {
		return nil, fmt.Errorf("generate order no failed: %w", err)
	}

	pickupCode, err := idgen.NewPickupCode()
	if err != nil {
		return nil, fmt.Errorf("generate pickup code failed: %w", err)
	}

	order, err := etorder.NewOrder(uuid.New().String(), orderNo, pickupCode, userID, items, amounts, address, time.Now())
	if err != nil {
		return nil, fmt.Errorf("create order entity failed: %w", err)
	}
	order.Remark = remark

	if err := s.orderModule.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("save order failed: %w", err)
	}

	s.logger.Infof(ctx, "order created: order_no=%s user_id=%d", order.OrderNo, userID)
	return order, nil
}

// GetOrder 查询订单
func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	return s.orderModule.GetOrder(ctx, orderID)
}

// GetOrderByOrderNo 根据订单号查询
func (s *OrderService) GetOrderByOrderNo(ctx context.Context, orderNo string) (*etorder.Order, error) {
	return s.orderModule.GetOrderByOrderNo(ctx, orderNo)
}

// ListOrders 查询订单列表
func (s *OrderService) ListOrders(ctx context.Context, userID int64, page, limit int) ([]*etorder.Order, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.orderModule.ListOrders(ctx, userID, page, limit)
}
