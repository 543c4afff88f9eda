package mdorder

import (
	"context"

	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/domains/repo/rporder"
)

// OrderModule 订单模块（业务编排层）
type OrderModule struct {
	orderRepo rporder.OrderRepository
}

// NewOrderModule 创建订单模块
func NewOrderModule(orderRepo rporder.OrderRepository) *OrderModule {
	return &OrderModule{orderRepo: orderRepo}
}

// CreateOrder 创建订单（数据操作）
func (m *OrderModule) CreateOrder(ctx context.Context, order *etorder.Order) error {
	return m.orderRepo.Create(ctx, order)
}

// GetOrder 查询订单
func (m *OrderModule) GetOrder(ctx context.Context, orderID string) (*etorder.Order, error) {
	return m.orderRepo.GetByID(ctx, orderID)
}

// GetOrderByOrderNo 根据订单号查询
func (m *OrderModule) GetOrderByOrderNo(ctx context.Context, orderNo string) (*etorder.Order, error) {
	return m.orderRepo.GetByOrderNo(ctx, orderNo)
}

// GetOrderByPickupCode 根据取件码查询未完结订单
func (m *OrderModule) GetOrderByPickupCode(ctx context.Context, pickupCode string) (*etorder.Order, error) {
	return m.orderRepo.GetByPickupCode(ctx, pickupCode)
}

// SaveOrder 持久化订单聚合的可变部分
func (m *OrderModule) SaveOrder(ctx context.Context, order *etorder.Order) error {
	return m.orderRepo.Save(ctx, order)
}

// ListOrders 查询订单列表
func (m *OrderModule) ListOrders(ctx context.Context, userID int64, page, limit int) ([]*etorder.Order, int64, error) {
	return m.orderRepo.List(ctx, userID, page, limit)
}
