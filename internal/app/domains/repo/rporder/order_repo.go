package rporder

import (
	"context"

	"lss/backend/internal/app/domains/entity/etorder"
)

// OrderRepository 订单仓储接口（只定义，不实现）
type OrderRepository interface {
	// Create 创建订单
	Create(ctx context.Context, order *etorder.Order) error

	// GetByID 根据ID查询订单
	GetByID(ctx context.Context, orderID string) (*etorder.Order, error)

	// GetByOrderNo 根据订单号查询
	GetByOrderNo(ctx context.Context, orderNo string) (*etorder.Order, error)

	// GetByPickupCode 根据取件码查询未完结订单（取件码只在在途订单中唯一）
	GetByPickupCode(ctx context.Context, pickupCode string) (*etorder.Order, error)

	// Save 持久化聚合的可变部分
	// 状态、状态历史与各衍生时间戳必须落在同一次更新里
	Save(ctx context.Context, order *etorder.Order) error

	// List 分页查询订单列表，userID 为 0 时不过滤
	List(ctx context.Context, userID int64, page, limit int) ([]*etorder.Order, int64, error)
}
