package rporder

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/pkg/errorx"
)

// OrderRepositoryImpl 订单仓储实现（MySQL）
type OrderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &OrderRepositoryImpl{db: db}
}

// Create 创建订单，将领域对象转换为 GORM 模型后存储
func (r *OrderRepositoryImpl) Create(ctx context.Context, order *etorder.Order) error {
	po, err := r.toGormModel(order)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// GetByID 根据ID查询订单
func (r *OrderRepositoryImpl) GetByID(ctx context.Context, orderID string) (*etorder.Order, error) {
	var po OrderPO
	err := r.db.WithContext(ctx).Where("id = ?", orderID).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrOrderNotFound
		}
		return nil, err
	}
	return r.toDomainModel(&po)
}

// GetByOrderNo 根据订单号查询
func (r *OrderRepositoryImpl) GetByOrderNo(ctx context.Context, orderNo string) (*etorder.Order, error) {
	var po OrderPO
	err := r.db.WithContext(ctx).Where("order_no = ?", orderNo).First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrOrderNotFound
		}
		return nil, err
	}
	return r.toDomainModel(&po)
}

// GetByPickupCode 根据取件码查询未完结订单
// 取件码大小写不敏感，历史订单可能复用同一取件码，因此排除终态行
func (r *OrderRepositoryImpl) GetByPickupCode(ctx context.Context, pickupCode string) (*etorder.Order, error) {
	var po OrderPO
	err := r.db.WithContext(ctx).
		Where("UPPER(pickup_code) = UPPER(?) AND status NOT IN ?", pickupCode,
			[]string{string(etorder.StatusCompleted), string(etorder.StatusCancelled)}).
		Order("created_at DESC").
		First(&po).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.ErrOrderNotFound
		}
		return nil, err
	}
	return r.toDomainModel(&po)
}

// Save 持久化聚合的可变部分（状态/历史/时间戳在同一条 UPDATE 中落库）
func (r *OrderRepositoryImpl) Save(ctx context.Context, order *etorder.Order) error {
	historyJSON, err := json.Marshal(order.StatusHistory)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"status":               string(order.Status),
		"processing_status":    string(order.ProcessingStatus),
		"status_history":       historyJSON,
		"paid_at":              timePtr(order.PaidAt),
		"processing_at":        timePtr(order.ProcessingAt),
		"estimate_complete_at": timePtr(order.EstimateCompleteAt),
		"delivery_start_at":    timePtr(order.DeliveryStartAt),
		"completed_at":         timePtr(order.CompletedAt),
		"updated_at":           order.UpdatedAt,
	}

	result := r.db.WithContext(ctx).
		Model(&OrderPO{}).
		Where("id = ?", order.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errorx.ErrOrderNotFound
	}
	return nil
}

// List 分页查询订单列表
func (r *OrderRepositoryImpl) List(ctx context.Context, userID int64, page, limit int) ([]*etorder.Order, int64, error) {
	var total int64
	var pos []OrderPO

	query := r.db.WithContext(ctx).Model(&OrderPO{})
	if userID > 0 {
		query = query.Where("user_id = ?", userID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&pos).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*etorder.Order, 0, len(pos))
	for i := range pos {
		order, err := r.toDomainModel(&pos[i])
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, order)
	}

	return orders, total, nil
}

// toGormModel 领域对象转换为 GORM 模型
func (r *OrderRepositoryImpl) toGormModel(order *etorder.Order) (*OrderPO, error) {
	historyJSON, err := json.Marshal(order.StatusHistory)
	if err != nil {
		return nil, err
	}
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return nil, err
	}

	po := &OrderPO{
		ID:                 order.ID,
		OrderNo:            order.OrderNo,
		UserID:             order.UserID,
		PickupCode:         order.PickupCode,
		Status:             string(order.Status),
		ProcessingStatus:   string(order.ProcessingStatus),
		StatusHistory:      historyJSON,
		Items:              itemsJSON,
		Remark:             order.Remark,
		CreatedAt:          order.CreatedAt,
		PaidAt:             timePtr(order.PaidAt),
		ProcessingAt:       timePtr(order.ProcessingAt),
		EstimateCompleteAt: timePtr(order.EstimateCompleteAt),
		DeliveryStartAt:    timePtr(order.DeliveryStartAt),
		CompletedAt:        timePtr(order.CompletedAt),
		UpdatedAt:          order.UpdatedAt,
	}

	if order.Amounts != nil {
		amountsJSON, err := json.Marshal(order.Amounts)
		if err != nil {
			return nil, err
		}
		po.Amounts = amountsJSON
	}
	if order.Address != nil {
		addressJSON, err := json.Marshal(order.Address)
		if err != nil {
			return nil, err
		}
		po.Address = addressJSON
	}

	return po, nil
}

// toDomainModel GORM 模型转换为领域对象
func (r *OrderRepositoryImpl) toDomainModel(po *OrderPO) (*etorder.Order, error) {
	var history []etorder.StatusRecord
	if len(po.StatusHistory) > 0 {
		if err := json.Unmarshal(po.StatusHistory, &history); err != nil {
			return nil, err
		}
	}

	var items []etorder.Item
	if len(po.Items) > 0 {
		if err := json.Unmarshal(po.Items, &items); err != nil {
			return nil, err
		}
	}

	order := &etorder.Order{
		ID:                 po.ID,
		OrderNo:            po.OrderNo,
		UserID:             po.UserID,
		PickupCode:         po.PickupCode,
		Status:             etorder.Status(po.Status),
		ProcessingStatus:   etorder.Status(po.ProcessingStatus),
		StatusHistory:      history,
		Items:              items,
		Remark:             po.Remark,
		CreatedAt:          po.CreatedAt,
		PaidAt:             timeVal(po.PaidAt),
		ProcessingAt:       timeVal(po.ProcessingAt),
		EstimateCompleteAt: timeVal(po.EstimateCompleteAt),
		DeliveryStartAt:    timeVal(po.DeliveryStartAt),
		CompletedAt:        timeVal(po.CompletedAt),
		UpdatedAt:          po.UpdatedAt,
	}

	if len(po.Amounts) > 0 {
		var amounts etorder.Amounts
		if err := json.Unmarshal(po.Amounts, &amounts); err != nil {
			return nil, err
		}
		order.Amounts = &amounts
	}
	if len(po.Address) > 0 {
		var address etorder.Address
		if err := json.Unmarshal(po.Address, &address); err != nil {
			return nil, err
		}
		order.Address = &address
	}

	return order, nil
}

// timePtr 零值时间转为 NULL
func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// timeVal NULL 转回零值时间
func timeVal(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
