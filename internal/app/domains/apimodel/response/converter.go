package response

import (
	"time"

	"lss/backend/internal/app/domains/entity/etorder"
)

// FromOrderEntity 领域对象转换为订单详情响应
func FromOrderEntity(order *etorder.Order) *OrderResponse {
	resp := &OrderResponse{
		OrderID:            order.ID,
		OrderNo:            order.OrderNo,
		UserID:             order.UserID,
		PickupCode:         order.PickupCode,
		Status:             string(order.Status),
		OperatorStatus:     string(order.CurrentCoarse(etorder.VocabularyOperator)),
		ShopperStatus:      string(order.CurrentCoarse(etorder.VocabularyShopper)),
		ProcessingStatus:   string(order.ProcessingStatus),
		Remark:             order.Remark,
		CreatedAt:          order.CreatedAt,
		PaidAt:             optionalTime(order.PaidAt),
		ProcessingAt:       optionalTime(order.ProcessingAt),
		EstimateCompleteAt: optionalTime(order.EstimateCompleteAt),
		DeliveryStartAt:    optionalTime(order.DeliveryStartAt),
		CompletedAt:        optionalTime(order.CompletedAt),
		UpdatedAt:          order.UpdatedAt,
	}

	resp.Items = make([]ItemData, 0, len(order.Items))
	for _, item := range order.Items {
		resp.Items = append(resp.Items, ItemData{
			Name:     item.Name,
			Category: item.Category,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	resp.StatusHistory = make([]StatusRecordData, 0, len(order.StatusHistory))
	for _, record := range order.StatusHistory {
		resp.StatusHistory = append(resp.StatusHistory, StatusRecordData{
			Status:   string(record.Status),
			Time:     record.Time,
			Operator: record.Operator,
			Remark:   record.Remark,
		})
	}

	if order.Amounts != nil {
		resp.Amounts = &AmountData{
			Subtotal: order.Amounts.Subtotal,
			Fee:      order.Amounts.Fee,
			Discount: order.Amounts.Discount,
			Total:    order.Amounts.Total,
		}
	}
	if order.Address != nil {
		resp.Address = &AddressData{
			ContactName: order.Address.ContactName,
			Phone:       order.Address.Phone,
			Street:      order.Address.Street,
			City:        order.Address.City,
			PostalCode:  order.Address.PostalCode,
		}
	}

	return resp
}

// FromOrderEntities 批量转换
func FromOrderEntities(orders []*etorder.Order) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, FromOrderEntity(order))
	}
	return out
}

// NewStatusUpdateData 状态变更响应数据
func NewStatusUpdateData(order *etorder.Order, applied []etorder.Status, noop bool) *StatusUpdateData {
	hops := make([]string, 0, len(applied))
	for _, hop := range applied {
		hops = append(hops, string(hop))
	}
	return &StatusUpdateData{
		OrderID:     order.ID,
		OrderNo:     order.OrderNo,
		Status:      string(order.Status),
		UpdateTime:  order.UpdatedAt,
		AppliedHops: hops,
		NoOp:        noop,
	}
}

// optionalTime 零值时间省略输出
func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
