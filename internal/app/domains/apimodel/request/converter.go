package request

import (
	"lss/backend/internal/app/domains/entity/etorder"
)

// ToItemEntities 请求商品列表转换为领域值对象
func (r *CreateOrderRequest) ToItemEntities() []etorder.Item {
	items := make([]etorder.Item, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, etorder.Item{
			Name:     item.Name,
			Category: item.Category,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}
	return items
}

// ToAmountsEntity 请求金额转换为领域值对象
func (r *CreateOrderRequest) ToAmountsEntity() *etorder.Amounts {
	if r.Amounts == nil {
		return nil
	}
	return &etorder.Amounts{
		Subtotal: r.Amounts.Subtotal,
		Fee:      r.Amounts.Fee,
		Discount: r.Amounts.Discount,
		Total:    r.Amounts.Total,
	}
}

// ToAddressEntity 请求地址转换为领域值对象
func (r *CreateOrderRequest) ToAddressEntity() *etorder.Address {
	if r.Address == nil {
		return nil
	}
	return &etorder.Address{
		ContactName: r.Address.ContactName,
		Phone:       r.Address.Phone,
		Street:      r.Address.Street,
		City:        r.Address.City,
		PostalCode:  r.Address.PostalCode,
	}
}
