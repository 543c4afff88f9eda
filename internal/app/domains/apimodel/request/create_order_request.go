package request

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	UserID  int64           `json:"userId" binding:"required,gt=0"`
	Items   []ItemPayload   `json:"items" binding:"required,min=1,dive"`
	Amounts *AmountPayload  `json:"amounts"`
	Address *AddressPayload `json:"address"`
	Remark  string          `json:"remark"`
}

// ItemPayload 订单商品
type ItemPayload struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Price    int64  `json:"price" binding:"gte=0"`
}

// AmountPayload 金额信息（单位：分），定价在订单创建侧完成，这里原样接收
type AmountPayload struct {
	Subtotal int64 `json:"subtotal"`
	Fee      int64 `json:"fee"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// AddressPayload 取送地址
type AddressPayload struct {
	ContactName string `json:"contactName" binding:"required"`
	Phone       string `json:"phone" binding:"required"`
	Street      string `json:"street" binding:"required"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
}
