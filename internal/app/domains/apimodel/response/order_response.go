package response

import "time"

// OrderResponse 订单详情响应
type OrderResponse struct {
	OrderID          string `json:"orderId"`
	OrderNo          string `json:"orderNo"`
	UserID           int64  `json:"userId"`
	PickupCode       string `json:"pickupCode,omitempty"`
	Status           string `json:"status"`
	OperatorStatus   string `json:"operatorStatus"` // 商户端粗粒度投影
	ShopperStatus    string `json:"shopperStatus"`  // 用户端粗粒度投影
	ProcessingStatus string `json:"processingStatus,omitempty"`

	Items         []ItemData         `json:"items"`
	Amounts       *AmountData        `json:"amounts,omitempty"`
	Address       *AddressData       `json:"address,omitempty"`
	Remark        string             `json:"remark,omitempty"`
	StatusHistory []StatusRecordData `json:"statusHistory"`

	CreatedAt          time.Time  `json:"createdAt"`
	PaidAt             *time.Time `json:"paidAt,omitempty"`
	ProcessingAt       *time.Time `json:"processingAt,omitempty"`
	EstimateCompleteAt *time.Time `json:"estimateCompleteAt,omitempty"`
	DeliveryStartAt    *time.Time `json:"deliveryStartAt,omitempty"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// ItemData 商品数据
type ItemData struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

// AmountData 金额数据（单位：分）
type AmountData struct {
	Subtotal int64 `json:"subtotal"`
	Fee      int64 `json:"fee"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// AddressData 地址数据
type AddressData struct {
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Street      string `json:"street"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
}

// StatusRecordData 状态历史条目
type StatusRecordData struct {
	Status   string    `json:"status"`
	Time     time.Time `json:"time"`
	Operator string    `json:"operator,omitempty"`
	Remark   string    `json:"remark,omitempty"`
}

// StatusUpdateData 状态变更响应数据（移动端约定的 data 形状）
type StatusUpdateData struct {
	OrderID    string    `json:"orderId"`
	OrderNo    string    `json:"orderNo"`
	Status     string    `json:"status"`
	UpdateTime time.Time `json:"updateTime"`
	// AppliedHops 本次请求实际提交的 hop 序列（多步推进时逐跳可见）
	AppliedHops []string `json:"appliedHops,omitempty"`
	NoOp        bool     `json:"noOp,omitempty"`
}

// OrderListData 列表响应数据
type OrderListData struct {
	Total  int64            `json:"total"`
	Page   int              `json:"page"`
	Limit  int              `json:"limit"`
	Orders []*OrderResponse `json:"orders"`
}
