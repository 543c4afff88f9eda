package request

// UpdateStatusRequest 状态变更请求（PUT /order/:id/status）
// Status 允许细粒度状态名，也允许商户端粗粒度别名（如 processing）
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	// CurrentStatus 乐观校验：非空时要求服务端当前状态与之一致
	CurrentStatus string `json:"currentStatus"`
	// AllowPendingToProcessing 允许 pending 订单直跳运营流程（线下收款场景）
	// 字段名带下划线前缀是与移动端的历史约定
	AllowPendingToProcessing bool   `json:"_allowPendingToProcessing"`
	Operator                 string `json:"operator"`
	Remark                   string `json:"remark"`
}

// TakeOrderRequest 取件请求（POST /order/take），按取件码定位订单
type TakeOrderRequest struct {
	PickupCode string `json:"pickupCode" binding:"required"`
	Operator   string `json:"operator"`
}
