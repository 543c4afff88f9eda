package rporder

import (
	"time"

	"gorm.io/datatypes"
)

// OrderPO 订单持久化对象（MySQL 行结构）
// 状态历史/商品/金额/地址以 JSON 文档列存储，随主行一次更新落库
type OrderPO struct {
	ID         string `gorm:"column:id;primaryKey;type:varchar(64)"`
	OrderNo    string `gorm:"column:order_no;type:varchar(32);not null;uniqueIndex:uk_order_no"`
	UserID     int64  `gorm:"column:user_id;not null;index:idx_user_status"`
	PickupCode string `gorm:"column:pickup_code;type:varchar(8);not null;index:idx_pickup_code"`

	Status           string         `gorm:"column:status;type:varchar(16);not null;default:'pending';index:idx_user_status"`
	ProcessingStatus string         `gorm:"column:processing_status;type:varchar(16)"`
	StatusHistory    datatypes.JSON `gorm:"column:status_history;type:json;not null"`

	Items   datatypes.JSON `gorm:"column:items;type:json;not null"`
	Amounts datatypes.JSON `gorm:"column:amounts;type:json"`
	Address datatypes.JSON `gorm:"column:address;type:json"`
	Remark  string         `gorm:"column:remark;type:varchar(255)"`

	CreatedAt          time.Time  `gorm:"column:created_at;not null;index:idx_created_at"`
	PaidAt             *time.Time `gorm:"column:paid_at"`
	ProcessingAt       *time.Time `gorm:"column:processing_at"`
	EstimateCompleteAt *time.Time `gorm:"column:estimate_complete_at"`
	DeliveryStartAt    *time.Time `gorm:"column:delivery_start_at"`
	CompletedAt        *time.Time `gorm:"column:completed_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at;not null"`
}

// TableName 指定表名
func (OrderPO) TableName() string {
	return "orders"
}
