package etorder

import (
	"strings"
	"time"
)

// EstimateCompleteBuffer 进入 ready 状态后给配送预留的运营缓冲时间
const EstimateCompleteBuffer = 2 * time.Hour

// Order 订单聚合根（领域对象）
// 状态与状态历史只允许通过 ApplyTransition 变更，其他组件不得直接写入
type Order struct {
	ID         string // 订单ID (UUID)
	OrderNo    string // 订单号（日期编码，唯一，对人可读）
	UserID     int64  // 下单用户ID
	PickupCode string // 取件码（2位字母+4位数字），创建后不可变

	Status           Status         // 细粒度状态（唯一事实来源）
	ProcessingStatus Status         // 洗护工序冗余字段，仅在工序中时有值
	StatusHistory    []StatusRecord // 状态历史，只追加，不修改不重排

	Items   []Item   // 订单商品（状态机视为不透明负载）
	Amounts *Amounts // 金额信息（定价逻辑负责，状态机不关心）
	Address *Address // 取送地址
	Remark  string   // 用户备注

	// 时间戳：首次进入对应状态时写入一次，之后不再重置
	CreatedAt          time.Time
	PaidAt             time.Time
	ProcessingAt       time.Time
	EstimateCompleteAt time.Time
	DeliveryStartAt    time.Time
	CompletedAt        time.Time
	UpdatedAt          time.Time
}

// StatusRecord 状态历史条目
type StatusRecord struct {
	Status   Status    `json:"status"`
	Time     time.Time `json:"time"`
	Operator string    `json:"operator,omitempty"` // 操作者引用，核心不校验不解析
	Remark   string    `json:"remark,omitempty"`
}

// Item 订单商品（值对象）
type Item struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"` // 单价，单位：分
}

// Amounts 金额信息（值对象，单位：分）
type Amounts struct {
	Subtotal int64 `json:"subtotal"`
	Fee      int64 `json:"fee"`
	Discount int64 `json:"discount"`
	Total    int64 `json:"total"`
}

// Address 取送地址（值对象）
type Address struct {
	ContactName string `json:"contactName"`
	Phone       string `json:"phone"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode,omitempty"`
}

// TransitionOptions 状态转移选项
type TransitionOptions struct {
	// ForceFromPending 允许 pending 订单直接跳入运营流程（支付确认走线下时使用）
	ForceFromPending bool
	// SkipLegalityCheck 宽松模式：跳过转移表校验，终态冻结仍然生效
	// 只能由状态机服务按显式配置开启，不是默认行为
	SkipLegalityCheck bool
	// Remark 写入状态历史的备注
	Remark string
}

// NewOrder 创建订单（工厂方法），初始状态 pending 并写入首条状态历史
func NewOrder(id, orderNo, pickupCode string, userID int64, items []Item, amounts *Amounts, address *Address, createdAt time.Time) (*Order, error) {
	if id == "" || orderNo == "" {
		return nil, ErrInvalidOrderID
	}
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	return &Order{
		ID:         id,
		OrderNo:    orderNo,
		UserID:     userID,
		PickupCode: pickupCode,
		Status:     StatusPending,
		StatusHistory: []StatusRecord{
			{Status: StatusPending, Time: createdAt, Remark: "order created"},
		},
		Items:     items,
		Amounts:   amounts,
		Address:   address,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}, nil
}

// ApplyTransition 应用一次状态转移（领域行为）
// 先完成全部校验再落内存变更，保证失败时订单零改动；成功时恰好追加一条状态历史
func (o *Order) ApplyTransition(target Status, operator string, at time.Time, opts TransitionOptions) error {
	if !target.IsValid() {
		return ErrUnknownStatus
	}
	// 终态冻结永远生效，宽松模式也不放开
	if o.Status.IsTerminal() {
		return &TerminalStateFrozenError{Current: o.Status}
	}

	if !o.transitionAllowed(target, opts) {
		return &InvalidTransitionError{From: o.Status, To: target}
	}

	o.Status = target
	o.StatusHistory = append(o.StatusHistory, StatusRecord{
		Status:   target,
		Time:     at,
		Operator: operator,
		Remark:   opts.Remark,
	})

	if target.IsInService() {
		o.ProcessingStatus = target
		if o.ProcessingAt.IsZero() {
			o.ProcessingAt = at
		}
	} else {
		o.ProcessingStatus = ""
	}

	switch target {
	case StatusPaid:
		if o.PaidAt.IsZero() {
			o.PaidAt = at
		}
	case StatusReady:
		if o.EstimateCompleteAt.IsZero() {
			o.EstimateCompleteAt = at.Add(EstimateCompleteBuffer)
		}
	case StatusDelivering:
		if o.DeliveryStartAt.IsZero() {
			o.DeliveryStartAt = at
		}
	case StatusCompleted:
		if o.CompletedAt.IsZero() {
			o.CompletedAt = at
		}
	}

	o.UpdatedAt = at
	return nil
}

// transitionAllowed 转移合法性判定，SkipLegalityCheck / ForceFromPending 为显式逃生口
func (o *Order) transitionAllowed(target Status, opts TransitionOptions) bool {
	if opts.SkipLegalityCheck {
		return true
	}
	if opts.ForceFromPending && o.Status == StatusPending && !target.IsTerminal() {
		return true
	}
	return o.Status.CanTransitionTo(target)
}

// MatchPickupCode 校验取件码（大小写不敏感的精确匹配）
func (o *Order) MatchPickupCode(code string) bool {
	return code != "" && strings.EqualFold(o.PickupCode, code)
}

// CurrentCoarse 当前状态在指定词表下的粗粒度投影
func (o *Order) CurrentCoarse(vocab Vocabulary) CoarseStatus {
	return ProjectToCoarse(o.Status, vocab)
}
