package etorder

// Status 订单细粒度状态（运营状态机的唯一事实来源）
type Status string

const (
	StatusPending    Status = "pending"    // 待支付
	StatusPaid       Status = "paid"       // 已支付
	StatusToPickup   Status = "toPickup"   // 待取件
	StatusPickedUp   Status = "pickedUp"   // 已取件
	StatusSorting    Status = "sorting"    // 分拣中
	StatusWashing    Status = "washing"    // 洗涤中
	StatusDrying     Status = "drying"     // 烘干中
	StatusIroning    Status = "ironing"    // 熨烫中
	StatusPackaging  Status = "packaging"  // 包装中
	StatusReady      Status = "ready"      // 已完成待配送
	StatusDelivering Status = "delivering" // 配送中
	StatusCompleted  Status = "completed"  // 已完成
	StatusCancelled  Status = "cancelled"  // 已取消
)

// ForwardOrder 细粒度状态的正向拓扑顺序（cancelled 不在正向链路上）
var ForwardOrder = []Status{
	StatusPending,
	StatusPaid,
	StatusToPickup,
	StatusPickedUp,
	StatusSorting,
	StatusWashing,
	StatusDrying,
	StatusIroning,
	StatusPackaging,
	StatusReady,
	StatusDelivering,
	StatusCompleted,
}

// legalNext 状态转移表：当前状态 -> 允许的下一状态集合
// 注意 sorting 允许直接跳到 drying / ironing，这是运营侧的弹性设计，保留不收紧
var legalNext = map[Status][]Status{
	StatusPending:    {StatusPaid, StatusCancelled},
	StatusPaid:       {StatusToPickup, StatusCancelled},
	StatusToPickup:   {StatusPickedUp, StatusCancelled},
	StatusPickedUp:   {StatusSorting, StatusCancelled},
	StatusSorting:    {StatusWashing, StatusDrying, StatusIroning, StatusCancelled},
	StatusWashing:    {StatusDrying, StatusCancelled},
	StatusDrying:     {StatusIroning, StatusCancelled},
	StatusIroning:    {StatusPackaging, StatusCancelled},
	StatusPackaging:  {StatusReady, StatusDelivering, StatusCancelled},
	StatusReady:      {StatusDelivering, StatusCompleted, StatusCancelled},
	StatusDelivering: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// preferredNext 自动推进用的首选单步表（每个状态只有一个标准下一步）
// 与 legalNext 不同：它不含 cancelled，分支处固定走完整工序链
var preferredNext = map[Status]Status{
	StatusPending:    StatusPaid,
	StatusPaid:       StatusToPickup,
	StatusToPickup:   StatusPickedUp,
	StatusPickedUp:   StatusSorting,
	StatusSorting:    StatusWashing,
	StatusWashing:    StatusDrying,
	StatusDrying:     StatusIroning,
	StatusIroning:    StatusPackaging,
	StatusPackaging:  StatusReady,
	StatusReady:      StatusDelivering,
	StatusDelivering: StatusCompleted,
}

// inService 在洗护工序中的状态集合（用于 processing_status 冗余字段）
var inService = map[Status]bool{
	StatusSorting:   true,
	StatusWashing:   true,
	StatusDrying:    true,
	StatusIroning:   true,
	StatusPackaging: true,
}

// IsValid 判断是否为合法的细粒度状态
func (s Status) IsValid() bool {
	_, ok := legalNext[s]
	return ok
}

// IsTerminal 判断是否为终态（终态冻结，任何转移都不再合法）
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// IsInService 判断是否处于洗护工序（分拣/洗涤/烘干/熨烫/包装）
func (s Status) IsInService() bool {
	return inService[s]
}

// CanTransitionTo 判断状态转移是否合法（唯一权威，不要在别处复刻判断逻辑）
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range legalNext[s] {
		if next == target {
			return true
		}
	}
	return false
}

// LegalNext 返回当前状态允许的下一状态列表（副本，供错误提示使用）
func (s Status) LegalNext() []Status {
	next := legalNext[s]
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// PreferredNext 返回自动推进的首选下一状态，终态或 cancelled 返回 false
func (s Status) PreferredNext() (Status, bool) {
	next, ok := preferredNext[s]
	return next, ok
}

// ParseStatus 解析细粒度状态字符串
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	if s.IsValid() {
		return s, true
	}
	return "", false
}
