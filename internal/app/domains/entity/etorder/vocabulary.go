package etorder

// Vocabulary 粗粒度状态词表（不同客户端对状态的归组方式不同）
type Vocabulary string

const (
	// VocabularyOperator 商户端词表：洗护工序统一归组为 processing
	VocabularyOperator Vocabulary = "operator"
	// VocabularyShopper 用户端词表：基本与细粒度一致，pending/cancelled 仅展示层吸收
	VocabularyShopper Vocabulary = "shopper"
)

// CoarseStatus 面向客户端展示的粗粒度状态
type CoarseStatus string

const (
	CoarsePending    CoarseStatus = "pending"
	CoarsePaid       CoarseStatus = "paid"
	CoarseProcessing CoarseStatus = "processing"
	CoarseToPickup   CoarseStatus = "toPickup"
	CoarsePickedUp   CoarseStatus = "pickedUp"
	CoarseSorting    CoarseStatus = "sorting"
	CoarseWashing    CoarseStatus = "washing"
	CoarseDrying     CoarseStatus = "drying"
	CoarseIroning    CoarseStatus = "ironing"
	CoarsePackaging  CoarseStatus = "packaging"
	CoarseReady      CoarseStatus = "ready"
	CoarseDelivering CoarseStatus = "delivering"
	CoarseCompleted  CoarseStatus = "completed"
	CoarseCancelled  CoarseStatus = "cancelled"
)

// operatorCoarse 商户端投影表（全函数：每个细粒度状态都有定义）
var operatorCoarse = map[Status]CoarseStatus{
	StatusPending:    CoarsePending,
	StatusPaid:       CoarsePaid,
	StatusToPickup:   CoarseProcessing,
	StatusPickedUp:   CoarseProcessing,
	StatusSorting:    CoarseProcessing,
	StatusWashing:    CoarseProcessing,
	StatusDrying:     CoarseProcessing,
	StatusIroning:    CoarseProcessing,
	StatusPackaging:  CoarseProcessing,
	StatusReady:      CoarseReady,
	StatusDelivering: CoarseDelivering,
	StatusCompleted:  CoarseCompleted,
	StatusCancelled:  CoarseCancelled,
}

// shopperCoarse 用户端投影表
// pending 展示为 paid、cancelled 展示为 completed，仅影响展示，持久化状态不变
var shopperCoarse = map[Status]CoarseStatus{
	StatusPending:    CoarsePaid,
	StatusPaid:       CoarsePaid,
	StatusToPickup:   CoarseToPickup,
	StatusPickedUp:   CoarsePickedUp,
	StatusSorting:    CoarseSorting,
	StatusWashing:    CoarseWashing,
	StatusDrying:     CoarseDrying,
	StatusIroning:    CoarseIroning,
	StatusPackaging:  CoarsePackaging,
	StatusReady:      CoarseReady,
	StatusDelivering: CoarseDelivering,
	StatusCompleted:  CoarseCompleted,
	StatusCancelled:  CoarseCompleted,
}

// ProjectToCoarse 细粒度状态投影到指定词表的粗粒度状态（纯函数，无错误分支）
func ProjectToCoarse(fine Status, vocab Vocabulary) CoarseStatus {
	if vocab == VocabularyShopper {
		return shopperCoarse[fine]
	}
	return operatorCoarse[fine]
}

// ParseCoarse 解析指定词表下的粗粒度状态字符串
func ParseCoarse(raw string, vocab Vocabulary) (CoarseStatus, bool) {
	c := CoarseStatus(raw)
	table := operatorCoarse
	if vocab == VocabularyShopper {
		table = shopperCoarse
	}
	for _, coarse := range table {
		if coarse == c {
			return c, true
		}
	}
	return "", false
}

// coarseMembers 按正向拓扑顺序返回归属于指定粗粒度状态的细粒度状态
func coarseMembers(category CoarseStatus, vocab Vocabulary) []Status {
	var members []Status
	for _, fine := range ForwardOrder {
		if ProjectToCoarse(fine, vocab) == category {
			members = append(members, fine)
		}
	}
	if ProjectToCoarse(StatusCancelled, vocab) == category {
		members = append(members, StatusCancelled)
	}
	return members
}

// reachableByAdvance 判断 target 是否可以沿首选单步表从 current 一步步推进到达
func reachableByAdvance(current, target Status) bool {
	cursor := current
	for range ForwardOrder {
		if cursor == target {
			return true
		}
		next, ok := cursor.PreferredNext()
		if !ok {
			return false
		}
		cursor = next
	}
	return cursor == target
}

// ResolveAdvancementGoal 将商户请求的粗粒度目标解析为具体的细粒度目标状态
// 规则：当前状态已在目标归组内则原样返回并置 noop；否则返回归组内按正向顺序
// 第一个可由当前状态推进到达的细粒度状态；均不可达时返回 UnreachableGoalError
func ResolveAdvancementGoal(current Status, category CoarseStatus, vocab Vocabulary) (goal Status, noop bool, err error) {
	if ProjectToCoarse(current, vocab) == category {
		return current, true, nil
	}

	for _, member := range coarseMembers(category, vocab) {
		if member == current {
			continue
		}
		if reachableByAdvance(current, member) {
			return member, false, nil
		}
	}

	return "", false, &UnreachableGoalError{From: current, Goal: category, Vocabulary: vocab}
}
