package etorder

import (
	"errors"
	"fmt"
)

// 领域错误定义
var (
	ErrInvalidOrderID     = errors.New("order ID cannot be empty")
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrEmptyItems         = errors.New("order items cannot be empty")
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrPickupCodeMismatch = errors.New("pickup code mismatch")
)

// InvalidTransitionError 非法状态转移：目标状态不在当前状态的转移表中
// 错误信息必须带上当前/目标状态名，便于运营排查
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s is not allowed, legal next: %v", e.From, e.To, e.From.LegalNext())
}

// TerminalStateFrozenError 终态冻结：completed/cancelled 订单不允许任何变更
type TerminalStateFrozenError struct {
	Current Status
}

func (e *TerminalStateFrozenError) Error() string {
	return fmt.Sprintf("order is frozen in terminal state %s", e.Current)
}

// UnreachableGoalError 粗粒度目标解析失败：归组内没有可推进到达的细粒度状态
type UnreachableGoalError struct {
	From       Status
	Goal       CoarseStatus
	Vocabulary Vocabulary
}

func (e *UnreachableGoalError) Error() string {
	if e.Vocabulary == "" {
		return fmt.Sprintf("goal %s is not reachable from %s", e.Goal, e.From)
	}
	return fmt.Sprintf("goal %s (%s vocabulary) is not reachable from %s", e.Goal, e.Vocabulary, e.From)
}
