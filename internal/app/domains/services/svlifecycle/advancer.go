package svlifecycle

import (
	"context"

	"lss/backend/internal/app/domains/entity/etorder"
)

// AdvanceResult 多步推进的结果
// 失败不是独立错误类型而是结果形态：已提交的 hop 保持提交（无回滚），
// Applied 记回每一跳，FinalStatus 是最后一次成功提交后的状态
type AdvanceResult struct {
	Succeeded   bool
	NoOp        bool             // 已处于目标状态，零跳成功
	Applied     []etorder.Status // 实际提交的 hop 序列
	FinalStatus etorder.Status
	Order       *etorder.Order // 最后一次成功提交后的订单快照
}

// AdvanceTo 将订单沿首选单步表逐跳推进到目标细粒度状态
// 每一跳独立走 applyLocked（取最新快照-校验-落库-通知），保证逐跳可审计；
// 中途失败立即停止，已提交的 hop 不回滚
func (s *Service) AdvanceTo(ctx context.Context, orderID string, goal etorder.Status, operator string) (*AdvanceResult, error) {
	release, err := s.lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	return s.advanceLocked(ctx, orderID, goal, operator)
}

// AdvanceToCategory 将订单推进到指定词表下的粗粒度目标
// 先经 ResolveAdvancementGoal 定位具体细粒度目标，再按 MoveTo 的规则推进
func (s *Service) AdvanceToCategory(ctx context.Context, orderID string, category etorder.CoarseStatus, vocab etorder.Vocabulary, operator string, opts TransitionOptions) (*AdvanceResult, error) {
	release, err := s.lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkExpected(order, opts.ExpectedCurrent); err != nil {
		return nil, err
	}

	goal, noop, err := etorder.ResolveAdvancementGoal(order.Status, category, vocab)
	if err != nil {
		if order.Status.IsTerminal() {
			return nil, &etorder.TerminalStateFrozenError{Current: order.Status}
		}
		return nil, err
	}
	if noop {
		return &AdvanceResult{Succeeded: true, NoOp: true, FinalStatus: order.Status, Order: order}, nil
	}

	return s.moveLocked(ctx, order, goal, operator, opts)
}

// MoveTo 将订单移动到目标细粒度状态（状态变更接口的入口）
// 目标直接可达（或取消 / pending 直跳 / 宽松模式）时走单跳，否则沿首选路径逐跳推进
func (s *Service) MoveTo(ctx context.Context, orderID string, target etorder.Status, operator string, opts TransitionOptions) (*AdvanceResult, error) {
	release, err := s.lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := checkExpected(order, opts.ExpectedCurrent); err != nil {
		return nil, err
	}

	if order.Status == target {
		return &AdvanceResult{Succeeded: true, NoOp: true, FinalStatus: order.Status, Order: order}, nil
	}
	if order.Status.IsTerminal() {
		return nil, &etorder.TerminalStateFrozenError{Current: order.Status}
	}

	return s.moveLocked(ctx, order, target, operator, opts)
}

// moveLocked 单跳优先，不可直达时降级为首选路径推进
func (s *Service) moveLocked(ctx context.Context, order *etorder.Order, target etorder.Status, operator string, opts TransitionOptions) (*AdvanceResult, error) {
	singleHop := target == etorder.StatusCancelled ||
		order.Status.CanTransitionTo(target) ||
		(opts.ForceFromPending && order.Status == etorder.StatusPending) ||
		s.relaxed

	if singleHop {
		updated, err := s.applyLocked(ctx, order.ID, target, operator, TransitionOptions{
			ForceFromPending: opts.ForceFromPending,
			Remark:           opts.Remark,
		})
		if err != nil {
			return &AdvanceResult{FinalStatus: order.Status, Order: order}, err
		}
		return &AdvanceResult{
			Succeeded:   true,
			Applied:     []etorder.Status{target},
			FinalStatus: updated.Status,
			Order:       updated,
		}, nil
	}

	return s.advanceLocked(ctx, order.ID, target, operator)
}

// advanceLocked 持锁状态下的逐跳推进
func (s *Service) advanceLocked(ctx context.Context, orderID string, goal etorder.Status, operator string) (*AdvanceResult, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.Status == goal {
		return &AdvanceResult{Succeeded: true, NoOp: true, FinalStatus: order.Status, Order: order}, nil
	}

	path, err := planPath(order.Status, goal)
	if err != nil {
		return nil, err
	}

	result := &AdvanceResult{FinalStatus: order.Status, Order: order}
	for _, hop := range path {
		// 每跳重新取最新快照落库，本跳看到的一定是上一跳刚提交的状态
		updated, err := s.applyLocked(ctx, orderID, hop, operator, TransitionOptions{})
		if err != nil {
			s.logger.Warnf(ctx, "advance stopped at %s (goal %s): %v, committed hops=%v", result.FinalStatus, goal, err, result.Applied)
			return result, err
		}
		result.Applied = append(result.Applied, hop)
		result.FinalStatus = updated.Status
		result.Order = updated
	}

	result.Succeeded = true
	return result, nil
}

// planPath 沿首选单步表计算 current 到 goal 的 hop 序列（不含 current，含 goal）
func planPath(current, goal etorder.Status) ([]etorder.Status, error) {
	var path []etorder.Status
	cursor := current
	for range etorder.ForwardOrder {
		next, ok := cursor.PreferredNext()
		if !ok {
			return nil, &etorder.UnreachableGoalError{From: current, Goal: etorder.CoarseStatus(goal)}
		}
		path = append(path, next)
		if next == goal {
			return path, nil
		}
		cursor = next
	}
	return nil, &etorder.UnreachableGoalError{From: current, Goal: etorder.CoarseStatus(goal)}
}
