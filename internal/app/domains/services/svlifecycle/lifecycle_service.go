package svlifecycle

import (
	"context"
	"fmt"
	"time"

	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/domains/modules/mdorder"
	"lss/backend/internal/app/domains/services/svnotify"
	"lss/backend/internal/app/pkg/errorx"
	"lss/backend/internal/app/pkg/logger"
)

// lockTTL 订单锁的保底过期时间（多步推进在一次持锁内完成）
const lockTTL = 10 * time.Second

// OrderLocker 订单级互斥锁（redis 适配）
type OrderLocker interface {
	AcquireOrderLock(ctx context.Context, orderID string, ttl time.Duration) (release func(), ok bool, err error)
}

// HopNotifier 每个已提交 hop 的通知出口
type HopNotifier interface {
	Notify(notification svnotify.StatusNotification)
}

// Service 订单状态机服务
// 订单状态与状态历史的唯一写入方；所有变更走 先校验-后变更-单次落库 的路径
type Service struct {
	orders   *mdorder.OrderModule
	locker   OrderLocker
	notifier HopNotifier
	logger   logger.Logger

	// relaxed 宽松模式：跳过转移表校验，终态冻结仍生效
	// 来自显式配置项 lifecycle.relaxed_transitions，构造时注入，绝不读环境变量
	relaxed bool

	now func() time.Time
}

// TransitionOptions 一次状态变更请求的选项
type TransitionOptions struct {
	// ForceFromPending 允许 pending 订单直接跳入运营流程（支付确认走线下）
	ForceFromPending bool
	// ExpectedCurrent 乐观校验：非空时要求当前状态与之一致
	ExpectedCurrent etorder.Status
	// Remark 写入状态历史的备注
	Remark string
}

// NewService 创建状态机服务
// locker / notifier 允许为 nil（单测或降级场景），relaxed 必须显式传入
func NewService(orders *mdorder.OrderModule, locker OrderLocker, notifier HopNotifier, log logger.Logger, relaxed bool) *Service {
	return &Service{
		orders:   orders,
		locker:   locker,
		notifier: notifier,
		logger:   log,
		relaxed:  relaxed,
		now:      time.Now,
	}
}

// ApplyTransition 应用单次状态转移
func (s *Service) ApplyTransition(ctx context.Context, orderID string, target etorder.Status, operator string, opts TransitionOptions) (*etorder.Order, error) {
	release, err := s.lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	return s.applyLocked(ctx, orderID, target, operator, opts)
}

// ConfirmPickup 取件码核验后确认取件
// 码不匹配时在任何变更发生之前返回 ErrPickupCodeMismatch，错误信息不回显正确取件码
func (s *Service) ConfirmPickup(ctx context.Context, orderID, suppliedCode, operator string) (*etorder.Order, error) {
	release, err := s.lock(ctx, orderID)
	if err != nil {
		return nil, err
	}
	defer release()

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.MatchPickupCode(suppliedCode) {
		return nil, etorder.ErrPickupCodeMismatch
	}

	return s.applyLocked(ctx, orderID, etorder.StatusPickedUp, operator, TransitionOptions{Remark: "pickup confirmed by code"})
}

// TakeByPickupCode 根据取件码定位订单并确认取件（POST /order/take 的入口）
func (s *Service) TakeByPickupCode(ctx context.Context, pickupCode, operator string) (*etorder.Order, error) {
	order, err := s.orders.GetOrderByPickupCode(ctx, pickupCode)
	if err != nil {
		return nil, err
	}
	return s.ConfirmPickup(ctx, order.ID, pickupCode, operator)
}

// applyLocked 持锁状态下的单次转移：取最新快照 -> 领域校验与变更 -> 单次落库 -> 通知
func (s *Service) applyLocked(ctx context.Context, orderID string, target etorder.Status, operator string, opts TransitionOptions) (*etorder.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := checkExpected(order, opts.ExpectedCurrent); err != nil {
		return nil, err
	}

	from := order.Status
	err = order.ApplyTransition(target, operator, s.now(), etorder.TransitionOptions{
		ForceFromPending:  opts.ForceFromPending,
		SkipLegalityCheck: s.relaxed,
		Remark:            opts.Remark,
	})
	if err != nil {
		return nil, err
	}

	if err := s.orders.SaveOrder(ctx, order); err != nil {
		// 内存变更随本次请求丢弃，下次操作会重新读库，不会出现半提交
		return nil, fmt.Errorf("save order failed: %w", err)
	}

	s.logger.Infof(ctx, "order transition committed: order_no=%s %s->%s operator=%s", order.OrderNo, from, order.Status, operator)
	s.notifyHop(order, from, operator)

	return order, nil
}

// notifyHop 每个已提交 hop 投递一条通知（异步、尽力而为）
func (s *Service) notifyHop(order *etorder.Order, from etorder.Status, operator string) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(svnotify.StatusNotification{
		OrderID:        order.ID,
		OrderNo:        order.OrderNo,
		UserID:         order.UserID,
		From:           from,
		To:             order.Status,
		OperatorCoarse: order.CurrentCoarse(etorder.VocabularyOperator),
		ShopperCoarse:  order.CurrentCoarse(etorder.VocabularyShopper),
		Operator:       operator,
		Time:           order.UpdatedAt,
	})
}

// checkExpected 乐观校验：调用方声明的当前状态与服务端不一致时拒绝
func checkExpected(order *etorder.Order, expected etorder.Status) error {
	if expected != "" && order.Status != expected {
		return fmt.Errorf("current status is %s, expected %s: %w", order.Status, expected, errorx.ErrStatusConflict)
	}
	return nil
}

// lock 获取订单锁，locker 未配置时直接放行
func (s *Service) lock(ctx context.Context, orderID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	release, ok, err := s.locker.AcquireOrderLock(ctx, orderID, lockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquire order lock failed: %w", err)
	}
	if !ok {
		return nil, errorx.ErrOrderLocked
	}
	return release, nil
}

// WithClock 替换时钟（测试用）
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
