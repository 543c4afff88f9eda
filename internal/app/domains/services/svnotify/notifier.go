package svnotify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/atomic"

	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/pkg/logger"
)

// StatusNotification 一次已提交状态转移的通知载荷
// 每个 hop 独立产生一条，多步推进时逐跳可审计
type StatusNotification struct {
	OrderID        string               `json:"orderId"`
	OrderNo        string               `json:"orderNo"`
	UserID         int64                `json:"userId"`
	From           etorder.Status       `json:"from"`
	To             etorder.Status       `json:"to"`
	OperatorCoarse etorder.CoarseStatus `json:"operatorStatus"` // 商户端展示状态
	ShopperCoarse  etorder.CoarseStatus `json:"shopperStatus"`  // 用户端展示状态
	Operator       string               `json:"operator,omitempty"`
	Time           time.Time            `json:"time"`
}

// QueuePublisher 通知任务队列（lmstfy 适配）
type QueuePublisher interface {
	Publish(data interface{}) error
}

// ChannelPublisher 即时广播通道（redis pub/sub 适配）
type ChannelPublisher interface {
	PublishStatusChange(ctx context.Context, orderID string, payload string) error
}

// Notifier 状态变更通知分发器
// 状态机落库后异步投递，投递失败只记日志，绝不反悔已提交的转移
type Notifier struct {
	queue   QueuePublisher
	channel ChannelPublisher
	logger  logger.Logger

	input      chan StatusNotification
	closing    *atomic.Bool
	shutdownCh chan struct{}
	wg         sync.WaitGroup
}

// NewNotifier 创建通知分发器
func NewNotifier(queue QueuePublisher, channel ChannelPublisher, log logger.Logger) *Notifier {
	return &Notifier{
		queue:      queue,
		channel:    channel,
		logger:     log,
		input:      make(chan StatusNotification, 256),
		closing:    atomic.NewBool(false),
		shutdownCh: make(chan struct{}),
	}
}

// Start 启动分发协程
func (n *Notifier) Start() {
	n.wg.Add(1)
	go n.loop()
}

// Notify 投递一条通知（非阻塞，队列满或已关闭时丢弃并记日志）
func (n *Notifier) Notify(notification StatusNotification) {
	if n.closing.Load() {
		n.logger.Warnf(context.Background(), "[Notifier] closing, dropped notification: order_no=%s %s->%s",
			notification.OrderNo, notification.From, notification.To)
		return
	}

	select {
	case n.input <- notification:
	default:
		n.logger.Warnf(context.Background(), "[Notifier] buffer full, dropped notification: order_no=%s %s->%s",
			notification.OrderNo, notification.From, notification.To)
	}
}

// Shutdown 优雅退出：处理完缓冲内的通知后返回
func (n *Notifier) Shutdown() {
	if n.closing.CAS(false, true) {
		close(n.shutdownCh)
		n.wg.Wait()
		n.logger.Infof(context.Background(), "[Notifier] shutdown complete")
	}
}

// loop 分发循环
func (n *Notifier) loop() {
	defer n.wg.Done()

	for {
		select {
		case notification := <-n.input:
			n.dispatch(notification)
		case <-n.shutdownCh:
			// 排空缓冲后退出
			for {
				select {
				case notification := <-n.input:
					n.dispatch(notification)
				default:
					return
				}
			}
		}
	}
}

// dispatch 投递到队列与广播通道（best effort）
func (n *Notifier) dispatch(notification StatusNotification) {
	ctx := context.Background()

	if n.queue != nil {
		if err := n.queue.Publish(notification); err != nil {
			n.logger.Warnf(ctx, "[Notifier] publish notify job failed: order_no=%s, error=%v", notification.OrderNo, err)
		}
	}

	if n.channel != nil {
		payload, err := json.Marshal(notification)
		if err != nil {
			n.logger.Errorf(ctx, "[Notifier] marshal notification failed: %v", err)
			return
		}
		if err := n.channel.PublishStatusChange(ctx, notification.OrderID, string(payload)); err != nil {
			n.logger.Warnf(ctx, "[Notifier] publish status channel failed: order_no=%s, error=%v", notification.OrderNo, err)
		}
	}
}
