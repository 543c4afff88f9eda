package svnotify

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"lss/backend/internal/app/domains/entity/etorder"
	"lss/backend/internal/app/pkg/logger"
)

type memQueue struct {
	mu      sync.Mutex
	jobs    []StatusNotification
	failing bool
}

func (q *memQueue) Publish(data interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.failing {
		return errors.New("queue unavailable")
	}
	q.jobs = append(q.jobs, data.(StatusNotification))
	return nil
}

func (q *memQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

type memChannel struct {
	mu       sync.Mutex
	payloads map[string][]string
}

func (c *memChannel) PublishStatusChange(ctx context.Context, orderID string, payload string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.payloads == nil {
		c.payloads = make(map[string][]string)
	}
	c.payloads[orderID] = append(c.payloads[orderID], payload)
	return nil
}

func (c *memChannel) forOrder(orderID string) []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.payloads[orderID]...)
}

func sampleNotification(to etorder.Status) StatusNotification {
	return StatusNotification{
		OrderID:        "ord-7",
		OrderNo:        "LS20260314000007",
		UserID:         1001,
		From:           etorder.StatusWashing,
		To:             to,
		OperatorCoarse: etorder.CoarseProcessing,
		ShopperCoarse:  etorder.CoarseStatus(to),
		Operator:       "op-1",
		Time:           time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestNotifierDispatchesToBothSinks(t *testing.T) {
	queue := &memQueue{}
	channel := &memChannel{}
	n := NewNotifier(queue, channel, logger.NopLogger{})
	n.Start()

	n.Notify(sampleNotification(etorder.StatusDrying))
	n.Notify(sampleNotification(etorder.StatusIroning))
	n.Shutdown()

	if queue.count() != 2 {
		t.Errorf("queue jobs = %d, want 2", queue.count())
	}
	payloads := channel.forOrder("ord-7")
	if len(payloads) != 2 {
		t.Fatalf("channel payloads = %d, want 2", len(payloads))
	}

	var decoded StatusNotification
	if err := json.Unmarshal([]byte(payloads[0]), &decoded); err != nil {
		t.Fatalf("payload not valid json: %v", err)
	}
	if decoded.To != etorder.StatusDrying || decoded.OrderNo != "LS20260314000007" {
		t.Errorf("decoded payload = %+v", decoded)
	}
}

func TestNotifierShutdownDrainsBuffer(t *testing.T) {
	queue := &memQueue{}
	n := NewNotifier(queue, nil, logger.NopLogger{})

	// 先积压缓冲，再启动并立刻关闭：排空后才返回
	for i := 0; i < 10; i++ {
		n.Notify(sampleNotification(etorder.StatusDrying))
	}
	n.Start()
	n.Shutdown()

	if queue.count() != 10 {
		t.Errorf("queue jobs = %d, want 10 after drain", queue.count())
	}
}

func TestNotifierDropsAfterShutdown(t *testing.T) {
	queue := &memQueue{}
	n := NewNotifier(queue, nil, logger.NopLogger{})
	n.Start()
	n.Shutdown()

	n.Notify(sampleNotification(etorder.StatusDrying))
	if queue.count() != 0 {
		t.Errorf("queue jobs = %d, want 0 (dropped after shutdown)", queue.count())
	}

	// 重复 Shutdown 幂等，不 panic 不阻塞
	n.Shutdown()
}

func TestNotifierQueueFailureDoesNotBlockChannel(t *testing.T) {
	queue := &memQueue{failing: true}
	channel := &memChannel{}
	n := NewNotifier(queue, channel, logger.NopLogger{})
	n.Start()

	n.Notify(sampleNotification(etorder.StatusDrying))
	n.Shutdown()

	if len(channel.forOrder("ord-7")) != 1 {
		t.Errorf("channel payloads = %d, want 1 despite queue failure", len(channel.forOrder("ord-7")))
	}
}
