package idgen

import (
	"fmt"
	"sync"
	"time"
)

// OrderNoGenerator 订单号生成器
// 订单号格式: LS + 日期(8位) + 序列号(6位)，如 LS20260901000042
// 日期编码保证对人可读，序列号按天滚动
type OrderNoGenerator struct {
	mu       sync.Mutex
	prefix   string
	day      string // 当前序列号归属的日期 (yyyymmdd)
	sequence int64  // 当天已分配的序列号
	now      func() time.Time
}

const maxDailySequence = 999999

// NewOrderNoGenerator 创建订单号生成器
func NewOrderNoGenerator(prefix string) *OrderNoGenerator {
	if prefix == "" {
		prefix = "LS"
	}
	return &OrderNoGenerator{
		prefix: prefix,
		now:    time.Now,
	}
}

// Next 生成下一个订单号
func (g *OrderNoGenerator) Next() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	day := g.now().Format("20060102")
	if day != g.day {
		g.day = day
		g.sequence = 0
	}

	if g.sequence >= maxDailySequence {
		return "", fmt.Errorf("order number sequence exhausted for day %s", day)
	}
	g.sequence++

	return fmt.Sprintf("%s%s%06d", g.prefix, day, g.sequence), nil
}
