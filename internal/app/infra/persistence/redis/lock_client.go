package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LockClient Redis 客户端封装：订单级互斥锁 + 状态变更广播
type LockClient struct {
	rdb *redis.Client
}

// NewLockClient 创建客户端，支持密码认证
func NewLockClient(addr, password string, db int) (*LockClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &LockClient{rdb: rdb}, nil
}

// releaseScript 只释放自己持有的锁（token 比对后删除）
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireOrderLock 获取订单级互斥锁
// 同一订单的并发状态变更必须串行化，避免两个请求基于同一旧状态各自判定转移合法
// 返回释放函数；锁被他人持有时返回 false
func (c *LockClient) AcquireOrderLock(ctx context.Context, orderID string, ttl time.Duration) (release func(), ok bool, err error) {
	key := fmt.Sprintf("lock:order:%s", orderID)
	token := uuid.New().String()

	ok, err = c.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	release = func() {
		// 释放失败只能等 TTL 过期，不向上传播
		releaseScript.Run(context.Background(), c.rdb, []string{key}, token)
	}
	return release, true, nil
}

// PublishStatusChange 向订单状态频道广播一条变更消息（客户端轮询之外的即时通道）
func (c *LockClient) PublishStatusChange(ctx context.Context, orderID string, payload string) error {
	channel := fmt.Sprintf("order:status:%s", orderID)
	return c.rdb.Publish(ctx, channel, payload).Err()
}

// Close 关闭连接
func (c *LockClient) Close() error {
	return c.rdb.Close()
}
