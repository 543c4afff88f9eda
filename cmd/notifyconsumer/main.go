package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lss/backend/internal/app/config"
	"lss/backend/internal/app/domains/services/svnotify"
	"lss/backend/internal/app/infra/mq/lmstfy"
	"lss/backend/internal/app/pkg/logger"
)

// 通知消费进程：从队列取出已提交的状态变更，推送给用户侧
// 推送通道（短信/小程序订阅消息）由这里对接，API 进程只负责投递任务
func main() {
	cfg, err := config.LoadDefault()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Config validation failed: %v", err)
	}

	appLogger, err := logger.NewZapLogger(cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer appLogger.Sync()

	queue := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token, cfg.Lmstfy.NotifyQueue)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		appLogger.Infof(ctx, "Received shutdown signal, stopping consumer...")
		cancel()
	}()

	appLogger.Infof(ctx, "Notify consumer started: queue=%s", cfg.Lmstfy.NotifyQueue)

	for {
		select {
		case <-ctx.Done():
			appLogger.Infof(context.Background(), "Notify consumer stopped")
			return
		default:
			if err := consumeOne(ctx, queue, appLogger); err != nil {
				appLogger.Errorf(ctx, "consume notify job failed: %v", err)
				time.Sleep(time.Second)
			}
		}
	}
}

// consumeOne 消费一条通知任务
// 载荷解析失败直接 Ack 丢弃，避免毒消息反复投递
func consumeOne(ctx context.Context, queue *lmstfy.Client, appLogger logger.Logger) error {
	job, err := queue.Consume(3, 30)
	if err != nil {
		return err
	}
	if job == nil {
		return nil
	}

	var notification svnotify.StatusNotification
	if err := json.Unmarshal(job.Data, &notification); err != nil {
		appLogger.Errorf(ctx, "bad notify payload, discarding: job_id=%s, error=%v", job.ID, err)
		return queue.Ack(job.ID)
	}

	// TODO: 接入小程序订阅消息推送，当前仅落日志
	appLogger.Infof(ctx, "order status push: order_no=%s user_id=%d %s->%s shopper_status=%s",
		notification.OrderNo, notification.UserID, notification.From, notification.To, notification.ShopperCoarse)

	return queue.Ack(job.ID)
}
