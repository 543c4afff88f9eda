package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"lss/backend/internal/app/config"
	"lss/backend/internal/app/domains/modules/mdorder"
	"lss/backend/internal/app/domains/repo/rporder"
	"lss/backend/internal/app/domains/services/svlifecycle"
	"lss/backend/internal/app/domains/services/svnotify"
	"lss/backend/internal/app/domains/services/svorder"
	"lss/backend/internal/app/infra/mq/lmstfy"
	redisinfra "lss/backend/internal/app/infra/persistence/redis"
	"lss/backend/internal/app/pkg/idgen"
	"lss/backend/internal/app/pkg/logger"
	orderhandler "lss/backend/internal/app/server/handlers/order"
	"lss/backend/internal/app/server/routers"
)

func main() {
	// 1. 加载配置
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

	ctx := context.Background()

	// 2. 初始化基础设施
	db, err := gorm.Open(mysql.Open(cfg.MySQL.DSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect mysql: %v", err)
	}
	if err := db.AutoMigrate(&rporder.OrderPO{}); err != nil {
		log.Fatalf("Failed to migrate orders table: %v", err)
	}

	lockClient, err := redisinfra.NewLockClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	defer lockClient.Close()

	notifyQueue := lmstfy.NewClient(cfg.Lmstfy.Host, cfg.Lmstfy.Port, cfg.Lmstfy.Namespace, cfg.Lmstfy.Token, cfg.Lmstfy.NotifyQueue)

	// 3. 组装领域服务
	orderRepo := rporder.NewOrderRepository(db)
	orderModule := mdorder.NewOrderModule(orderRepo)
	orderNoGen := idgen.NewOrderNoGenerator(cfg.Lifecycle.OrderNoPrefix)

	notifier := svnotify.NewNotifier(notifyQueue, lockClient, appLogger)
	notifier.Start()

	if cfg.Lifecycle.RelaxedTransitions {
		appLogger.Warnf(ctx, "lifecycle relaxed mode is ON: transition table checks are bypassed (terminal freeze still enforced)")
	}
	lifecycleService := svlifecycle.NewService(orderModule, lockClient, notifier, appLogger, cfg.Lifecycle.RelaxedTransitions)
	orderService := svorder.NewOrderService(orderModule, orderNoGen, appLogger)

	handler := orderhandler.NewOrderHandler(orderService, lifecycleService, appLogger)
	engine := routers.SetupRoutes(handler, appLogger)

	// 4. 启动 HTTP Server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	server := &http.Server{
		Addr:    addr,
		Handler: engine,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		appLogger.Infof(ctx, "Starting HTTP server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- err
		}
	}()

	// 5. 优雅停机处理
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigChan:
		appLogger.Infof(ctx, "Received shutdown signal, gracefully shutting down...")
		gracefulShutdown(server, notifier, appLogger)
	case err := <-serverErrChan:
		log.Fatalf("HTTP server error: %v", err)
	}

	appLogger.Infof(ctx, "Application stopped")
}

// gracefulShutdown 优雅停机：先停服务再排空通知缓冲
func gracefulShutdown(server *http.Server, notifier *svnotify.Notifier, appLogger logger.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Errorf(ctx, "HTTP server shutdown error: %v", err)
	}

	notifier.Shutdown()
}
