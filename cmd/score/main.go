package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"sudooom.score/internal/config"
	"sudooom.score/internal/handler"
	"sudooom.score/internal/health"
	"sudooom.score/internal/metrics"
	"sudooom.score/internal/middleware"
	scoreNats "sudooom.score/internal/nats"
	"sudooom.score/internal/ranking"
	"sudooom.score/internal/repository"
	"sudooom.score/internal/router"
	"sudooom.score/internal/service"
	"sudooom.score/internal/task"
	"sudooom.score/pkg/jwt"
	"sudooom.score/pkg/snowflake"
)

func main() {
	// 加载配置
	configPath := config.GetEnv("SCORE_CONFIG", "configs/config.yaml")
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("Failed to load config", "path", configPath, "error", err)
		os.Exit(1)
	}

	// 初始化日志
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.App.LogLevel),
	}))
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Invalid ranking timezone", "timezone", cfg.Ranking.Timezone, "error", err)
		os.Exit(1)
	}

	// 创建上下文
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 连接数据库
	db, err := connectDatabase(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL", "host", cfg.Database.Host)

	// 连接 Redis
	redisClient := connectRedis(cfg.Redis)
	defer redisClient.Close()
	logger.Info("Connected to Redis", "addr", cfg.Redis.Addr())

	// 连接 NATS
	natsClient, err := scoreNats.NewClient(cfg.NATS)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer natsClient.Close()
	logger.Info("Connected to NATS", "url", cfg.NATS.URL)

	// 初始化 JWT 服务
	jwtService := jwt.NewService(
		cfg.JWT.SecretKey,
		cfg.JWT.AccessExpire,
		cfg.JWT.RefreshExpire,
	)

	// 初始化雪花ID生成器
	sfNode, err := snowflake.NewNode(cfg.App.NodeID)
	if err != nil {
		logger.Error("Failed to create snowflake node", "error", err)
		os.Exit(1)
	}

	// 初始化 Repository
	groupRepo := repository.NewGroupRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	dedupRepo := repository.NewDedupRepository(redisClient, loc)

	// 初始化 Service
	publisher := scoreNats.NewEventPublisher(natsClient.Conn())
	rankingService := ranking.NewService(groupRepo, activityRepo, loc)
	nudgeService := service.NewNudgeService(dedupRepo, notificationRepo, userRepo, publisher, sfNode,
		service.NudgeContent{Title: cfg.Nudge.Title, Body: cfg.Nudge.Body})
	notificationService := service.NewNotificationService(notificationRepo)

	// 周榜任务
	var digest *task.WeeklyDigest
	if cfg.Digest.Enabled {
		digest = task.NewWeeklyDigest(groupRepo, rankingService, publisher, task.DigestOptions{
			Schedule:    cfg.Digest.Schedule,
			Concurrency: cfg.Digest.Concurrency,
			Location:    loc,
			OnReport: func(r *task.DigestReport) {
				metrics.RecordDigest(r.Published, r.Skipped, r.Failed, r.Duration)
			},
		})
		if err := digest.Start(); err != nil {
			logger.Error("Failed to start weekly digest", "error", err)
			os.Exit(1)
		}
	}

	// 限流
	var limiter *middleware.RateLimiter
	stopCleanup := make(chan struct{})
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		limiter.StartCleanup(time.Minute, stopCleanup)
	}

	// 设置路由
	r := router.SetupRouter(cfg, router.Deps{
		Validator:           jwtService,
		RateLimiter:         limiter,
		Health:              health.NewChecker(natsClient.Conn(), redisClient, db),
		RankingHandler:      handler.NewRankingHandler(rankingService),
		NudgeHandler:        handler.NewNudgeHandler(nudgeService),
		NotificationHandler: handler.NewNotificationHandler(notificationService),
	})

	// 启动服务器
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Score server started", "addr", srv.Addr, "mode", cfg.App.Mode, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	if digest != nil {
		if err := digest.Stop(shutdownCtx); err != nil {
			logger.Warn("Weekly digest did not stop in time", "error", err)
		}
	}
	close(stopCleanup)
	cancel()
	logger.Info("Server stopped")
}

// parseLevel 解析日志级别，默认 info
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// connectDatabase 连接 PostgreSQL
func connectDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = 10 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// connectRedis 连接 Redis
func connectRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}
