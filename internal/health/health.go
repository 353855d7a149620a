package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	statusConnected    = "connected"
	statusDisconnected = "disconnected"
)

// NATSConn *nats.Conn 满足
type NATSConn interface {
	IsConnected() bool
}

// RedisPinger *redis.Client 满足
type RedisPinger interface {
	Ping(ctx context.Context) *redis.StatusCmd
}

// DBPinger *pgxpool.Pool 满足
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Status 健康状态
type Status struct {
	NATS     string `json:"nats"`
	Redis    string `json:"redis"`
	Database string `json:"database"`
}

// Healthy 所有依赖是否都已连接
func (s *Status) Healthy() bool {
	return s.NATS == statusConnected &&
		s.Redis == statusConnected &&
		s.Database == statusConnected
}

// Checker 健康检查器
type Checker struct {
	nc          NATSConn
	redisClient RedisPinger
	db          DBPinger
	timeout     time.Duration
}

// NewChecker 创建健康检查器
func NewChecker(nc NATSConn, redisClient RedisPinger, db DBPinger) *Checker {
	return &Checker{
		nc:          nc,
		redisClient: redisClient,
		db:          db,
		timeout:     2 * time.Second,
	}
}

// Check 执行健康检查
func (h *Checker) Check(ctx context.Context) *Status {
	status := &Status{
		NATS:     statusDisconnected,
		Redis:    statusDisconnected,
		Database: statusDisconnected,
	}

	// 检查 NATS
	if h.nc.IsConnected() {
		status.NATS = statusConnected
	}

	// 检查 Redis
	redisCtx, redisCancel := context.WithTimeout(ctx, h.timeout)
	defer redisCancel()
	if err := h.redisClient.Ping(redisCtx).Err(); err == nil {
		status.Redis = statusConnected
	}

	// 检查 PostgreSQL
	dbCtx, dbCancel := context.WithTimeout(ctx, h.timeout)
	defer dbCancel()
	if err := h.db.Ping(dbCtx); err == nil {
		status.Database = statusConnected
	}

	return status
}

// IsHealthy 检查是否健康
func (h *Checker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx).Healthy()
}

// ServeHTTP HTTP 健康检查端点
func (h *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := h.Check(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if status.Healthy() {
		w.WriteHeader(http.StatusOK)
	} else {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(status)
}
