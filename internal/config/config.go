package config

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Ranking   RankingConfig   `mapstructure:"ranking"`
	Digest    DigestConfig    `mapstructure:"digest"`
	Nudge     NudgeConfig     `mapstructure:"nudge"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Port     int    `mapstructure:"port"`
	Mode     string `mapstructure:"mode"`
	LogLevel string `mapstructure:"log_level"`
	NodeID   int64  `mapstructure:"node_id"`
}

type JWTConfig struct {
	SecretKey     string        `mapstructure:"secret_key"`
	AccessExpire  time.Duration `mapstructure:"access_expire"`
	RefreshExpire time.Duration `mapstructure:"refresh_expire"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type NATSConfig struct {
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
}

// RankingConfig 周排名配置
type RankingConfig struct {
	// Timezone 周边界与群组创建日期按该时区的自然日计算
	Timezone string `mapstructure:"timezone"`
}

// DigestConfig 每周排名推送任务配置
type DigestConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Schedule    string `mapstructure:"schedule"`
	Concurrency int    `mapstructure:"concurrency"`
}

// NudgeConfig 提醒推送文案
type NudgeConfig struct {
	Title string `mapstructure:"title"`
	Body  string `mapstructure:"body"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute"`
	Burst             int  `mapstructure:"burst"`
}

// Load 从指定路径加载配置
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// 从环境变量覆盖配置
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "score-api")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.node_id", 1)
	v.SetDefault("jwt.access_expire", 2*time.Hour)
	v.SetDefault("jwt.refresh_expire", 7*24*time.Hour)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", 2*time.Second)
	v.SetDefault("ranking.timezone", "Asia/Seoul")
	v.SetDefault("digest.enabled", true)
	v.SetDefault("digest.schedule", "5 0 * * MON")
	v.SetDefault("digest.concurrency", 8)
	v.SetDefault("nudge.title", "Nudge!")
	v.SetDefault("nudge.body", "A friend is waiting for you to work out today.")
	v.SetDefault("rate_limit.requests_per_minute", 120)
	v.SetDefault("rate_limit.burst", 20)
}

// applyEnv 从环境变量覆盖配置
func (c *Config) applyEnv() {
	// App
	c.App.Port = GetEnvInt("SCORE_PORT", c.App.Port)
	c.App.LogLevel = GetEnv("LOG_LEVEL", c.App.LogLevel)

	// JWT
	c.JWT.SecretKey = GetEnv("JWT_SECRET", c.JWT.SecretKey)
	c.JWT.AccessExpire = GetEnvDuration("JWT_ACCESS_EXPIRE", c.JWT.AccessExpire)

	// Database
	c.Database.Host = GetEnv("POSTGRES_HOST", c.Database.Host)
	c.Database.Port = GetEnvInt("POSTGRES_PORT", c.Database.Port)
	c.Database.User = GetEnv("POSTGRES_USER", c.Database.User)
	c.Database.Password = GetEnv("POSTGRES_PASSWORD", c.Database.Password)
	c.Database.Name = GetEnv("POSTGRES_DB", c.Database.Name)
	c.Database.MaxOpenConns = GetEnvInt("POSTGRES_MAX_OPEN_CONNS", c.Database.MaxOpenConns)
	c.Database.MaxIdleConns = GetEnvInt("POSTGRES_MAX_IDLE_CONNS", c.Database.MaxIdleConns)

	// Redis
	c.Redis.Host = GetEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = GetEnvInt("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = GetEnv("REDIS_PASSWORD", c.Redis.Password)
	c.Redis.DB = GetEnvInt("REDIS_DB", c.Redis.DB)

	// NATS
	c.NATS.URL = GetEnv("NATS_URL", c.NATS.URL)

	// Ranking / Digest
	c.Ranking.Timezone = GetEnv("RANKING_TIMEZONE", c.Ranking.Timezone)
	c.Digest.Enabled = GetEnvBool("DIGEST_ENABLED", c.Digest.Enabled)
	c.Digest.Schedule = GetEnv("DIGEST_SCHEDULE", c.Digest.Schedule)
}

// Validate 校验必填配置
func (c *Config) Validate() error {
	if c.JWT.SecretKey == "" {
		return fmt.Errorf("config: jwt.secret_key is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Digest.Concurrency <= 0 {
		return fmt.Errorf("config: digest.concurrency must be positive, got %d", c.Digest.Concurrency)
	}
	return nil
}

// Location 排名使用的时区
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Ranking.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: invalid ranking.timezone %q: %w", c.Ranking.Timezone, err)
	}
	return loc, nil
}

// DSN PostgreSQL 连接串
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User,
		c.Password,
		c.Host,
		c.Port,
		c.Name,
	)
}

// Addr Redis 地址
func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
