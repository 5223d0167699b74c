package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Log      LogConfig      `mapstructure:"log"`
	Enlist   EnlistConfig   `mapstructure:"enlist"`
	Term     TermConfig     `mapstructure:"term"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port         int        `mapstructure:"port"`
	BaseURL      string     `mapstructure:"base_url"`
	MaxBodyBytes int64      `mapstructure:"max_body_bytes"`
	CORS         CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL 数据库配置
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // 连接最大生命周期（分钟）
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // 空闲连接最大存活时间（分钟）
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT 认证配置
type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EnlistConfig 选课事务配置
type EnlistConfig struct {
	MaxAttempts     int           `mapstructure:"max_attempts"`      // 版本冲突最大尝试次数（含首次）
	RetryBackoff    time.Duration `mapstructure:"retry_backoff"`     // 冲突后首次等待，0 表示立即重试
	MaxRetryBackoff time.Duration `mapstructure:"max_retry_backoff"` // 等待上限
	RateLimit       int           `mapstructure:"rate_limit"`        // 每窗口允许的选课请求数
	RateWindow      time.Duration `mapstructure:"rate_window"`
}

// TermConfig 学期配置（日历导出使用）
type TermConfig struct {
	Name      string `mapstructure:"name"`
	StartDate string `mapstructure:"start_date"` // 2006-01-02，第一周周一
	Weeks     int    `mapstructure:"weeks"`
	Timezone  string `mapstructure:"timezone"`
}

// Start 解析学期开始日期
func (t *TermConfig) Start() (time.Time, error) {
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("无效的时区 %q: %w", t.Timezone, err)
	}
	start, err := time.ParseInLocation("2006-01-02", t.StartDate, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("无效的学期开始日期 %q: %w", t.StartDate, err)
	}
	return start, nil
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("ENLIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 关键配置校验 ──
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "enlistment")
	v.SetDefault("db.user", "enlistment")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Manila")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)  // 60分钟
	v.SetDefault("db.conn_max_idle_time", 30) // 30分钟

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.access_token_ttl", "2h")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("enlist.max_attempts", 10)
	v.SetDefault("enlist.retry_backoff", "5ms")
	v.SetDefault("enlist.max_retry_backoff", "100ms")
	v.SetDefault("enlist.rate_limit", 30)
	v.SetDefault("enlist.rate_window", "1m")

	v.SetDefault("term.name", "1st Semester")
	v.SetDefault("term.start_date", "2026-08-17")
	v.SetDefault("term.weeks", 18)
	v.SetDefault("term.timezone", "Asia/Manila")
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 不能为空")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("配置校验失败: auth.jwt_secret 长度不能少于 16 字符")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Enlist.MaxAttempts < 1 {
		return fmt.Errorf("配置校验失败: enlist.max_attempts 不能小于 1")
	}
	if c.Enlist.RetryBackoff < 0 || c.Enlist.MaxRetryBackoff < c.Enlist.RetryBackoff {
		return fmt.Errorf("配置校验失败: enlist.max_retry_backoff 不能小于 enlist.retry_backoff")
	}
	if c.Term.Weeks <= 0 {
		return fmt.Errorf("配置校验失败: term.weeks 必须大于 0")
	}
	if _, err := c.Term.Start(); err != nil {
		return fmt.Errorf("配置校验失败: %w", err)
	}
	return nil
}
