// config/config.go - 配置管理文件
package config

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	Conf *AppConfig
	once sync.Once
	k    *koanf.Koanf
)

// 存储后端
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongodb"
)

// flash 存储
const (
	FlashStoreMemory = "memory"
	FlashStoreRedis  = "redis"
)

// AppConfig 应用配置结构
type AppConfig struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Mongo      MongoConfig      `koanf:"mongo"`
	Redis      RedisConfig      `koanf:"redis"`
	Log        LogConfig        `koanf:"log"`
	JWT        JWTConfig        `koanf:"jwt"`
	Flash      FlashConfig      `koanf:"flash"`
	Metrics    MetricsConfig    `koanf:"metrics"`
	Discussion DiscussionConfig `koanf:"discussion"`
}

type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	Mode         string        `koanf:"mode"` // debug, release, test
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	FrontendURL  string        `koanf:"frontend_url"` // CORS 允许的来源
}

// Addr 监听地址
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Driver       string `koanf:"driver"` // postgres, mongodb
	Host         string `koanf:"host"`
	Port         int    `koanf:"port"`
	Username     string `koanf:"username"`
	Password     string `koanf:"password"`
	Database     string `koanf:"database"`
	SSLMode      bool   `koanf:"sslmode"`
	LogLevel     string `koanf:"log_level"` // 数据库日志级别
	MaxOpenConns int    `koanf:"max_open_conns"`
	MaxIdleConns int    `koanf:"max_idle_conns"`
	MaxLifetime  int    `koanf:"max_lifetime"` // 秒
}

type MongoConfig struct {
	URI         string `koanf:"uri"`
	Database    string `koanf:"database"`
	Timeout     int    `koanf:"timeout"` // 秒
	MaxPoolSize uint64 `koanf:"max_pool_size"`
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
	PoolSize int    `koanf:"pool_size"`
}

type LogConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json, console
	Output string `koanf:"output"` // stdout, file
	Path   string `koanf:"path"`   // 日志文件路径
}

type JWTConfig struct {
	Secret     string `koanf:"secret"`
	ExpireTime int    `koanf:"expire_time"` // 小时
}

type FlashConfig struct {
	Store      string `koanf:"store"` // memory, redis
	CookieName string `koanf:"cookie_name"`
	TTL        int    `koanf:"ttl"` // 秒
}

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Path    string `koanf:"path"`
}

type DiscussionConfig struct {
	BasePath   string   `koanf:"base_path"`
	Categories []string `koanf:"categories"`
}

// Load 加载配置文件
func Load(configPath string) error {
	var err error
	once.Do(func() {
		// 首先加载 .env 文件到环境变量
		if envErr := godotenv.Load(".env"); envErr != nil {
			log.Printf("警告: 无法加载 .env 文件: %v", envErr)
		}

		k = koanf.New(".")
		Conf, err = parse(k, configPath)
	})

	return err
}

// parse 依次加载配置文件与环境变量，并解析到结构体
func parse(k *koanf.Koanf, configPath string) (*AppConfig, error) {
	if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("加载配置文件失败: %w", err)
	}

	// 加载环境变量（会覆盖配置文件），SERVER_PORT -> server.port
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.Replace(strings.ToLower(s), "_", ".", 1)
	}), nil); err != nil {
		log.Printf("加载环境变量失败: %v", err)
	}

	conf := &AppConfig{}
	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyDefaults(conf)
	return conf, nil
}

// applyDefaults 填充零值配置
func applyDefaults(c *AppConfig) {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.Server.FrontendURL == "" {
		c.Server.FrontendURL = "http://localhost:5173"
	}
	// 转换时间单位
	c.Server.ReadTimeout = c.Server.ReadTimeout * time.Second
	c.Server.WriteTimeout = c.Server.WriteTimeout * time.Second

	if c.Database.Driver == "" {
		c.Database.Driver = DriverPostgres
	}
	if c.Mongo.Timeout == 0 {
		c.Mongo.Timeout = 10
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Log.Output == "" {
		c.Log.Output = "stdout"
	}
	if c.Flash.Store == "" {
		c.Flash.Store = FlashStoreMemory
	}
	if c.Flash.CookieName == "" {
		c.Flash.CookieName = "flash_session"
	}
	if c.Flash.TTL == 0 {
		c.Flash.TTL = 300
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Discussion.BasePath == "" {
		c.Discussion.BasePath = "/discussions"
	}
}

// Reload 重新加载配置，成功后替换 Conf
func Reload(configPath string) error {
	if k == nil {
		return fmt.Errorf("配置未初始化")
	}

	fresh := koanf.New(".")
	conf, err := parse(fresh, configPath)
	if err != nil {
		return err
	}

	k = fresh
	Conf = conf
	return nil
}
