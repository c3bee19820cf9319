package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀, 如 GBFAN_SERVER_ADDR 覆盖 server.addr
const EnvPrefix = "GBFAN"

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Logging LoggingConfig `mapstructure:"logging"`
	Server  ServerConfig  `mapstructure:"server"`
	NATS    NATSConfig    `mapstructure:"nats"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Record  RecordConfig  `mapstructure:"record"`
}

type AppConfig struct {
	Name string `mapstructure:"name"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// MaxInFlight 同时处理的算番请求上限, 0 不限
	MaxInFlight    int      `mapstructure:"max_in_flight"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// NATSConfig 算番请求的队列订阅
type NATSConfig struct {
	Enabled       bool          `mapstructure:"enabled"`
	URL           string        `mapstructure:"url"`
	MaxReconnects int           `mapstructure:"max_reconnects"`
	ReconnectWait time.Duration `mapstructure:"reconnect_wait"`
	Subject       string        `mapstructure:"subject"`
	Queue         string        `mapstructure:"queue"`
	Workers       int           `mapstructure:"workers"`
	QueueSize     int           `mapstructure:"queue_size"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	PoolSize int           `mapstructure:"pool_size"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RecordConfig 牌谱下载与统计
type RecordConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	DataDir      string        `mapstructure:"data_dir"`
	Cookie       string        `mapstructure:"cookie"`
	Keyword      string        `mapstructure:"keyword"`
	HistoryPages int           `mapstructure:"history_pages"`
	Workers      int           `mapstructure:"workers"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Load 从指定路径加载配置, path 为空时只用默认值和环境变量
// 当前目录下的 .env 会先被载入环境变量, 不存在时忽略
func Load(path string) (*Config, error) {
	return LoadWithFlags(path, nil)
}

// LoadWithFlags 同 Load, 另将命令行参数绑定到配置项, 如 "record.workers" -> --workers
// 显式给出的参数优先于环境变量和配置文件
func LoadWithFlags(path string, flags map[string]*pflag.Flag) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// 历史记录接口沿用原有的环境变量名
	if err := v.BindEnv("record.cookie", EnvPrefix+"_RECORD_COOKIE", "TZI_HISTORY_COOKIE"); err != nil {
		return nil, err
	}

	for key, flag := range flags {
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gbfan")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.max_in_flight", 256)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("nats.enabled", false)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", 2*time.Second)
	v.SetDefault("nats.subject", "gbfan.compute")
	v.SetDefault("nats.queue", "gbfan-workers")
	v.SetDefault("nats.workers", 4)
	v.SetDefault("nats.queue_size", 1024)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.ttl", 24*time.Hour)

	v.SetDefault("record.base_url", "https://tziakcha.net")
	v.SetDefault("record.data_dir", "data")
	v.SetDefault("record.keyword", "竹")
	v.SetDefault("record.history_pages", 100)
	v.SetDefault("record.workers", 4)
	v.SetDefault("record.timeout", 30*time.Second)
}
