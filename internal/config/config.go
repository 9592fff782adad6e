// Package config 提供应用程序的配置加载和管理功能
// 使用 TOML 格式的配置文件，支持多路径查找；.env 与 PHOTOREG_* 环境变量可覆盖文件中的值
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/BurntSushi/toml" // TOML 配置文件解析库
	"github.com/joho/godotenv"   // .env 文件加载

	"photo_registration_server/pkg/constants"
)

// MainConfig 主配置，包含应用基本信息
type MainConfig struct {
	AppName     string `toml:"appName"`     // 应用名称，用于日志标识等
	Host        string `toml:"host"`        // 服务器监听地址，如 "0.0.0.0"
	Port        int    `toml:"port"`        // 服务器监听端口，如 8000
	Mode        string `toml:"mode"`        // 运行模式："dev" 或 "release"
	Locale      string `toml:"locale"`      // 校验错误信息语言："en" 或 "zh"
	TLSRedirect bool   `toml:"tlsRedirect"` // 是否将 HTTP 重定向到 HTTPS（由 Nginx 处理 SSL 时关闭）
}

// LogConfig 日志配置，使用 lumberjack 进行日志轮转
type LogConfig struct {
	LogPath    string `toml:"logPath"`    // 日志文件存储目录
	FileName   string `toml:"fileName"`   // 日志文件名
	MaxSize    int    `toml:"maxSize"`    // 单个日志文件最大大小（MB）
	MaxBackups int    `toml:"maxBackups"` // 保留旧日志文件的最大个数
	MaxAge     int    `toml:"maxAge"`     // 保留旧日志文件的最大天数
	Level      string `toml:"level"`      // 日志级别：debug, info, warn, error
}

// RedisConfig Redis 连接配置（draftConfig.store = "redis" 时使用）
type RedisConfig struct {
	Host     string `toml:"host"`     // Redis 服务器地址
	Port     int    `toml:"port"`     // Redis 端口，默认 6379
	Password string `toml:"password"` // Redis 密码，无密码留空
	Db       int    `toml:"db"`       // Redis 数据库编号，默认 0
}

// Addr 返回 host:port
func (r RedisConfig) Addr() string {
	return r.Host + ":" + strconv.Itoa(r.Port)
}

// DraftConfig 表单草稿存储配置
type DraftConfig struct {
	Store string `toml:"store"` // "memory" 或 "redis"
	TTL   int    `toml:"ttl"`   // 草稿有效期（分钟）
}

// FormsSinkConfig Google Forms 提交配置
// 各字段对应表单预填链接中的 entry.NNN 标识，每个部署不同
type FormsSinkConfig struct {
	BaseURL               string `toml:"baseURL"` // 默认 https://docs.google.com/forms/d/e
	FormID                string `toml:"formID"`
	NameEntry             string `toml:"nameEntry"`
	EmailEntry            string `toml:"emailEntry"`
	CategoryEntry         string `toml:"categoryEntry"`
	CodeEntry             string `toml:"codeEntry"`
	AdditionalEmailsEntry string `toml:"additionalEmailsEntry"`
	PhoneEntry            string `toml:"phoneEntry"`
	NotesEntry            string `toml:"notesEntry"`
}

// ScriptSinkConfig Google Apps Script Web App 提交配置
type ScriptSinkConfig struct {
	URL string `toml:"url"`
}

// KafkaSinkConfig Kafka 提交配置
type KafkaSinkConfig struct {
	HostPort string `toml:"hostPort"` // Kafka 服务器地址，如 "localhost:9092"
	Topic    string `toml:"topic"`    // 报名消息主题
}

// SinkConfig 提交通道配置
type SinkConfig struct {
	Mode    string           `toml:"mode"`    // "forms" | "script" | "kafka" | "log"
	Timeout int              `toml:"timeout"` // 单次提交超时（秒）
	Forms   FormsSinkConfig  `toml:"forms"`
	Script  ScriptSinkConfig `toml:"script"`
	Kafka   KafkaSinkConfig  `toml:"kafka"`
}

// CorsConfig 跨域配置
type CorsConfig struct {
	AllowOrigins []string `toml:"allowOrigins"` // 为空时允许所有来源
}

// Config 应用程序总配置，聚合所有子配置
type Config struct {
	MainConfig  `toml:"mainConfig"`
	LogConfig   `toml:"logConfig"`
	RedisConfig `toml:"redisConfig"`
	DraftConfig `toml:"draftConfig"`
	SinkConfig  `toml:"sinkConfig"`
	CorsConfig  `toml:"corsConfig"`
}

var (
	config *Config
	once   sync.Once
)

// searchPaths 候选配置文件路径（优先加载本地配置）
var searchPaths = []string{
	"configs/config_local.toml",
	"configs/config.toml",
	"../../configs/config_local.toml", // 从子目录运行时的路径
	"../../configs/config.toml",
}

// Default 返回带默认值的配置
func Default() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName: "photo_registration_server",
			Host:    "0.0.0.0",
			Port:    8000,
			Mode:    "dev",
			Locale:  "en",
		},
		LogConfig: LogConfig{
			LogPath: "logs",
			Level:   "info",
		},
		RedisConfig: RedisConfig{
			Host: "127.0.0.1",
			Port: 6379,
		},
		DraftConfig: DraftConfig{
			Store: "memory",
			TTL:   constants.DRAFT_TTL_MINUTES,
		},
		SinkConfig: SinkConfig{
			Mode:    "log",
			Timeout: constants.SINK_TIMEOUT_SECONDS,
			Forms: FormsSinkConfig{
				BaseURL: "https://docs.google.com/forms/d/e",
			},
		},
	}
}

// LoadConfig 从候选路径加载配置文件，找到第一个可用的即停止
// 随后应用环境变量覆盖
func LoadConfig(paths ...string) (*Config, error) {
	// .env 不存在是正常情况
	_ = godotenv.Load()

	if len(paths) == 0 {
		paths = searchPaths
	}
	cfg := Default()
	var loaded bool
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		loaded = true
		break
	}
	applyEnv(cfg)
	if !loaded {
		return cfg, fmt.Errorf("could not find configuration file in any of the search paths")
	}
	return cfg, nil
}

// applyEnv 使用 PHOTOREG_* 环境变量覆盖配置
func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("PHOTOREG_HOST", &cfg.MainConfig.Host)
	setInt("PHOTOREG_PORT", &cfg.MainConfig.Port)
	setString("PHOTOREG_MODE", &cfg.MainConfig.Mode)
	setString("PHOTOREG_LOG_LEVEL", &cfg.LogConfig.Level)
	setString("PHOTOREG_DRAFT_STORE", &cfg.DraftConfig.Store)
	setString("PHOTOREG_REDIS_HOST", &cfg.RedisConfig.Host)
	setInt("PHOTOREG_REDIS_PORT", &cfg.RedisConfig.Port)
	setString("PHOTOREG_REDIS_PASSWORD", &cfg.RedisConfig.Password)
	setString("PHOTOREG_SINK_MODE", &cfg.SinkConfig.Mode)
	setInt("PHOTOREG_SINK_TIMEOUT", &cfg.SinkConfig.Timeout)
	setString("PHOTOREG_FORMS_ID", &cfg.SinkConfig.Forms.FormID)
	setString("PHOTOREG_SCRIPT_URL", &cfg.SinkConfig.Script.URL)
	setString("PHOTOREG_KAFKA_HOSTPORT", &cfg.SinkConfig.Kafka.HostPort)
}

// GetConfig 获取全局配置实例（单例模式）
// 首次调用时会自动加载配置文件，找不到文件时使用默认值
func GetConfig() *Config {
	once.Do(func() {
		cfg, _ := LoadConfig()
		if cfg == nil {
			cfg = Default()
		}
		config = cfg
	})
	return config
}
