package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Data     DataConfig     `mapstructure:"data"`     // 数据目录与缓存配置
	Postgres PostgresConfig `mapstructure:"postgres"` // PostgreSQL数据仓库配置（可选）
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DataConfig 数据目录与缓存配置
type DataConfig struct {
	JSONDir      string `mapstructure:"json_dir"`      // 原始比赛JSON目录
	OutputDir    string `mapstructure:"output_dir"`    // 七张CSV表的输出目录
	ForceRefresh bool   `mapstructure:"force_refresh"` // 启动时强制重新解析原始数据
}

// PostgresConfig PostgreSQL数据仓库配置（enabled=false 时仅用CSV）
type PostgresConfig struct {
	Enabled         bool          `mapstructure:"enabled"`           // 是否镜像到PostgreSQL
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)

	// 4. 目录兜底（未配置时使用原始脚本的默认路径）
	if cfg.Data.JSONDir == "" {
		cfg.Data.JSONDir = "./data"
	}
	if cfg.Data.OutputDir == "" {
		cfg.Data.OutputDir = "./csv_output"
	}
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("FOOTBALL_JSON_DIR"); v != "" {
		cfg.Data.JSONDir = v
	}
	if v := os.Getenv("FOOTBALL_OUTPUT_DIR"); v != "" {
		cfg.Data.OutputDir = v
	}
}
