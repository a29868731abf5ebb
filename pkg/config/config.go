package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// CredentialsConfig 长桥凭证配置
//
// 三项凭证可以写在配置文件里，也可以指向加密的 secret store
// （store_path + store_key），留空则由调用方回落到环境变量。
type CredentialsConfig struct {
	AppKey      string // 应用 Key
	AppSecret   string // 应用 Secret
	AccessToken string // 访问令牌
	StorePath   string // secret store 路径（可选）
	StoreKey    string // secret store 加密密钥，base64/hex 32 字节（可选）
}

// SubscriptionConfig 启动时订阅的合约
type SubscriptionConfig struct {
	Symbol   string // 合约代码
	Exchange string // 交易所（SEHK / NYSE）
}

// MonitorConfig 监控服务配置
type MonitorConfig struct {
	Enabled bool   // 是否启动监控 HTTP 服务
	Addr    string // 监听地址，默认 :18080
}

// RecorderConfig 历史数据落盘配置
type RecorderConfig struct {
	DBPath string // sqlite 文件路径，默认 data/history.db
}

// Config 应用配置
type Config struct {
	Credentials   CredentialsConfig    // 长桥凭证
	Subscriptions []SubscriptionConfig // 启动订阅列表
	Monitor       MonitorConfig        // 监控服务
	Recorder      RecorderConfig       // 历史数据落盘
	LogLevel      string               // 日志级别
	LogFile       string               // 日志文件路径（可选）
	DryRun        bool                 // 纸交易模式：使用替身会话，不触达真实券商
	QueryInterval int                  // 资金/持仓轮询间隔（秒），默认 30
}

// ConfigFile 配置文件结构（用于 YAML/JSON 解析）
type ConfigFile struct {
	Credentials struct {
		AppKey      string `yaml:"app_key" json:"app_key"`
		AppSecret   string `yaml:"app_secret" json:"app_secret"`
		AccessToken string `yaml:"access_token" json:"access_token"`
		StorePath   string `yaml:"store_path" json:"store_path"`
		StoreKey    string `yaml:"store_key" json:"store_key"`
	} `yaml:"credentials" json:"credentials"`
	Subscriptions []struct {
		Symbol   string `yaml:"symbol" json:"symbol"`
		Exchange string `yaml:"exchange" json:"exchange"`
	} `yaml:"subscriptions" json:"subscriptions"`
	Monitor struct {
		Enabled bool   `yaml:"enabled" json:"enabled"`
		Addr    string `yaml:"addr" json:"addr"`
	} `yaml:"monitor" json:"monitor"`
	Recorder struct {
		DBPath string `yaml:"db_path" json:"db_path"`
	} `yaml:"recorder" json:"recorder"`
	LogLevel      string `yaml:"log_level" json:"log_level"`
	LogFile       string `yaml:"log_file" json:"log_file"`
	DryRun        bool   `yaml:"dry_run" json:"dry_run"`
	QueryInterval int    `yaml:"query_interval" json:"query_interval"`
}

// LoadFromFile 从指定文件加载配置（支持 .yaml/.yml/.json）
func LoadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	var file ConfigFile
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(err, "parse yaml config")
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, errors.Wrap(err, "parse json config")
		}
	default:
		return nil, errors.Errorf("unsupported config format: %s", filepath.Ext(filePath))
	}

	cfg := &Config{
		Credentials: CredentialsConfig{
			AppKey:      file.Credentials.AppKey,
			AppSecret:   file.Credentials.AppSecret,
			AccessToken: file.Credentials.AccessToken,
			StorePath:   file.Credentials.StorePath,
			StoreKey:    file.Credentials.StoreKey,
		},
		Monitor: MonitorConfig{
			Enabled: file.Monitor.Enabled,
			Addr:    file.Monitor.Addr,
		},
		Recorder: RecorderConfig{
			DBPath: file.Recorder.DBPath,
		},
		LogLevel:      file.LogLevel,
		LogFile:       file.LogFile,
		DryRun:        file.DryRun,
		QueryInterval: file.QueryInterval,
	}
	for _, sub := range file.Subscriptions {
		cfg.Subscriptions = append(cfg.Subscriptions, SubscriptionConfig{
			Symbol:   sub.Symbol,
			Exchange: sub.Exchange,
		})
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default 返回默认配置（未提供配置文件时使用）
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Monitor.Addr == "" {
		c.Monitor.Addr = ":18080"
	}
	if c.Recorder.DBPath == "" {
		c.Recorder.DBPath = "data/history.db"
	}
	if c.QueryInterval <= 0 {
		c.QueryInterval = 30
	}
}
