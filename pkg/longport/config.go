package longport

import (
	"os"
	"strings"

	"github.com/pkg/errors"
)

// 环境变量名（与长桥官方 SDK 的配置加载约定一致）
const (
	EnvAppKey      = "LONGPORT_APP_KEY"
	EnvAppSecret   = "LONGPORT_APP_SECRET"
	EnvAccessToken = "LONGPORT_ACCESS_TOKEN"
)

// Config 会话凭证配置
//
// 显式结构体是首选的配置通道：凭证直接传入会话工厂，多个会话
// 实例之间互不干扰。环境变量仅作为命令行场景下的兜底读取，
// 本包任何代码都不会写入进程环境。
type Config struct {
	AppKey      string // 应用 Key
	AppSecret   string // 应用 Secret
	AccessToken string // 访问令牌
}

// Validate 校验凭证是否齐全
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("longport: config is nil")
	}
	var missing []string
	if strings.TrimSpace(c.AppKey) == "" {
		missing = append(missing, "app_key")
	}
	if strings.TrimSpace(c.AppSecret) == "" {
		missing = append(missing, "app_secret")
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		missing = append(missing, "access_token")
	}
	if len(missing) > 0 {
		return errors.Errorf("longport: missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ConfigFromEnv 从环境变量读取凭证（命令行兜底用法）
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{
		AppKey:      strings.TrimSpace(os.Getenv(EnvAppKey)),
		AppSecret:   strings.TrimSpace(os.Getenv(EnvAppSecret)),
		AccessToken: strings.TrimSpace(os.Getenv(EnvAccessToken)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
