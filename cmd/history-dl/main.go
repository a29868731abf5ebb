package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/qq148376839/vnpy/internal/domain"
	"github.com/qq148376839/vnpy/internal/events"
	"github.com/qq148376839/vnpy/internal/gateway"
	"github.com/qq148376839/vnpy/internal/recorder"
	"github.com/qq148376839/vnpy/pkg/config"
	"github.com/qq148376839/vnpy/pkg/logger"
	"github.com/qq148376839/vnpy/pkg/longport"
)

// 历史 K 线下载器：对配置的每个合约拉取最近一段 K 线并落库到 sqlite。
func main() {
	_ = godotenv.Load()

	var (
		configPath  = flag.String("config", "", "配置文件路径（yaml/json）")
		intervalStr = flag.String("interval", string(domain.IntervalDaily), "K线周期: 1m / 1h / d")
		dbPath      = flag.String("db", "", "输出 sqlite 路径，默认取配置 recorder.db_path")
		dryRun      = flag.Bool("dry-run", false, "使用替身会话生成样例数据")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	if *dryRun {
		cfg.DryRun = true
	}
	if *dbPath == "" {
		*dbPath = cfg.Recorder.DBPath
	}

	if err := logger.InitDefault(); err != nil {
		fatal(err)
	}

	factory, err := resolveFactory(cfg)
	if err != nil {
		fatal(err)
	}

	engine := events.NewEngine()
	gw := gateway.NewLongPortGateway(engine, factory)

	setting, err := resolveCredentials(cfg)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := gw.Connect(ctx, setting); err != nil {
		fatal(err)
	}
	defer gw.Close()

	store, err := recorder.Open(*dbPath)
	if err != nil {
		fatal(err)
	}
	defer store.Close()

	interval := domain.Interval(*intervalStr)
	total := 0
	for _, sub := range cfg.Subscriptions {
		req := &domain.HistoryRequest{
			Symbol:   sub.Symbol,
			Exchange: domain.Exchange(sub.Exchange),
			Interval: interval,
			End:      time.Now(),
		}
		bars, err := gw.QueryHistory(ctx, req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "拉取 %s.%s 失败: %v\n", sub.Symbol, sub.Exchange, err)
			continue
		}
		if err := store.SaveBars(ctx, bars); err != nil {
			fatal(err)
		}
		total += len(bars)
		fmt.Fprintf(os.Stderr, "%s.%s: %d 根 K 线\n", sub.Symbol, sub.Exchange, len(bars))
	}

	fmt.Fprintf(os.Stderr, "共写入 %d 根 K 线到 %s\n", total, *dbPath)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

func resolveFactory(cfg *config.Config) (longport.SessionFactory, error) {
	if cfg.DryRun {
		factory, _, _ := longport.MockFactory()
		return factory, nil
	}
	return longport.DefaultSessionFactory()
}

func resolveCredentials(cfg *config.Config) (map[string]string, error) {
	cred := cfg.Credentials
	if cred.AppKey != "" && cred.AppSecret != "" && cred.AccessToken != "" {
		return settingFrom(cred.AppKey, cred.AppSecret, cred.AccessToken), nil
	}
	envCfg, err := longport.ConfigFromEnv()
	if err != nil {
		if cfg.DryRun {
			return settingFrom("paper", "paper", "paper"), nil
		}
		return nil, err
	}
	return settingFrom(envCfg.AppKey, envCfg.AppSecret, envCfg.AccessToken), nil
}

func settingFrom(appKey, appSecret, accessToken string) map[string]string {
	return map[string]string{
		gateway.SettingAppKey:      appKey,
		gateway.SettingAppSecret:   appSecret,
		gateway.SettingAccessToken: accessToken,
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
