package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/qq148376839/vnpy/internal/domain"
	"github.com/qq148376839/vnpy/internal/events"
	"github.com/qq148376839/vnpy/internal/gateway"
	"github.com/qq148376839/vnpy/internal/monitor"
	"github.com/qq148376839/vnpy/pkg/config"
	"github.com/qq148376839/vnpy/pkg/logger"
	"github.com/qq148376839/vnpy/pkg/longport"
	"github.com/qq148376839/vnpy/pkg/secretstore"
)

var log = logrus.WithField("component", "main")

func main() {
	// 加载 .env（尽力而为），缺失时回落到真实环境变量
	_ = godotenv.Load()

	var (
		configPath = flag.String("config", "", "配置文件路径（yaml/json），留空使用默认配置")
		dryRun     = flag.Bool("dry-run", false, "纸交易模式：使用替身会话，不触达真实券商")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	if *dryRun {
		cfg.DryRun = true
	}

	if err := initLogger(cfg); err != nil {
		fatal(err)
	}

	engine := events.NewEngine()
	registerPrinters(engine)

	factory, mockQuote, err := resolveFactory(cfg)
	if err != nil {
		fatal(err)
	}

	gw := gateway.NewLongPortGateway(engine, factory)

	setting, err := resolveCredentials(cfg)
	if err != nil {
		fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := gw.Connect(ctx, setting); err != nil {
		fatal(err)
	}
	defer gw.Close()

	for _, sub := range cfg.Subscriptions {
		req := &domain.SubscribeRequest{
			Symbol:   sub.Symbol,
			Exchange: domain.Exchange(sub.Exchange),
		}
		if err := gw.Subscribe(ctx, req); err != nil {
			log.Errorf("订阅 %s.%s 失败: %v", sub.Symbol, sub.Exchange, err)
		}
	}

	if err := gw.QueryAccount(ctx); err != nil {
		log.Errorf("查询账户失败: %v", err)
	}
	if err := gw.QueryPosition(ctx); err != nil {
		log.Errorf("查询持仓失败: %v", err)
	}

	monitorSrv := startMonitor(cfg, engine, gw)

	// 纸交易模式下周期性生成模拟行情，便于联调下游
	if cfg.DryRun && mockQuote != nil {
		go simulateQuotes(ctx, cfg, mockQuote)
	}

	go pollLoop(ctx, gw, time.Duration(cfg.QueryInterval)*time.Second)

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	<-stopCh
	cancel()

	if monitorSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = monitorSrv.Shutdown(shutdownCtx)
	}

	fmt.Println("gateway stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

func initLogger(cfg *config.Config) error {
	if cfg.LogFile == "" {
		return logger.InitDefault()
	}
	return logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	})
}

// resolveFactory 挑选会话工厂：dry-run 用替身，否则用已注册的生产工厂
func resolveFactory(cfg *config.Config) (longport.SessionFactory, *longport.MockQuoteContext, error) {
	if cfg.DryRun {
		factory, mockQuote, _ := longport.MockFactory()
		log.Warn("纸交易模式已启用，所有会话均为替身实现")
		return factory, mockQuote, nil
	}
	factory, err := longport.DefaultSessionFactory()
	if err != nil {
		return nil, nil, err
	}
	return factory, nil, nil
}

// resolveCredentials 按 配置文件 → secret store → 环境变量 的顺序取凭证
func resolveCredentials(cfg *config.Config) (map[string]string, error) {
	cred := cfg.Credentials
	if cred.AppKey != "" && cred.AppSecret != "" && cred.AccessToken != "" {
		return settingFrom(cred.AppKey, cred.AppSecret, cred.AccessToken), nil
	}

	if cred.StorePath != "" {
		keyBytes, err := secretstore.ParseKey(cred.StoreKey)
		if err != nil {
			return nil, err
		}
		ss, err := secretstore.Open(secretstore.OpenOptions{
			Path:          cred.StorePath,
			EncryptionKey: keyBytes,
			ReadOnly:      true,
		})
		if err != nil {
			return nil, err
		}
		defer ss.Close()
		appKey, appSecret, accessToken, err := ss.Credentials()
		if err != nil {
			return nil, err
		}
		return settingFrom(appKey, appSecret, accessToken), nil
	}

	envCfg, err := longport.ConfigFromEnv()
	if err != nil {
		// 纸交易不触达真实券商，凭证缺失时用占位值
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

// registerPrinters 把各类事件打到日志，方便人工观察
func registerPrinters(engine *events.Engine) {
	engine.Register(events.TypeTick, func(evt events.Event) {
		if tick, ok := evt.Data.(*domain.Tick); ok {
			log.Infof("行情 %s 最新价=%.4f 成交量=%.0f", tick.VTSymbol(), tick.LastPrice, tick.Volume)
		}
	})
	engine.Register(events.TypeOrder, func(evt events.Event) {
		if order, ok := evt.Data.(*domain.Order); ok {
			log.Infof("订单 %s %s %s 价格=%.4f 数量=%.0f 成交=%.0f 状态=%s",
				order.VTOrderID(), order.VTSymbol(), order.Direction,
				order.Price, order.Volume, order.Traded, order.Status)
		}
	})
	engine.Register(events.TypeAccount, func(evt events.Event) {
		if account, ok := evt.Data.(*domain.Account); ok {
			log.Infof("账户 %s 余额=%.2f 冻结=%.2f", account.VTAccountID(), account.Balance, account.Frozen)
		}
	})
	engine.Register(events.TypePosition, func(evt events.Event) {
		if pos, ok := evt.Data.(*domain.Position); ok {
			log.Infof("持仓 %s.%s %s 数量=%.0f 均价=%.4f 盈亏=%.2f",
				pos.Symbol, pos.Exchange, pos.Direction, pos.Volume, pos.Price, pos.PnL)
		}
	})
	engine.Register(events.TypeLog, func(evt events.Event) {
		if entry, ok := evt.Data.(*domain.Log); ok {
			log.Infof("[%s] %s", entry.GatewayName, entry.Msg)
		}
	})
}

func startMonitor(cfg *config.Config, engine *events.Engine, gw *gateway.LongPortGateway) *http.Server {
	if !cfg.Monitor.Enabled {
		return nil
	}
	srv := monitor.New(monitor.Config{Addr: cfg.Monitor.Addr}, engine, gw)
	return srv.Serve()
}

// pollLoop 周期性轮询资金与持仓
func pollLoop(ctx context.Context, gw *gateway.LongPortGateway, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := gw.QueryAccount(ctx); err != nil {
				log.Errorf("轮询账户失败: %v", err)
			}
			if err := gw.QueryPosition(ctx); err != nil {
				log.Errorf("轮询持仓失败: %v", err)
			}
		}
	}
}

// simulateQuotes 纸交易模式下为已订阅合约生成随机游走的模拟行情
func simulateQuotes(ctx context.Context, cfg *config.Config, mockQuote *longport.MockQuoteContext) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	last := make(map[string]float64)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, sub := range cfg.Subscriptions {
				sdkSymbol := gateway.ConvertSymbol(sub.Symbol, domain.Exchange(sub.Exchange))
				price := last[sdkSymbol]
				if price == 0 {
					price = 100
				}
				price += float64(time.Now().UnixNano()%201-100) / 1000
				last[sdkSymbol] = price
				now := time.Now()
				mockQuote.SimulateQuote(sdkSymbol, &longport.PushQuote{
					Symbol:    sdkSymbol,
					LastDone:  decimal.NewFromFloat(price),
					Open:      decimal.NewFromFloat(price),
					High:      decimal.NewFromFloat(price * 1.01),
					Low:       decimal.NewFromFloat(price * 0.99),
					PrevClose: decimal.NewFromFloat(price),
					Volume:    now.Unix() % 10000,
					Timestamp: now,
				})
			}
		}
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err.Error())
	os.Exit(1)
}
