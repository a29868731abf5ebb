package longport

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// QuoteHandler 行情推送回调
type QuoteHandler func(symbol string, quote *PushQuote)

// OrderChangedHandler 订单状态推送回调
type OrderChangedHandler func(order *PushOrderChanged)

// QuoteContext 行情会话接口
//
// 只声明网关用到的 SDK 方法，便于在测试中注入替身。
// 连接管理、推送传输和鉴权由会话实现方（官方 SDK）负责，
// 推送回调在会话自己的 goroutine 上执行。
type QuoteContext interface {
	// Subscribe 按订阅类型订阅一组合约的行情
	Subscribe(ctx context.Context, symbols []string, subTypes []SubType, isFirstPush bool) error
	// Candlesticks 查询 K 线
	Candlesticks(ctx context.Context, symbol string, period Period, count int32, adjust AdjustType) ([]*Candlestick, error)
	// OnQuote 注册行情推送回调（重复调用覆盖之前的回调）
	OnQuote(handler QuoteHandler)
	// Close 关闭会话
	Close() error
}

// TradeContext 交易会话接口
type TradeContext interface {
	// SubmitOrder 提交委托
	SubmitOrder(ctx context.Context, req *SubmitOrderRequest) (*SubmitOrderResponse, error)
	// CancelOrder 按券商订单 ID 撤单
	CancelOrder(ctx context.Context, orderID string) error
	// AccountBalance 查询账户资金
	AccountBalance(ctx context.Context) ([]*AccountBalance, error)
	// StockPositions 查询股票持仓（symbols 为空查全部）
	StockPositions(ctx context.Context, symbols []string) ([]*StockPositionChannel, error)
	// OnOrderChanged 注册订单状态推送回调
	OnOrderChanged(handler OrderChangedHandler)
	// Close 关闭会话
	Close() error
}

// SessionFactory 用凭证构造一对行情/交易会话
//
// 生产环境绑定官方 SDK；测试与 dry-run 使用 MockFactory。
type SessionFactory func(cfg *Config) (QuoteContext, TradeContext, error)

var (
	factoryMu   sync.RWMutex
	liveFactory SessionFactory
)

// RegisterSessionFactory 注册生产会话工厂
//
// 由官方 SDK 的绑定包在 init 中调用，模式同 database/sql 驱动注册。
// 重复注册以最后一次为准。
func RegisterSessionFactory(f SessionFactory) {
	factoryMu.Lock()
	defer factoryMu.Unlock()
	liveFactory = f
}

// DefaultSessionFactory 返回已注册的生产会话工厂
func DefaultSessionFactory() (SessionFactory, error) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	if liveFactory == nil {
		return nil, errors.New("no live session factory registered, import an SDK binding or run with dry-run")
	}
	return liveFactory, nil
}
