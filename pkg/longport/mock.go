package longport

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockQuoteContext 行情会话替身（测试与 dry-run 共用）
type MockQuoteContext struct {
	mu sync.RWMutex

	// 状态
	Closed        bool
	Subscriptions []string

	// 响应数据
	CandlestickResponse []*Candlestick

	// 调用计数
	Calls map[string]int

	// 错误注入（只对下一次调用生效）
	ErrorOnNext map[string]error

	handler QuoteHandler
}

// NewMockQuoteContext 创建行情会话替身
func NewMockQuoteContext() *MockQuoteContext {
	return &MockQuoteContext{
		Calls:       make(map[string]int),
		ErrorOnNext: make(map[string]error),
	}
}

func (m *MockQuoteContext) trackCall(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[name]++
	if err, ok := m.ErrorOnNext[name]; ok {
		delete(m.ErrorOnNext, name)
		return err
	}
	return nil
}

func (m *MockQuoteContext) Subscribe(ctx context.Context, symbols []string, subTypes []SubType, isFirstPush bool) error {
	if err := m.trackCall("Subscribe"); err != nil {
		return err
	}
	m.mu.Lock()
	m.Subscriptions = append(m.Subscriptions, symbols...)
	m.mu.Unlock()
	return nil
}

func (m *MockQuoteContext) Candlesticks(ctx context.Context, symbol string, period Period, count int32, adjust AdjustType) ([]*Candlestick, error) {
	if err := m.trackCall("Candlesticks"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.CandlestickResponse != nil {
		return m.CandlestickResponse, nil
	}
	// 默认返回一根K线
	return []*Candlestick{
		{
			Open:      decimal.NewFromFloat(100),
			High:      decimal.NewFromFloat(101),
			Low:       decimal.NewFromFloat(99),
			Close:     decimal.NewFromFloat(100.5),
			Volume:    10000,
			Timestamp: time.Now().Truncate(24 * time.Hour),
		},
	}, nil
}

func (m *MockQuoteContext) OnQuote(handler QuoteHandler) {
	m.mu.Lock()
	m.Calls["OnQuote"]++
	m.handler = handler
	m.mu.Unlock()
}

func (m *MockQuoteContext) Close() error {
	if err := m.trackCall("Close"); err != nil {
		return err
	}
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
	return nil
}

// SimulateQuote 模拟一次行情推送（在调用方 goroutine 上执行回调）
func (m *MockQuoteContext) SimulateQuote(symbol string, quote *PushQuote) {
	m.mu.RLock()
	handler := m.handler
	m.mu.RUnlock()
	if handler != nil {
		handler(symbol, quote)
	}
}

// MockTradeContext 交易会话替身
type MockTradeContext struct {
	mu sync.RWMutex

	// 状态
	Closed          bool
	SubmittedOrders []*SubmitOrderRequest
	CanceledOrders  []string

	// 响应数据
	OrderIDResponse   string
	BalanceResponse   []*AccountBalance
	PositionsResponse []*StockPositionChannel

	// 调用计数
	Calls map[string]int

	// 错误注入（只对下一次调用生效）
	ErrorOnNext map[string]error

	handler OrderChangedHandler
}

// NewMockTradeContext 创建交易会话替身
func NewMockTradeContext() *MockTradeContext {
	return &MockTradeContext{
		Calls:       make(map[string]int),
		ErrorOnNext: make(map[string]error),
	}
}

func (m *MockTradeContext) trackCall(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls[name]++
	if err, ok := m.ErrorOnNext[name]; ok {
		delete(m.ErrorOnNext, name)
		return err
	}
	return nil
}

func (m *MockTradeContext) SubmitOrder(ctx context.Context, req *SubmitOrderRequest) (*SubmitOrderResponse, error) {
	if err := m.trackCall("SubmitOrder"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SubmittedOrders = append(m.SubmittedOrders, req)
	orderID := m.OrderIDResponse
	if orderID == "" {
		orderID = uuid.NewString()
	}
	return &SubmitOrderResponse{OrderID: orderID}, nil
}

func (m *MockTradeContext) CancelOrder(ctx context.Context, orderID string) error {
	if err := m.trackCall("CancelOrder"); err != nil {
		return err
	}
	m.mu.Lock()
	m.CanceledOrders = append(m.CanceledOrders, orderID)
	m.mu.Unlock()
	return nil
}

func (m *MockTradeContext) AccountBalance(ctx context.Context) ([]*AccountBalance, error) {
	if err := m.trackCall("AccountBalance"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.BalanceResponse != nil {
		return m.BalanceResponse, nil
	}
	return []*AccountBalance{
		{
			Currency: "HKD",
			CashInfos: []*CashInfo{
				{
					Currency:     "HKD",
					WithdrawCash: decimal.NewFromFloat(100000),
					FrozenCash:   decimal.NewFromFloat(0),
				},
			},
		},
	}, nil
}

func (m *MockTradeContext) StockPositions(ctx context.Context, symbols []string) ([]*StockPositionChannel, error) {
	if err := m.trackCall("StockPositions"); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.PositionsResponse != nil {
		return m.PositionsResponse, nil
	}
	return []*StockPositionChannel{}, nil
}

func (m *MockTradeContext) OnOrderChanged(handler OrderChangedHandler) {
	m.mu.Lock()
	m.Calls["OnOrderChanged"]++
	m.handler = handler
	m.mu.Unlock()
}

func (m *MockTradeContext) Close() error {
	if err := m.trackCall("Close"); err != nil {
		return err
	}
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
	return nil
}

// SimulateOrderChanged 模拟一次订单状态推送
func (m *MockTradeContext) SimulateOrderChanged(order *PushOrderChanged) {
	m.mu.RLock()
	handler := m.handler
	m.mu.RUnlock()
	if handler != nil {
		handler(order)
	}
}

// MockFactory 返回基于替身会话的工厂，并给出两个替身的引用
// 以便测试注入响应和模拟推送。
func MockFactory() (SessionFactory, *MockQuoteContext, *MockTradeContext) {
	quote := NewMockQuoteContext()
	trade := NewMockTradeContext()
	factory := func(cfg *Config) (QuoteContext, TradeContext, error) {
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
		return quote, trade, nil
	}
	return factory, quote, trade
}
