package gateway

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/qq148376839/vnpy/internal/domain"
	"github.com/qq148376839/vnpy/internal/events"
	"github.com/qq148376839/vnpy/pkg/longport"
)

// GatewayName 长桥网关的默认名称
const GatewayName = "LONGPORT"

// 连接配置项键名
const (
	SettingAppKey      = "app_key"
	SettingAppSecret   = "app_secret"
	SettingAccessToken = "access_token"
)

// 历史数据单次查询的K线数量
const historyBarCount = 100

// LongPortGateway 长桥交易网关
//
// 在主机契约（Gateway 接口 + 事件引擎）和长桥 SDK 的行情/交易
// 会话之间做字段与枚举翻译。自身只持有两份可变状态：按券商侧
// 合约代码索引的行情缓存，以及按券商订单 ID 索引的订单快照，
// 都放在显式互斥锁后面（行情推送与主机调用来自不同 goroutine）。
type LongPortGateway struct {
	BaseGateway

	factory longport.SessionFactory

	ctxMu    sync.Mutex
	quoteCtx longport.QuoteContext
	tradeCtx longport.TradeContext

	tickMu sync.Mutex
	ticks  map[string]*domain.Tick

	orderMu sync.Mutex
	orders  map[string]*domain.Order
}

var _ Gateway = (*LongPortGateway)(nil)

// NewLongPortGateway 创建长桥网关
func NewLongPortGateway(engine *events.Engine, factory longport.SessionFactory) *LongPortGateway {
	return &LongPortGateway{
		BaseGateway: NewBaseGateway(GatewayName, engine),
		factory:     factory,
		ticks:       make(map[string]*domain.Tick),
		orders:      make(map[string]*domain.Order),
	}
}

// Connect 连接接口
//
// 凭证显式传入会话工厂，不经过进程环境变量。
func (g *LongPortGateway) Connect(ctx context.Context, setting map[string]string) error {
	cfg := &longport.Config{
		AppKey:      setting[SettingAppKey],
		AppSecret:   setting[SettingAppSecret],
		AccessToken: setting[SettingAccessToken],
	}

	quoteCtx, tradeCtx, err := g.factory(cfg)
	if err != nil {
		g.WriteLog("长桥接口连接失败：%v", err)
		return errors.Wrap(err, "connect")
	}

	quoteCtx.OnQuote(g.onQuote)
	tradeCtx.OnOrderChanged(g.onOrderChanged)

	g.ctxMu.Lock()
	g.quoteCtx = quoteCtx
	g.tradeCtx = tradeCtx
	g.ctxMu.Unlock()

	g.WriteLog("长桥接口连接成功")
	return nil
}

// Close 关闭接口（未连接时为空操作）
func (g *LongPortGateway) Close() error {
	g.ctxMu.Lock()
	quoteCtx := g.quoteCtx
	tradeCtx := g.tradeCtx
	g.quoteCtx = nil
	g.tradeCtx = nil
	g.ctxMu.Unlock()

	var firstErr error
	if quoteCtx != nil {
		if err := quoteCtx.Close(); err != nil {
			firstErr = err
		}
	}
	if tradeCtx != nil {
		if err := tradeCtx.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (g *LongPortGateway) quoteContext() (longport.QuoteContext, error) {
	g.ctxMu.Lock()
	defer g.ctxMu.Unlock()
	if g.quoteCtx == nil {
		return nil, errors.New("行情上下文未初始化")
	}
	return g.quoteCtx, nil
}

func (g *LongPortGateway) tradeContext() (longport.TradeContext, error) {
	g.ctxMu.Lock()
	defer g.ctxMu.Unlock()
	if g.tradeCtx == nil {
		return nil, errors.New("交易上下文未初始化")
	}
	return g.tradeCtx, nil
}

// Subscribe 订阅行情
//
// 订阅成功后以券商侧合约代码为键登记一条空价格的行情记录，
// 后续推送在这条记录上就地更新。
func (g *LongPortGateway) Subscribe(ctx context.Context, req *domain.SubscribeRequest) error {
	quoteCtx, err := g.quoteContext()
	if err != nil {
		g.WriteLog("订阅行情失败：%v", err)
		return err
	}

	symbol := ConvertSymbol(req.Symbol, req.Exchange)
	if err := quoteCtx.Subscribe(ctx, []string{symbol}, []longport.SubType{longport.SubTypeQuote}, true); err != nil {
		g.WriteLog("订阅行情失败：%v", err)
		return errors.Wrap(err, "subscribe")
	}

	tick := &domain.Tick{
		Symbol:      req.Symbol,
		Exchange:    req.Exchange,
		Datetime:    time.Now(),
		GatewayName: g.Name(),
	}
	g.tickMu.Lock()
	g.ticks[symbol] = tick
	g.tickMu.Unlock()
	return nil
}

// SendOrder 委托下单
//
// 成功时登记一条「提交中」的订单快照并发布订单事件，返回主机侧
// 复合订单标识；失败时返回空串和错误，不发布订单事件。
func (g *LongPortGateway) SendOrder(ctx context.Context, req *domain.OrderRequest) (string, error) {
	tradeCtx, err := g.tradeContext()
	if err != nil {
		g.WriteLog("委托下单失败：%v", err)
		return "", err
	}

	symbol := ConvertSymbol(req.Symbol, req.Exchange)
	resp, err := tradeCtx.SubmitOrder(ctx, &longport.SubmitOrderRequest{
		Symbol:            symbol,
		OrderType:         ConvertOrderType(req.Type),
		Side:              ConvertDirection(req.Direction),
		SubmittedQuantity: decimal.NewFromFloat(req.Volume),
		SubmittedPrice:    decimal.NewFromFloat(req.Price),
		TimeInForce:       longport.TimeInForceDay,
	})
	if err != nil {
		g.WriteLog("委托下单失败：%v", err)
		return "", errors.Wrap(err, "submit order")
	}

	order := &domain.Order{
		Symbol:      req.Symbol,
		Exchange:    req.Exchange,
		OrderID:     resp.OrderID,
		Type:        req.Type,
		Direction:   req.Direction,
		Price:       req.Price,
		Volume:      req.Volume,
		Status:      domain.StatusSubmitting,
		Datetime:    time.Now(),
		GatewayName: g.Name(),
	}
	g.orderMu.Lock()
	g.orders[resp.OrderID] = order
	g.orderMu.Unlock()

	snapshot := *order
	g.OnOrder(&snapshot)
	return order.VTOrderID(), nil
}

// CancelOrder 委托撤单
func (g *LongPortGateway) CancelOrder(ctx context.Context, req *domain.CancelRequest) error {
	tradeCtx, err := g.tradeContext()
	if err != nil {
		g.WriteLog("委托撤单失败：%v", err)
		return err
	}
	if err := tradeCtx.CancelOrder(ctx, req.OrderID); err != nil {
		g.WriteLog("委托撤单失败：%v", err)
		return errors.Wrap(err, "cancel order")
	}
	return nil
}

// QueryAccount 查询资金
//
// 只取第一个账户，按币种逐条发布账户事件；券商返回零个账户时
// 不发布事件也不报错。
func (g *LongPortGateway) QueryAccount(ctx context.Context) error {
	tradeCtx, err := g.tradeContext()
	if err != nil {
		g.WriteLog("查询资金失败：%v", err)
		return err
	}

	balances, err := tradeCtx.AccountBalance(ctx)
	if err != nil {
		g.WriteLog("查询资金失败：%v", err)
		return errors.Wrap(err, "account balance")
	}
	if len(balances) == 0 {
		g.WriteLog("未获取到账户信息")
		return nil
	}

	account := balances[0]
	for _, cashInfo := range account.CashInfos {
		g.OnAccount(&domain.Account{
			AccountID:   cashInfo.Currency,
			Balance:     cashInfo.WithdrawCash.InexactFloat64(),
			Frozen:      cashInfo.FrozenCash.InexactFloat64(),
			GatewayName: g.Name(),
		})
	}
	return nil
}

// QueryPosition 查询持仓
//
// 长桥的持仓结果没有空头侧，统一按多头方向发布。
func (g *LongPortGateway) QueryPosition(ctx context.Context) error {
	tradeCtx, err := g.tradeContext()
	if err != nil {
		g.WriteLog("查询持仓失败：%v", err)
		return err
	}

	channels, err := tradeCtx.StockPositions(ctx, nil)
	if err != nil {
		g.WriteLog("查询持仓失败：%v", err)
		return errors.Wrap(err, "stock positions")
	}

	for _, channel := range channels {
		for _, pos := range channel.Positions {
			g.OnPosition(&domain.Position{
				Symbol:      pos.Symbol,
				Exchange:    ExchangeFromSymbol(pos.Symbol),
				Direction:   domain.DirectionLong,
				Volume:      pos.Quantity.InexactFloat64(),
				Price:       pos.AvgCost.InexactFloat64(),
				PnL:         pos.UnrealizedPnl.InexactFloat64(),
				GatewayName: g.Name(),
			})
		}
	}
	return nil
}

// QueryHistory 查询历史数据
//
// 固定查询 100 根不复权K线，按 SDK 返回顺序输出，不重新排序。
func (g *LongPortGateway) QueryHistory(ctx context.Context, req *domain.HistoryRequest) ([]*domain.Bar, error) {
	quoteCtx, err := g.quoteContext()
	if err != nil {
		g.WriteLog("查询历史数据失败：%v", err)
		return nil, err
	}

	symbol := ConvertSymbol(req.Symbol, req.Exchange)
	period := ConvertInterval(req.Interval)

	candles, err := quoteCtx.Candlesticks(ctx, symbol, period, historyBarCount, longport.AdjustTypeNo)
	if err != nil {
		g.WriteLog("查询历史数据失败：%v", err)
		return nil, errors.Wrap(err, "candlesticks")
	}

	bars := make([]*domain.Bar, 0, len(candles))
	for _, candle := range candles {
		bars = append(bars, &domain.Bar{
			Symbol:      req.Symbol,
			Exchange:    req.Exchange,
			Datetime:    candle.Timestamp,
			Interval:    req.Interval,
			OpenPrice:   candle.Open.InexactFloat64(),
			HighPrice:   candle.High.InexactFloat64(),
			LowPrice:    candle.Low.InexactFloat64(),
			ClosePrice:  candle.Close.InexactFloat64(),
			Volume:      float64(candle.Volume),
			GatewayName: g.Name(),
		})
	}
	return bars, nil
}

// onQuote 行情推送回调（在 SDK 的 goroutine 上执行）
//
// 未订阅合约的推送直接丢弃；发布的是缓存记录的副本，缓存本体
// 只在锁内改动。
func (g *LongPortGateway) onQuote(symbol string, quote *longport.PushQuote) {
	g.tickMu.Lock()
	tick, ok := g.ticks[symbol]
	if !ok {
		g.tickMu.Unlock()
		return
	}
	tick.LastPrice = quote.LastDone.InexactFloat64()
	tick.Volume = float64(quote.Volume)
	tick.OpenPrice = quote.Open.InexactFloat64()
	tick.HighPrice = quote.High.InexactFloat64()
	tick.LowPrice = quote.Low.InexactFloat64()
	tick.PreClose = quote.PrevClose.InexactFloat64()
	tick.Datetime = time.Now()
	snapshot := *tick
	g.tickMu.Unlock()

	g.OnTick(&snapshot)
}

// onOrderChanged 订单状态推送回调（在 SDK 的 goroutine 上执行）
//
// 与行情推送对称的第二条回调路径：核对本地订单快照的状态和
// 成交量后发布订单事件，未知订单 ID 记日志后丢弃。
func (g *LongPortGateway) onOrderChanged(changed *longport.PushOrderChanged) {
	g.orderMu.Lock()
	order, ok := g.orders[changed.OrderID]
	if !ok {
		g.orderMu.Unlock()
		g.WriteLog("收到未知订单的状态推送：%s", changed.OrderID)
		return
	}
	order.Status = ConvertOrderStatus(changed.Status)
	order.Traded = changed.ExecutedQuantity.InexactFloat64()
	order.Datetime = changed.UpdatedAt
	snapshot := *order
	g.orderMu.Unlock()

	g.OnOrder(&snapshot)
}

// Ticks 返回行情缓存的只读快照（监控接口用）
func (g *LongPortGateway) Ticks() []domain.Tick {
	g.tickMu.Lock()
	defer g.tickMu.Unlock()
	out := make([]domain.Tick, 0, len(g.ticks))
	for _, tick := range g.ticks {
		out = append(out, *tick)
	}
	return out
}

// Orders 返回订单快照的只读副本（监控接口用）
func (g *LongPortGateway) Orders() []domain.Order {
	g.orderMu.Lock()
	defer g.orderMu.Unlock()
	out := make([]domain.Order, 0, len(g.orders))
	for _, order := range g.orders {
		out = append(out, *order)
	}
	return out
}
