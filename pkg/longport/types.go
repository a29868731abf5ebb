package longport

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubType 行情订阅类型
type SubType uint8

const (
	SubTypeQuote   SubType = 1 // 实时报价
	SubTypeDepth   SubType = 2 // 盘口深度
	SubTypeBrokers SubType = 3 // 经纪队列
	SubTypeTrade   SubType = 4 // 逐笔成交
)

// OrderType 券商侧订单类型（线上取值）
type OrderType string

const (
	OrderTypeLO OrderType = "LO" // 限价单
	OrderTypeMO OrderType = "MO" // 市价单
)

// OrderSide 买卖方向
type OrderSide string

const (
	OrderSideBuy  OrderSide = "Buy"
	OrderSideSell OrderSide = "Sell"
)

// TimeInForce 订单有效期
type TimeInForce string

const (
	TimeInForceDay TimeInForce = "Day" // 当日有效
	TimeInForceGTC TimeInForce = "GTC" // 撤单前有效
)

// Period K线周期（线上取值）
type Period int32

const (
	PeriodMin1  Period = 1
	PeriodMin5  Period = 5
	PeriodMin15 Period = 15
	PeriodMin30 Period = 30
	PeriodHour1 Period = 60
	PeriodDay   Period = 1000
)

// AdjustType K线复权类型
type AdjustType int32

const (
	AdjustTypeNo      AdjustType = 0 // 不复权
	AdjustTypeForward AdjustType = 1 // 前复权
)

// OrderStatus 券商侧订单状态（线上取值，节选）
type OrderStatus string

const (
	OrderStatusNew           OrderStatus = "New"
	OrderStatusPartialFilled OrderStatus = "PartialFilled"
	OrderStatusFilled        OrderStatus = "Filled"
	OrderStatusCanceled      OrderStatus = "Canceled"
	OrderStatusRejected      OrderStatus = "Rejected"
	OrderStatusExpired       OrderStatus = "Expired"
)

// PushQuote 实时行情推送
type PushQuote struct {
	Symbol    string          // 券商侧合约代码（带 .HK / .US 后缀）
	LastDone  decimal.Decimal // 最新价
	Open      decimal.Decimal // 开盘价
	High      decimal.Decimal // 最高价
	Low       decimal.Decimal // 最低价
	PrevClose decimal.Decimal // 昨收价
	Volume    int64           // 成交量
	Turnover  decimal.Decimal // 成交额
	Timestamp time.Time       // 行情时间
}

// Candlestick K线
type Candlestick struct {
	Open      decimal.Decimal // 开盘价
	High      decimal.Decimal // 最高价
	Low       decimal.Decimal // 最低价
	Close     decimal.Decimal // 收盘价
	Volume    int64           // 成交量
	Turnover  decimal.Decimal // 成交额
	Timestamp time.Time       // K线起始时间
}

// CashInfo 单币种现金信息
type CashInfo struct {
	Currency         string          // 币种
	WithdrawCash     decimal.Decimal // 可取现金
	AvailableCash    decimal.Decimal // 可用现金
	FrozenCash       decimal.Decimal // 冻结现金
	SettlingCash     decimal.Decimal // 待结算现金
}

// AccountBalance 账户资金
type AccountBalance struct {
	TotalCash decimal.Decimal // 总现金
	Currency  string          // 主币种
	CashInfos []*CashInfo     // 分币种现金信息
}

// StockPosition 股票持仓
type StockPosition struct {
	Symbol        string          // 券商侧合约代码
	SymbolName    string          // 合约名称
	Quantity      decimal.Decimal // 持仓数量
	AvailableQty  decimal.Decimal // 可用数量
	Currency      string          // 币种
	AvgCost       decimal.Decimal // 持仓均价
	UnrealizedPnl decimal.Decimal // 未实现盈亏
}

// StockPositionChannel 持仓通道（按账户类型分组）
type StockPositionChannel struct {
	AccountChannel string           // 通道名称
	Positions      []*StockPosition // 通道内持仓
}

// SubmitOrderRequest 下单请求
type SubmitOrderRequest struct {
	Symbol            string          // 券商侧合约代码
	OrderType         OrderType       // 订单类型
	Side              OrderSide       // 买卖方向
	SubmittedQuantity decimal.Decimal // 委托数量
	SubmittedPrice    decimal.Decimal // 委托价格（市价单可为零）
	TimeInForce       TimeInForce     // 订单有效期
	Remark            string          // 备注
}

// SubmitOrderResponse 下单响应
type SubmitOrderResponse struct {
	OrderID string // 券商订单 ID
}

// PushOrderChanged 订单状态变化推送
type PushOrderChanged struct {
	OrderID          string          // 券商订单 ID
	Symbol           string          // 券商侧合约代码
	Status           OrderStatus     // 最新状态
	ExecutedQuantity decimal.Decimal // 已成交数量
	ExecutedPrice    decimal.Decimal // 成交均价
	UpdatedAt        time.Time       // 更新时间
}
