package domain

// Exchange 交易所
type Exchange string

const (
	ExchangeSEHK Exchange = "SEHK" // 香港联合交易所
	ExchangeNYSE Exchange = "NYSE" // 纽约证券交易所
)

// Direction 买卖方向
type Direction string

const (
	DirectionLong  Direction = "LONG"
	DirectionShort Direction = "SHORT"
)

// OrderType 订单类型
type OrderType string

const (
	OrderTypeLimit  OrderType = "LIMIT"
	OrderTypeMarket OrderType = "MARKET"
)

// Status 订单状态
type Status string

const (
	StatusSubmitting Status = "SUBMITTING" // 提交中
	StatusNotTraded  Status = "NOTTRADED"  // 未成交
	StatusPartTraded Status = "PARTTRADED" // 部分成交
	StatusAllTraded  Status = "ALLTRADED"  // 全部成交
	StatusCancelled  Status = "CANCELLED"  // 已撤销
	StatusRejected   Status = "REJECTED"   // 已拒绝
)

// IsActive 检查该状态是否还能产生后续成交
func (s Status) IsActive() bool {
	switch s {
	case StatusSubmitting, StatusNotTraded, StatusPartTraded:
		return true
	}
	return false
}

// Interval K线周期
type Interval string

const (
	IntervalMinute Interval = "1m"
	IntervalHour   Interval = "1h"
	IntervalDaily  Interval = "d"
)
