package domain

import "time"

// SubscribeRequest 行情订阅请求
type SubscribeRequest struct {
	Symbol   string   // 合约代码
	Exchange Exchange // 交易所
}

// OrderRequest 委托下单请求
type OrderRequest struct {
	Symbol    string    // 合约代码
	Exchange  Exchange  // 交易所
	Type      OrderType // 订单类型
	Direction Direction // 买卖方向
	Price     float64   // 委托价格
	Volume    float64   // 委托数量
}

// CancelRequest 委托撤单请求
type CancelRequest struct {
	OrderID  string   // 券商订单 ID
	Symbol   string   // 合约代码
	Exchange Exchange // 交易所
}

// HistoryRequest 历史数据查询请求
type HistoryRequest struct {
	Symbol   string    // 合约代码
	Exchange Exchange  // 交易所
	Interval Interval  // K线周期
	Start    time.Time // 起始时间
	End      time.Time // 结束时间
}
