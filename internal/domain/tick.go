package domain

import "time"

// Tick 行情快照
//
// 由网关在收到行情推送时就地更新并发布；价格字段在订阅后、
// 首次推送前为零值。
type Tick struct {
	Symbol      string    // 合约代码（主机侧，不带交易所后缀）
	Exchange    Exchange  // 交易所
	Datetime    time.Time // 行情时间
	LastPrice   float64   // 最新价
	Volume      float64   // 成交量
	OpenPrice   float64   // 开盘价
	HighPrice   float64   // 最高价
	LowPrice    float64   // 最低价
	PreClose    float64   // 昨收价
	GatewayName string    // 网关名称
}

// VTSymbol 返回主机侧的复合合约标识（symbol.exchange）
func (t *Tick) VTSymbol() string {
	return t.Symbol + "." + string(t.Exchange)
}

// Bar K线数据
type Bar struct {
	Symbol      string    // 合约代码
	Exchange    Exchange  // 交易所
	Datetime    time.Time // K线起始时间
	Interval    Interval  // K线周期
	OpenPrice   float64   // 开盘价
	HighPrice   float64   // 最高价
	LowPrice    float64   // 最低价
	ClosePrice  float64   // 收盘价
	Volume      float64   // 成交量
	GatewayName string    // 网关名称
}

// VTSymbol 返回主机侧的复合合约标识
func (b *Bar) VTSymbol() string {
	return b.Symbol + "." + string(b.Exchange)
}
