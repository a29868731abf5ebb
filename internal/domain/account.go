package domain

// Account 资金账户快照
//
// 账户 ID 为币种（一个券商账户按币种拆分为多条资金记录）。
type Account struct {
	AccountID   string  // 账户 ID（币种，例如 HKD / USD）
	Balance     float64 // 可取资金
	Frozen      float64 // 冻结资金
	GatewayName string  // 网关名称
}

// VTAccountID 返回主机侧的复合账户标识（gateway.accountid）
func (a *Account) VTAccountID() string {
	return a.GatewayName + "." + a.AccountID
}

// Position 持仓快照
type Position struct {
	Symbol      string    // 合约代码
	Exchange    Exchange  // 交易所
	Direction   Direction // 持仓方向
	Volume      float64   // 持仓数量
	Price       float64   // 持仓均价
	PnL         float64   // 未实现盈亏
	GatewayName string    // 网关名称
}

// VTSymbol 返回主机侧的复合合约标识
func (p *Position) VTSymbol() string {
	return p.Symbol + "." + string(p.Exchange)
}

// Log 日志数据（通过事件引擎发布给主机）
type Log struct {
	Msg         string // 日志内容
	Level       string // 日志级别
	GatewayName string // 网关名称
}
