package domain

import "time"

// Order 委托订单快照
type Order struct {
	Symbol      string    // 合约代码
	Exchange    Exchange  // 交易所
	OrderID     string    // 券商订单 ID
	Type        OrderType // 订单类型
	Direction   Direction // 买卖方向
	Price       float64   // 委托价格
	Volume      float64   // 委托数量
	Traded      float64   // 已成交数量
	Status      Status    // 订单状态
	Datetime    time.Time // 委托时间
	GatewayName string    // 网关名称
}

// VTOrderID 返回主机侧的复合订单标识（gateway.orderid）
func (o *Order) VTOrderID() string {
	return o.GatewayName + "." + o.OrderID
}

// VTSymbol 返回主机侧的复合合约标识
func (o *Order) VTSymbol() string {
	return o.Symbol + "." + string(o.Exchange)
}

// IsActive 检查订单是否仍然活跃（可撤、可继续成交）
func (o *Order) IsActive() bool {
	return o.Status.IsActive()
}
