package gateway

import (
	"strings"

	"github.com/qq148376839/vnpy/internal/domain"
	"github.com/qq148376839/vnpy/pkg/longport"
)

// ConvertSymbol 把主机侧 (symbol, exchange) 转换为券商侧带后缀的
// 合约代码。不支持的交易所原样返回。
func ConvertSymbol(symbol string, exchange domain.Exchange) string {
	switch exchange {
	case domain.ExchangeSEHK:
		return symbol + ".HK"
	case domain.ExchangeNYSE:
		return symbol + ".US"
	}
	return symbol
}

// ExchangeFromSymbol 根据券商侧合约代码的后缀反查交易所，
// 未知后缀返回港交所。
func ExchangeFromSymbol(symbol string) domain.Exchange {
	if strings.HasSuffix(symbol, ".US") {
		return domain.ExchangeNYSE
	}
	return domain.ExchangeSEHK
}

// ConvertOrderType 转换订单类型，未映射的值回落为限价单
func ConvertOrderType(orderType domain.OrderType) longport.OrderType {
	if orderType == domain.OrderTypeMarket {
		return longport.OrderTypeMO
	}
	return longport.OrderTypeLO
}

// ConvertDirection 转换买卖方向，未映射的值回落为买入
func ConvertDirection(direction domain.Direction) longport.OrderSide {
	if direction == domain.DirectionShort {
		return longport.OrderSideSell
	}
	return longport.OrderSideBuy
}

// ConvertInterval 转换K线周期，未映射的值回落为日线
func ConvertInterval(interval domain.Interval) longport.Period {
	switch interval {
	case domain.IntervalMinute:
		return longport.PeriodMin1
	case domain.IntervalHour:
		return longport.PeriodHour1
	}
	return longport.PeriodDay
}

// ConvertOrderStatus 把券商侧订单状态映射为主机侧状态，
// 未知状态按提交中处理。
func ConvertOrderStatus(status longport.OrderStatus) domain.Status {
	switch status {
	case longport.OrderStatusNew:
		return domain.StatusNotTraded
	case longport.OrderStatusPartialFilled:
		return domain.StatusPartTraded
	case longport.OrderStatusFilled:
		return domain.StatusAllTraded
	case longport.OrderStatusCanceled, longport.OrderStatusExpired:
		return domain.StatusCancelled
	case longport.OrderStatusRejected:
		return domain.StatusRejected
	}
	return domain.StatusSubmitting
}
