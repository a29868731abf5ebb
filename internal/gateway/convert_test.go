package gateway

import (
	"testing"

	"github.com/qq148376839/vnpy/internal/domain"
	"github.com/qq148376839/vnpy/pkg/longport"
)

func TestConvertSymbol(t *testing.T) {
	cases := []struct {
		symbol   string
		exchange domain.Exchange
		want     string
	}{
		{"700", domain.ExchangeSEHK, "700.HK"},
		{"AAPL", domain.ExchangeNYSE, "AAPL.US"},
		{"700", domain.Exchange("SSE"), "700"}, // 未支持的交易所原样返回
	}
	for _, tc := range cases {
		if got := ConvertSymbol(tc.symbol, tc.exchange); got != tc.want {
			t.Fatalf("ConvertSymbol(%s, %s) = %s, want %s", tc.symbol, tc.exchange, got, tc.want)
		}
	}
}

func TestExchangeFromSymbol(t *testing.T) {
	cases := []struct {
		symbol string
		want   domain.Exchange
	}{
		{"AAPL.US", domain.ExchangeNYSE},
		{"700.HK", domain.ExchangeSEHK},
		{"UNKNOWN", domain.ExchangeSEHK}, // 无法识别时默认港交所
	}
	for _, tc := range cases {
		if got := ExchangeFromSymbol(tc.symbol); got != tc.want {
			t.Fatalf("ExchangeFromSymbol(%s) = %s, want %s", tc.symbol, got, tc.want)
		}
	}
}

func TestConvertOrderType(t *testing.T) {
	if got := ConvertOrderType(domain.OrderTypeLimit); got != longport.OrderTypeLO {
		t.Fatalf("limit order: got %s", got)
	}
	if got := ConvertOrderType(domain.OrderTypeMarket); got != longport.OrderTypeMO {
		t.Fatalf("market order: got %s", got)
	}
	// 未知类型默认限价
	if got := ConvertOrderType(domain.OrderType("STOP")); got != longport.OrderTypeLO {
		t.Fatalf("unknown order type: got %s", got)
	}
}

func TestConvertDirection(t *testing.T) {
	if got := ConvertDirection(domain.DirectionLong); got != longport.OrderSideBuy {
		t.Fatalf("long: got %s", got)
	}
	if got := ConvertDirection(domain.DirectionShort); got != longport.OrderSideSell {
		t.Fatalf("short: got %s", got)
	}
}

func TestConvertInterval(t *testing.T) {
	cases := []struct {
		interval domain.Interval
		want     longport.Period
	}{
		{domain.IntervalMinute, longport.PeriodMin1},
		{domain.IntervalHour, longport.PeriodHour1},
		{domain.IntervalDaily, longport.PeriodDay},
		{domain.Interval("w"), longport.PeriodDay}, // 未知周期默认日线
	}
	for _, tc := range cases {
		if got := ConvertInterval(tc.interval); got != tc.want {
			t.Fatalf("ConvertInterval(%s) = %d, want %d", tc.interval, got, tc.want)
		}
	}
}

func TestConvertOrderStatus(t *testing.T) {
	cases := []struct {
		status longport.OrderStatus
		want   domain.Status
	}{
		{longport.OrderStatusNew, domain.StatusNotTraded},
		{longport.OrderStatusPartialFilled, domain.StatusPartTraded},
		{longport.OrderStatusFilled, domain.StatusAllTraded},
		{longport.OrderStatusCanceled, domain.StatusCancelled},
		{longport.OrderStatusExpired, domain.StatusCancelled},
		{longport.OrderStatusRejected, domain.StatusRejected},
		{longport.OrderStatus("WaitToNew"), domain.StatusSubmitting},
	}
	for _, tc := range cases {
		if got := ConvertOrderStatus(tc.status); got != tc.want {
			t.Fatalf("ConvertOrderStatus(%s) = %s, want %s", tc.status, got, tc.want)
		}
	}
}
