package monitor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qq148376839/vnpy/internal/domain"
	"github.com/qq148376839/vnpy/internal/events"
	"github.com/qq148376839/vnpy/internal/gateway"
	"github.com/qq148376839/vnpy/pkg/longport"
)

func newTestServer(t *testing.T) (*Server, *gateway.LongPortGateway, *longport.MockTradeContext) {
	t.Helper()
	engine := events.NewEngine()
	factory, _, mockTrade := longport.MockFactory()
	gw := gateway.NewLongPortGateway(engine, factory)
	setting := map[string]string{
		gateway.SettingAppKey:      "k",
		gateway.SettingAppSecret:   "s",
		gateway.SettingAccessToken: "t",
	}
	if err := gw.Connect(context.Background(), setting); err != nil {
		t.Fatalf("connect: %v", err)
	}
	return New(Config{}, engine, gw), gw, mockTrade
}

func TestServer_Healthz(t *testing.T) {
	srv, _, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestServer_Ticks(t *testing.T) {
	srv, gw, _ := newTestServer(t)

	if err := gw.Subscribe(context.Background(), &domain.SubscribeRequest{Symbol: "700", Exchange: domain.ExchangeSEHK}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/ticks", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	var body struct {
		Items []domain.Tick `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 || body.Items[0].Symbol != "700" {
		t.Fatalf("unexpected ticks: %+v", body.Items)
	}
}

func TestServer_OrdersActiveFilter(t *testing.T) {
	srv, gw, mockTrade := newTestServer(t)

	mockTrade.OrderIDResponse = "B1"
	if _, err := gw.SendOrder(context.Background(), &domain.OrderRequest{
		Symbol:    "700",
		Exchange:  domain.ExchangeSEHK,
		Type:      domain.OrderTypeLimit,
		Direction: domain.DirectionLong,
		Price:     300,
		Volume:    100,
	}); err != nil {
		t.Fatalf("send order: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders?active=true", nil))
	var body struct {
		Items []domain.Order `json:"items"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 1 {
		t.Fatalf("expected 1 active order, got %d", len(body.Items))
	}

	// 终态订单被 active 过滤掉
	mockTrade.SimulateOrderChanged(&longport.PushOrderChanged{
		OrderID: "B1",
		Status:  longport.OrderStatusFilled,
	})
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders?active=true", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Items) != 0 {
		t.Fatalf("filled order must be filtered, got %+v", body.Items)
	}
}

func TestServer_DefaultAddr(t *testing.T) {
	srv, _, _ := newTestServer(t)
	if srv.Addr() != ":18080" {
		t.Fatalf("unexpected default addr: %s", srv.Addr())
	}
}
