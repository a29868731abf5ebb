package gateway

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/qq148376839/vnpy/internal/domain"
	"github.com/qq148376839/vnpy/internal/events"
)

// Gateway 主机侧网关契约
//
// 主机通过这组方法驱动网关；网关通过事件引擎把行情、订单、
// 账户、持仓和日志回传给主机。
type Gateway interface {
	Name() string
	Connect(ctx context.Context, setting map[string]string) error
	Close() error
	Subscribe(ctx context.Context, req *domain.SubscribeRequest) error
	SendOrder(ctx context.Context, req *domain.OrderRequest) (string, error)
	CancelOrder(ctx context.Context, req *domain.CancelRequest) error
	QueryAccount(ctx context.Context) error
	QueryPosition(ctx context.Context) error
	QueryHistory(ctx context.Context, req *domain.HistoryRequest) ([]*domain.Bar, error)
}

// BaseGateway 网关基类：统一的事件发布辅助
type BaseGateway struct {
	name   string
	engine *events.Engine
	log    *logrus.Entry
}

// NewBaseGateway 创建网关基类
func NewBaseGateway(name string, engine *events.Engine) BaseGateway {
	return BaseGateway{
		name:   name,
		engine: engine,
		log:    logrus.WithField("gateway", name),
	}
}

// Name 返回网关名称
func (g *BaseGateway) Name() string {
	return g.name
}

// Engine 返回事件引擎
func (g *BaseGateway) Engine() *events.Engine {
	return g.engine
}

// OnTick 发布行情事件
func (g *BaseGateway) OnTick(tick *domain.Tick) {
	g.engine.Publish(events.TypeTick, tick)
}

// OnOrder 发布订单事件
func (g *BaseGateway) OnOrder(order *domain.Order) {
	g.engine.Publish(events.TypeOrder, order)
}

// OnAccount 发布账户事件
func (g *BaseGateway) OnAccount(account *domain.Account) {
	g.engine.Publish(events.TypeAccount, account)
}

// OnPosition 发布持仓事件
func (g *BaseGateway) OnPosition(position *domain.Position) {
	g.engine.Publish(events.TypePosition, position)
}

// WriteLog 发布日志事件，同时写入进程日志
func (g *BaseGateway) WriteLog(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	g.log.Info(msg)
	g.engine.Publish(events.TypeLog, &domain.Log{
		Msg:         msg,
		Level:       "info",
		GatewayName: g.name,
	})
}
