package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// 事件类型常量（与主机框架的约定一致）
const (
	TypeTick     = "eTick"
	TypeOrder    = "eOrder"
	TypeAccount  = "eAccount"
	TypePosition = "ePosition"
	TypeLog      = "eLog"
)

// Event 引擎中流转的事件
type Event struct {
	ID        string    // 事件 ID
	Type      string    // 事件类型（eTick / eOrder / ...）
	Data      any       // 事件载荷（domain 对象）
	Timestamp time.Time // 发布时间
}

// Handler 事件处理函数
//
// 在 Publish 的调用方 goroutine 上同步执行，处理函数不应阻塞；
// 需要慢消费的观察者请使用 Subscribe。
type Handler func(Event)

// Engine 类型化事件引擎
//
// 网关把行情、订单、账户等领域对象发布到引擎，主机侧通过
// Register 注册按类型分发的处理函数，或通过 Subscribe 拿到
// 带缓冲的事件 channel（满则丢弃，慢消费者不会阻塞推送路径）。
type Engine struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	subs     map[chan Event]struct{}
}

// NewEngine 创建事件引擎
func NewEngine() *Engine {
	return &Engine{
		handlers: make(map[string][]Handler),
		subs:     make(map[chan Event]struct{}),
	}
}

// Register 注册某一事件类型的处理函数
func (e *Engine) Register(eventType string, handler Handler) {
	e.mu.Lock()
	e.handlers[eventType] = append(e.handlers[eventType], handler)
	e.mu.Unlock()
}

// Subscribe 订阅全部事件，返回带缓冲的 channel
func (e *Engine) Subscribe() chan Event {
	ch := make(chan Event, 100)
	e.mu.Lock()
	e.subs[ch] = struct{}{}
	e.mu.Unlock()
	return ch
}

// Unsubscribe 取消订阅并关闭 channel
func (e *Engine) Unsubscribe(ch chan Event) {
	e.mu.Lock()
	if _, ok := e.subs[ch]; ok {
		delete(e.subs, ch)
		close(ch)
	}
	e.mu.Unlock()
}

// Publish 发布事件（任意 goroutine 可调用）
func (e *Engine) Publish(eventType string, data any) {
	evt := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now(),
	}

	e.mu.RLock()
	handlers := e.handlers[eventType]
	for ch := range e.subs {
		select {
		case ch <- evt:
		default:
			// channel 已满，丢弃（慢消费者不阻塞行情推送）
		}
	}
	e.mu.RUnlock()

	for _, h := range handlers {
		h(evt)
	}
}
