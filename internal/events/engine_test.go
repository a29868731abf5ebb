package events

import (
	"sync"
	"testing"
)

func TestEngine_RegisterAndPublish(t *testing.T) {
	engine := NewEngine()

	var got []Event
	engine.Register(TypeTick, func(evt Event) {
		got = append(got, evt)
	})
	engine.Register(TypeOrder, func(evt Event) {
		t.Fatalf("order handler should not receive tick events")
	})

	engine.Publish(TypeTick, "payload")

	if len(got) != 1 {
		t.Fatalf("expected 1 event, got %d", len(got))
	}
	if got[0].Type != TypeTick {
		t.Fatalf("unexpected type: %s", got[0].Type)
	}
	if got[0].Data != "payload" {
		t.Fatalf("unexpected data: %v", got[0].Data)
	}
	if got[0].ID == "" {
		t.Fatalf("expected non-empty event id")
	}
}

func TestEngine_MultipleHandlersSameType(t *testing.T) {
	engine := NewEngine()

	count := 0
	engine.Register(TypeLog, func(Event) { count++ })
	engine.Register(TypeLog, func(Event) { count++ })

	engine.Publish(TypeLog, nil)

	if count != 2 {
		t.Fatalf("expected both handlers called, got %d", count)
	}
}

func TestEngine_SubscribeReceivesAllTypes(t *testing.T) {
	engine := NewEngine()
	sub := engine.Subscribe()
	defer engine.Unsubscribe(sub)

	engine.Publish(TypeTick, 1)
	engine.Publish(TypeAccount, 2)

	evt1 := <-sub
	evt2 := <-sub
	if evt1.Type != TypeTick || evt2.Type != TypeAccount {
		t.Fatalf("unexpected types: %s %s", evt1.Type, evt2.Type)
	}
}

func TestEngine_SlowSubscriberDoesNotBlock(t *testing.T) {
	engine := NewEngine()
	sub := engine.Subscribe()
	defer engine.Unsubscribe(sub)

	// 超出缓冲容量也不能阻塞发布方
	for i := 0; i < 500; i++ {
		engine.Publish(TypeTick, i)
	}

	if len(sub) != cap(sub) {
		t.Fatalf("expected channel full at %d, got %d", cap(sub), len(sub))
	}
}

func TestEngine_UnsubscribeClosesChannel(t *testing.T) {
	engine := NewEngine()
	sub := engine.Subscribe()
	engine.Unsubscribe(sub)

	if _, ok := <-sub; ok {
		t.Fatalf("expected closed channel")
	}

	// 重复取消订阅不应 panic
	engine.Unsubscribe(sub)

	// 取消订阅后发布不应写入已关闭的 channel
	engine.Publish(TypeTick, nil)
}

func TestEngine_ConcurrentPublish(t *testing.T) {
	engine := NewEngine()

	var mu sync.Mutex
	count := 0
	engine.Register(TypeTick, func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				engine.Publish(TypeTick, j)
			}
		}()
	}
	wg.Wait()

	if count != 1000 {
		t.Fatalf("expected 1000 events, got %d", count)
	}
}
