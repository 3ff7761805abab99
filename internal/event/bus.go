package event

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType 定义事件类型
type EventType string

const (
	EventTaskSyncComplete EventType = "task_sync_complete"
	EventTaskSyncFailed   EventType = "task_sync_failed"
	EventSessionExpired   EventType = "session_expired"
)

// SyncResult 任务同步事件的载荷
type SyncResult struct {
	Fetched  int       `json:"fetched"`
	Updated  int       `json:"updated"`
	Created  int       `json:"created"`
	SyncedAt time.Time `json:"synced_at"`
	Err      string    `json:"error,omitempty"`
}

// Event 代表一个系统事件
type Event struct {
	Type    EventType
	Payload interface{}
}

// Handler 处理事件的函数签名
type Handler func(event Event)

// Bus 事件总线接口
type Bus interface {
	Subscribe(topic EventType, handler Handler) string // 返回 Subscription ID
	Unsubscribe(topic EventType, subID string)
	Publish(topic EventType, payload interface{})
}

type subscription struct {
	id      string
	handler Handler
}

// InMemoryBus 简单的内存事件总线实现
type InMemoryBus struct {
	mu   sync.RWMutex
	subs map[EventType][]subscription
}

// GlobalBus 全局单例
var GlobalBus Bus = NewInMemoryBus()

func NewInMemoryBus() *InMemoryBus {
	return &InMemoryBus{
		subs: make(map[EventType][]subscription),
	}
}

func (b *InMemoryBus) Subscribe(topic EventType, handler Handler) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	b.subs[topic] = append(b.subs[topic], subscription{id: id, handler: handler})
	return id
}

func (b *InMemoryBus) Unsubscribe(topic EventType, subID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[topic]
	for i, s := range subs {
		if s.id == subID {
			b.subs[topic] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

func (b *InMemoryBus) Publish(topic EventType, payload interface{}) {
	b.mu.RLock()
	subs := b.subs[topic]
	b.mu.RUnlock()

	// 异步执行所有 Handler，避免阻塞发布者
	evt := Event{Type: topic, Payload: payload}
	for _, s := range subs {
		go s.handler(evt)
	}
}
