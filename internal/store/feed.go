// Package store 提供记录变更的进程内广播。
// 各业务服务在写库成功后发布事件，前端通过 SSE 订阅同一条流，
// 对应托管后端时代的 change-feed 行为。
package store

import "sync"

// Action 表示记录发生的变更类型。
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Event 描述一次记录变更。Payload 为变更后的完整记录，删除事件为空。
type Event struct {
	Entity  string      `json:"entity"`
	Action  Action      `json:"action"`
	ID      string      `json:"id"`
	Payload interface{} `json:"payload,omitempty"`
}

// 订阅通道的缓冲大小。消费不及时的订阅者会丢事件而不是阻塞写入方。
const subscriberBuffer = 16

// Feed 是一个简单的多订阅者广播器。
// nil Feed 上的所有方法都可安全调用（便于测试中省略装配）。
type Feed struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

// NewFeed 构造 Feed。
func NewFeed() *Feed {
	return &Feed{subs: make(map[chan Event]struct{})}
}

// Subscribe 注册一个订阅者，返回事件通道和取消函数。
// 取消后通道会被关闭。
func (f *Feed) Subscribe() (<-chan Event, func()) {
	if f == nil {
		ch := make(chan Event)
		close(ch)
		return ch, func() {}
	}

	ch := make(chan Event, subscriberBuffer)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// publish 将事件投递给所有订阅者，缓冲已满的订阅者直接跳过。
func (f *Feed) publish(e Event) {
	if f == nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Created 广播一条新建事件。
func (f *Feed) Created(entity, id string, payload interface{}) {
	f.publish(Event{Entity: entity, Action: ActionCreate, ID: id, Payload: payload})
}

// Updated 广播一条更新事件。
func (f *Feed) Updated(entity, id string, payload interface{}) {
	f.publish(Event{Entity: entity, Action: ActionUpdate, ID: id, Payload: payload})
}

// Deleted 广播一条删除事件。
func (f *Feed) Deleted(entity, id string) {
	f.publish(Event{Entity: entity, Action: ActionDelete, ID: id})
}
