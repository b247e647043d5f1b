package websockets

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeConn 記錄 Emit 呼叫，供測試檢查遞送內容
type fakeConn struct {
	mu     sync.Mutex
	events []emittedEvent
}

type emittedEvent struct {
	Event string
	Args  []interface{}
}

func (c *fakeConn) Emit(event string, v ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, emittedEvent{Event: event, Args: v})
}

func (c *fakeConn) emitted() []emittedEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]emittedEvent(nil), c.events...)
}

func TestPresenceAddAndContains(t *testing.T) {
	dir := NewPresenceDirectory()
	assert.True(t, dir.IsEmpty())

	dir.Add(PresenceEntry{Identity: "u1", DisplayName: "alice", ConnID: "c1", Conn: &fakeConn{}})

	assert.False(t, dir.IsEmpty())
	assert.True(t, dir.Contains("u1"))
	assert.False(t, dir.Contains("u2"))
}

func TestPresenceSecondConnectionReplacesFirst(t *testing.T) {
	dir := NewPresenceDirectory()
	first := &fakeConn{}
	second := &fakeConn{}

	dir.Add(PresenceEntry{Identity: "u1", ConnID: "c1", Conn: first})
	dir.Add(PresenceEntry{Identity: "u1", ConnID: "c2", Conn: second})

	var delivered []string
	dir.ForEach(func(entry PresenceEntry) {
		delivered = append(delivered, entry.ConnID)
	})

	// 同一身分只保留最新的連線
	assert.Equal(t, []string{"c2"}, delivered)
}

func TestPresenceRemoveIgnoresStaleConnID(t *testing.T) {
	dir := NewPresenceDirectory()
	dir.Add(PresenceEntry{Identity: "u1", ConnID: "c1", Conn: &fakeConn{}})
	dir.Add(PresenceEntry{Identity: "u1", ConnID: "c2", Conn: &fakeConn{}})

	// 被取代的舊連線斷線時不可刪除新連線的登記
	dir.Remove("u1", "c1")
	assert.True(t, dir.Contains("u1"))

	dir.Remove("u1", "c2")
	assert.False(t, dir.Contains("u1"))
	assert.True(t, dir.IsEmpty())
}

func TestPresenceRemoveIsIdempotent(t *testing.T) {
	dir := NewPresenceDirectory()
	dir.Add(PresenceEntry{Identity: "u1", ConnID: "c1", Conn: &fakeConn{}})

	dir.Remove("u1", "c1")
	dir.Remove("u1", "c1")
	assert.True(t, dir.IsEmpty())
}

func TestPresenceConcurrentMutation(t *testing.T) {
	dir := NewPresenceDirectory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			identity := fmt.Sprintf("u%d", i)
			connID := fmt.Sprintf("c%d", i)
			dir.Add(PresenceEntry{Identity: identity, ConnID: connID, Conn: &fakeConn{}})
			dir.ForEach(func(entry PresenceEntry) {})
			dir.Remove(identity, connID)
		}(i)
	}
	wg.Wait()

	assert.True(t, dir.IsEmpty())
}
