package websockets

import (
	"context"
	"sync"
	"testing"
	"time"

	"ovacare/backend/models"
	"ovacare/backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeMessageStore 是記憶體版的 MessageStore，行為與 Mongo 實作一致
type fakeMessageStore struct {
	mu         sync.Mutex
	messages   []models.Message
	failAppend error
}

func (f *fakeMessageStore) Append(ctx context.Context, authorID, authorName, content string) (models.Message, error) {
	if f.failAppend != nil {
		return models.Message{}, f.failAppend
	}
	trimmed, err := services.ValidateContent(content)
	if err != nil {
		return models.Message{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	msg := models.Message{
		ID:         primitive.NewObjectID(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    trimmed,
		Timestamp:  time.Now(),
	}
	f.messages = append(f.messages, msg)
	return msg, nil
}

func (f *fakeMessageStore) Recent(ctx context.Context, limit, offset int) ([]models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// 新到舊
	reversed := make([]models.Message, 0, len(f.messages))
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].IsDeleted {
			continue
		}
		reversed = append(reversed, f.messages[i])
	}

	if offset >= len(reversed) {
		return []models.Message{}, nil
	}
	reversed = reversed[offset:]
	if len(reversed) > limit {
		reversed = reversed[:limit]
	}
	return reversed, nil
}

func (f *fakeMessageStore) SoftDelete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.messages {
		if f.messages[i].ID.Hex() == id {
			f.messages[i].IsDeleted = true
		}
	}
	return nil
}

func (f *fakeMessageStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.messages)
}

// newTestGateway 建立一個不啟動 Socket.IO 伺服器的閘道，
// 備援廣播被記錄下來供測試檢查
func newTestGateway(store *fakeMessageStore) (*ChatGateway, *[]emittedEvent) {
	broadcasts := &[]emittedEvent{}
	gateway := &ChatGateway{
		Presence: NewPresenceDirectory(),
		Messages: store,
		broadcastAll: func(event string, v interface{}) {
			*broadcasts = append(*broadcasts, emittedEvent{Event: event, Args: []interface{}{v}})
		},
	}
	return gateway, broadcasts
}

func TestHandleSendDeliversPerViewerCopies(t *testing.T) {
	store := &fakeMessageStore{}
	gateway, broadcasts := newTestGateway(store)

	connA := &fakeConn{}
	connB := &fakeConn{}
	gateway.Presence.Add(PresenceEntry{Identity: "user-a", DisplayName: "alice", ConnID: "c1", Conn: connA})
	gateway.Presence.Add(PresenceEntry{Identity: "user-b", DisplayName: "bella", ConnID: "c2", Conn: connB})

	sender := &AuthenticatedUser{ID: "user-a", Username: "alice"}
	gateway.handleSend(sender, "hello", connA)

	require.Equal(t, 1, store.count())

	// 雙方都各收到一份匿名化的 new-message
	eventsA := connA.emitted()
	eventsB := connB.emitted()
	require.Len(t, eventsA, 1)
	require.Len(t, eventsB, 1)
	assert.Equal(t, "new-message", eventsA[0].Event)
	assert.Equal(t, "new-message", eventsB[0].Event)

	wireA := eventsA[0].Args[0].(models.WireMessage)
	wireB := eventsB[0].Args[0].(models.WireMessage)

	// 顯示名稱固定，只有發送者自己的 is_viewer_author 為 true
	assert.Equal(t, models.AnonymousLabel, wireA.DisplayName)
	assert.Equal(t, models.AnonymousLabel, wireB.DisplayName)
	assert.True(t, wireA.IsViewerAuthor)
	assert.False(t, wireB.IsViewerAuthor)
	assert.Equal(t, wireA.ID, wireB.ID)

	// 備援廣播一次，沒有觀看者，同一個 id 讓客戶端可以去重
	require.Len(t, *broadcasts, 1)
	fallback := (*broadcasts)[0].Args[0].(models.WireMessage)
	assert.Equal(t, "new-message", (*broadcasts)[0].Event)
	assert.Equal(t, wireA.ID, fallback.ID)
	assert.Equal(t, models.AnonymousLabel, fallback.DisplayName)
	assert.False(t, fallback.IsViewerAuthor)
}

func TestHandleSendRejectsUnauthenticated(t *testing.T) {
	store := &fakeMessageStore{}
	gateway, broadcasts := newTestGateway(store)

	conn := &fakeConn{}
	gateway.handleSend(nil, "hello", conn)

	// 拒絕且不持久化、不廣播
	assert.Equal(t, 0, store.count())
	assert.Empty(t, *broadcasts)

	events := conn.emitted()
	require.Len(t, events, 1)
	assert.Equal(t, "send-error", events[0].Event)
}

func TestHandleSendInvalidContentOnlyNotifiesSender(t *testing.T) {
	store := &fakeMessageStore{}
	gateway, broadcasts := newTestGateway(store)

	sender := &fakeConn{}
	other := &fakeConn{}
	gateway.Presence.Add(PresenceEntry{Identity: "user-a", ConnID: "c1", Conn: sender})
	gateway.Presence.Add(PresenceEntry{Identity: "user-b", ConnID: "c2", Conn: other})

	gateway.handleSend(&AuthenticatedUser{ID: "user-a", Username: "alice"}, "   ", sender)

	assert.Equal(t, 0, store.count())
	assert.Empty(t, *broadcasts)
	assert.Empty(t, other.emitted())

	events := sender.emitted()
	require.Len(t, events, 1)
	assert.Equal(t, "send-error", events[0].Event)
}

func TestHandleSendStoreFailure(t *testing.T) {
	store := &fakeMessageStore{failAppend: services.ErrStoreUnavailable}
	gateway, broadcasts := newTestGateway(store)

	sender := &fakeConn{}
	gateway.Presence.Add(PresenceEntry{Identity: "user-a", ConnID: "c1", Conn: sender})

	gateway.handleSend(&AuthenticatedUser{ID: "user-a", Username: "alice"}, "hello", sender)

	assert.Empty(t, *broadcasts)
	events := sender.emitted()
	require.Len(t, events, 1)
	assert.Equal(t, "send-error", events[0].Event)
}

func TestFanOutComputesFlagPerRecipient(t *testing.T) {
	store := &fakeMessageStore{}
	gateway, _ := newTestGateway(store)

	conns := map[string]*fakeConn{
		"user-a": {},
		"user-b": {},
		"user-c": {},
	}
	for identity, conn := range conns {
		gateway.Presence.Add(PresenceEntry{Identity: identity, ConnID: identity, Conn: conn})
	}

	msg := models.Message{
		ID:        primitive.NewObjectID(),
		AuthorID:  "user-b",
		Content:   "hi",
		Timestamp: time.Now(),
	}
	gateway.FanOut(msg)

	for identity, conn := range conns {
		events := conn.emitted()
		require.Len(t, events, 1, "identity %s", identity)
		wire := events[0].Args[0].(models.WireMessage)
		assert.Equal(t, identity == "user-b", wire.IsViewerAuthor, "identity %s", identity)
		assert.Equal(t, models.AnonymousLabel, wire.DisplayName)
	}
}
