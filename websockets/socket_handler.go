package websockets

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"ovacare/backend/metrics"
	"ovacare/backend/models"
	"ovacare/backend/services"
	"ovacare/backend/utils"

	socketio "github.com/googollee/go-socket.io"
)

// communityRoom 是唯一的匿名聊天室，所有通過驗證的連線都會加入
const communityRoom = "community"

// snapshotLimit 是握手後推送的歷史訊息上限
const snapshotLimit = 50

// AuthenticatedUser 用於儲存從 token 解析出的使用者資訊
type AuthenticatedUser struct {
	ID       string
	Username string
}

// SendMessagePayload 定義了從客戶端接收到的聊天訊息結構
type SendMessagePayload struct {
	Content string `json:"content"`
}

// TypingPayload 定義了打字狀態事件的結構
type TypingPayload struct {
	IsTyping bool `json:"is_typing"`
}

// ChatGateway 將 Socket.IO 伺服器、在線名冊與訊息儲存綁在一起，
// REST 發送路徑也透過它做針對性遞送
type ChatGateway struct {
	Server   *socketio.Server
	Presence *PresenceDirectory
	Messages services.MessageStore

	// broadcastAll 對聊天室全體做一次備援廣播
	broadcastAll func(event string, v interface{})
}

// NewChatGateway 建立並配置一個新的 Socket.IO 聊天閘道
func NewChatGateway(messages services.MessageStore) *ChatGateway {
	server := socketio.NewServer(nil)
	gateway := &ChatGateway{
		Server:   server,
		Presence: NewPresenceDirectory(),
		Messages: messages,
		broadcastAll: func(event string, v interface{}) {
			server.BroadcastToRoom("/", communityRoom, event, v)
		},
	}
	gateway.registerHandlers()
	return gateway
}

// FanOut 針對名冊中的每條連線個別遞送訊息，
// 讓每個收件者拿到以自己為觀看者計算的 is_viewer_author。
// 單一連線遞送失敗不影響其他連線。
func (g *ChatGateway) FanOut(message models.Message) {
	g.Presence.ForEach(func(entry PresenceEntry) {
		entry.Conn.Emit("new-message", models.Anonymize(message, entry.Identity))
		metrics.FanoutDeliveries.Inc()
	})
}

// handleSend 執行單次聊天發送：驗證、寫入、逐一遞送、備援廣播
//
// 驗證或儲存失敗只以 send-error 回報給發送者，不中斷連線，
// 也不會有任何東西被持久化或廣播。
func (g *ChatGateway) handleSend(user *AuthenticatedUser, content string, sender Connection) {
	if user == nil {
		// 未完成握手驗證的連線不得發送訊息
		sender.Emit("send-error", map[string]string{"reason": "尚未通過驗證"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	message, err := g.Messages.Append(ctx, user.ID, user.Username, content)
	if err != nil {
		if errors.Is(err, services.ErrInvalidContent) {
			sender.Emit("send-error", map[string]string{"reason": "訊息內容必須為 1-500 字"})
		} else {
			log.Printf("Failed to save message from user connection: %v", err)
			sender.Emit("send-error", map[string]string{"reason": "訊息儲存失敗，請稍後再試"})
		}
		return
	}

	// 針對名冊中的每條連線個別遞送
	g.FanOut(message)

	// 備援廣播給聊天室全體，防範名冊與底層群組狀態不一致；
	// 已收到上一步的連線會再收到一份，客戶端以 id 去重
	g.broadcastAll("new-message", models.Anonymize(message, ""))
	metrics.FallbackBroadcasts.Inc()
}

func (g *ChatGateway) registerHandlers() {
	server := g.Server

	// 當有新的客戶端連線時觸發 - 進行 Token 驗證
	server.OnConnect("/", func(s socketio.Conn) error {
		queryValues, err := url.ParseQuery(s.URL().RawQuery)
		if err != nil {
			log.Printf("Connection rejected: could not parse query for socket %s: %v", s.ID(), err)
			return fmt.Errorf("authentication error: invalid query parameters")
		}

		token := queryValues.Get("token")
		if token == "" {
			metrics.AuthFailures.Inc()
			log.Printf("Connection rejected: no token provided for socket %s", s.ID())
			return fmt.Errorf("authentication error: no token")
		}

		claims, err := utils.VerifyJWT(token)
		if err != nil {
			metrics.AuthFailures.Inc()
			log.Printf("Connection rejected: invalid token for socket %s: %v", s.ID(), err)
			return fmt.Errorf("authentication error: invalid token")
		}

		user := &AuthenticatedUser{
			ID:       claims.UserID,
			Username: claims.Username,
		}
		s.SetContext(user)
		s.Join(communityRoom)
		g.Presence.Add(PresenceEntry{
			Identity:    user.ID,
			DisplayName: user.Username,
			ConnID:      s.ID(),
			Conn:        s,
		})

		log.Printf("Socket connected and authenticated: SocketID=%s", s.ID())

		// 推送匿名化後的歷史快照（舊到新），只給這條連線
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		recent, err := g.Messages.Recent(ctx, snapshotLimit, 0)
		if err != nil {
			log.Printf("Could not load history snapshot for socket %s: %v", s.ID(), err)
			s.Emit("recent-history", []models.WireMessage{})
			return nil
		}

		s.Emit("recent-history", models.AnonymizeOldestFirst(recent, user.ID))
		return nil
	})

	// 處理聊天訊息：驗證 -> 寫入 -> 逐一遞送 -> 備援廣播
	server.OnEvent("/", "send-message", func(s socketio.Conn, payload SendMessagePayload) {
		user, _ := s.Context().(*AuthenticatedUser)
		g.handleSend(user, payload.Content, s)
	})

	// 打字狀態：轉發給發送者以外的所有連線，不帶任何身分，不持久化
	server.OnEvent("/", "typing", func(s socketio.Conn, payload TypingPayload) {
		user, ok := s.Context().(*AuthenticatedUser)
		if !ok || user == nil {
			return
		}

		g.Presence.ForEach(func(entry PresenceEntry) {
			if entry.Identity == user.ID {
				return
			}
			entry.Conn.Emit("someone-typing", map[string]bool{"typing": payload.IsTyping})
		})
	})

	// 心跳檢測：直接回應同一條連線
	server.OnEvent("/", "ping", func(s socketio.Conn) {
		s.Emit("pong")
	})

	server.OnError("/", func(s socketio.Conn, e error) {
		// 連線物件 s 可能為 nil，必須先檢查
		if s == nil {
			log.Printf("Socket error with a nil connection: %v", e)
			return
		}
		log.Printf("Socket error for socket %s: %v", s.ID(), e)
	})

	// 當客戶端斷線時觸發
	server.OnDisconnect("/", func(s socketio.Conn, reason string) {
		user, ok := s.Context().(*AuthenticatedUser)
		if ok && user != nil {
			g.Presence.Remove(user.ID, s.ID())
			log.Printf("Authenticated socket disconnected (SocketID: %s): %s", s.ID(), reason)
		} else {
			// 未通過驗證的連線從未進入名冊
			log.Printf("Unauthenticated socket disconnected (SocketID: %s): %s", s.ID(), reason)
		}
	})
}
