package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 計數器只統計總量，刻意不提供任何以使用者或在線狀態為維度的序列，
// 與 /online-count 永遠回報 0 是同一個匿名性決策。
var (
	// MessagesPersisted 成功寫入資料庫的聊天訊息總數
	MessagesPersisted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ovacare_chat_messages_persisted_total",
		Help: "Total number of chat messages persisted to the store.",
	})

	// MessagesRejected 因內容驗證失敗而被拒絕的訊息總數
	MessagesRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ovacare_chat_messages_rejected_total",
		Help: "Total number of chat messages rejected by content validation.",
	})

	// FanoutDeliveries 針對個別連線的訊息遞送次數（不含備援廣播）
	FanoutDeliveries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ovacare_chat_fanout_deliveries_total",
		Help: "Total number of targeted per-connection message deliveries.",
	})

	// FallbackBroadcasts 備援全體廣播的次數
	FallbackBroadcasts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ovacare_chat_fallback_broadcasts_total",
		Help: "Total number of fallback broadcast-to-all sends.",
	})

	// AuthFailures 驗證失敗的次數（REST 與 socket 握手合計）
	AuthFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ovacare_auth_failures_total",
		Help: "Total number of failed credential verifications.",
	})
)
