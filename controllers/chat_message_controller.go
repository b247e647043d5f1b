package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"ovacare/backend/middleware"
	"ovacare/backend/models"
	"ovacare/backend/services"
	"ovacare/backend/websockets"
)

// SendMessageRequest 發送訊息的請求結構
type SendMessageRequest struct {
	Content string `json:"content"`
}

// ChatMessageController 是聊天訊息的 REST 鏡像，
// 與 Socket.IO 路徑共用同一個訊息儲存與匿名化投影
type ChatMessageController struct {
	messages services.MessageStore
	gateway  *websockets.ChatGateway
}

// NewChatMessageController 建立聊天訊息控制器
func NewChatMessageController(messages services.MessageStore, gateway *websockets.ChatGateway) *ChatMessageController {
	return &ChatMessageController{messages: messages, gateway: gateway}
}

// GetMessages 取得分頁的歷史訊息（頁內舊到新）
func (c *ChatMessageController) GetMessages(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		http.Error(w, `{"error": "無法獲取用戶 ID"}`, http.StatusUnauthorized)
		return
	}

	page := 1
	limit := 50

	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	offset := (page - 1) * limit

	// 多取一條來判斷是否還有更早的訊息
	recent, err := c.messages.Recent(r.Context(), limit+1, offset)
	if err != nil {
		log.Printf("Error finding messages: %v", err)
		http.Error(w, `{"error": "查詢訊息時發生錯誤"}`, http.StatusInternalServerError)
		return
	}

	hasMore := len(recent) > limit
	if hasMore {
		recent = recent[:limit]
	}

	wireMessages := models.AnonymizeOldestFirst(recent, userID)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"messages": wireMessages,
		"has_more": hasMore,
	})
}

// SendMessage 經由 REST 發送訊息
//
// 與 Socket.IO 路徑做相同的驗證與針對性遞送；
// 這條路徑不做備援廣播，發送者已經從同步回應拿到結果。
func (c *ChatMessageController) SendMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		http.Error(w, `{"error": "無法獲取用戶 ID"}`, http.StatusUnauthorized)
		return
	}
	username, _ := r.Context().Value(middleware.UsernameKey).(string)

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "無效的請求格式"}`, http.StatusBadRequest)
		return
	}

	message, err := c.messages.Append(r.Context(), userID, username, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrInvalidContent) {
			http.Error(w, `{"error": "訊息內容必須為 1-500 字"}`, http.StatusBadRequest)
			return
		}
		log.Printf("Failed to save message: %v", err)
		http.Error(w, `{"error": "保存訊息失敗"}`, http.StatusInternalServerError)
		return
	}

	// 即時通知所有在線連線
	c.gateway.FanOut(message)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": models.Anonymize(message, userID),
	})
}

// GetOnlineCount 永遠回報零
//
// 在線人數與名單即使以彙總形式也不對外暴露，
// 這是匿名性設計的一部分，不是未完成的功能。
func (c *ChatMessageController) GetOnlineCount(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"count": 0,
		"users": []string{},
	})
}
