package models

import "time"

// AnonymousLabel 是所有訊息對外顯示的固定名稱
const AnonymousLabel = "Anonymous"

// WireMessage 是訊息對外的唯一投影
//
// 無論觀看者是誰，DisplayName 永遠是 AnonymousLabel；
// IsViewerAuthor 只是一個布林值，用來讓前端把自己的訊息靠右顯示，
// 它是授權資訊唯一允許洩漏的形式。
// 同一個 id 可能因為備援廣播被送達兩次，客戶端必須以 id 去重。
type WireMessage struct {
	ID             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Content        string `json:"content"`
	CreatedAt      string `json:"created_at"`
	IsViewerAuthor bool   `json:"is_viewer_author"`
}

// AnonymizeOldestFirst 將一批「新到舊」排序的訊息反轉為「舊到新」，
// 並逐條匿名化。快照推送與 REST 分頁都經過這裡，
// 確保兩條路徑產生完全一致的 WireMessage。
func AnonymizeOldestFirst(msgs []Message, viewerID string) []WireMessage {
	wire := make([]WireMessage, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		wire = append(wire, Anonymize(msgs[i], viewerID))
	}
	return wire
}

// Anonymize 將一條已儲存的訊息轉換為可以跨出程序邊界的投影
//
// viewerID 為空字串時代表沒有特定觀看者（例如備援廣播），
// 此時 IsViewerAuthor 一律為 false。
func Anonymize(msg Message, viewerID string) WireMessage {
	return WireMessage{
		ID:             msg.ID.Hex(),
		DisplayName:    AnonymousLabel,
		Content:        msg.Content,
		CreatedAt:      msg.Timestamp.Format(time.RFC3339),
		IsViewerAuthor: viewerID != "" && viewerID == msg.AuthorID,
	}
}
