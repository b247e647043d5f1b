package websockets

import "sync"

// Connection 是遞送訊息所需的最小連線介面，
// socketio.Conn 滿足它，測試中可以注入替身。
type Connection interface {
	Emit(event string, v ...interface{})
}

// PresenceEntry 代表一條已通過驗證的活躍連線
type PresenceEntry struct {
	Identity    string // 已驗證的使用者 ID
	DisplayName string // 握手時從身分解析，只供後端診斷使用
	ConnID      string
	Conn        Connection
}

// PresenceDirectory 是程序內的在線名冊：身分 -> 活躍連線
//
// 以身分為鍵，同一個身分的第二條連線會取代第一條
// （例如開了兩個分頁時，只有最新的分頁會收到針對性遞送）。
// 程序重啟後名冊清空，由客戶端重連重建。
type PresenceDirectory struct {
	mu      sync.RWMutex
	entries map[string]PresenceEntry
}

// NewPresenceDirectory 建立一個空的在線名冊
func NewPresenceDirectory() *PresenceDirectory {
	return &PresenceDirectory{
		entries: make(map[string]PresenceEntry),
	}
}

// Add 登記一條連線，同一身分的舊連線會被取代
func (d *PresenceDirectory) Add(entry PresenceEntry) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.entries[entry.Identity] = entry
}

// Remove 移除一個身分的登記
//
// connID 必須與目前登記的連線相符才會移除，
// 避免被取代的舊連線斷線時誤刪新連線的登記。
func (d *PresenceDirectory) Remove(identity, connID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if entry, ok := d.entries[identity]; ok && entry.ConnID == connID {
		delete(d.entries, identity)
	}
}

// ForEach 對名冊中的每條連線執行 fn，順序不保證
func (d *PresenceDirectory) ForEach(fn func(entry PresenceEntry)) {
	d.mu.RLock()
	snapshot := make([]PresenceEntry, 0, len(d.entries))
	for _, entry := range d.entries {
		snapshot = append(snapshot, entry)
	}
	d.mu.RUnlock()

	for _, entry := range snapshot {
		fn(entry)
	}
}

// Contains 回報某個身分目前是否在線（只供內部使用，不對外暴露）
func (d *PresenceDirectory) Contains(identity string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.entries[identity]
	return ok
}

// IsEmpty 回報名冊是否為空
func (d *PresenceDirectory) IsEmpty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.entries) == 0
}
