package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message 代表一條社群聊天訊息
//
// AuthorID 與 AuthorName 只保留在資料庫中供日後稽核使用，
// 絕對不可以出現在任何回傳給客戶端的結構裡（見 WireMessage）。
type Message struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	AuthorID   string             `bson:"author_id" json:"-"`
	AuthorName string             `bson:"author_name" json:"-"`
	Content    string             `bson:"content" json:"-"`
	Timestamp  time.Time          `bson:"timestamp" json:"-"`
	IsDeleted  bool               `bson:"is_deleted" json:"-"`
	DeletedAt  *time.Time         `bson:"deleted_at,omitempty" json:"-"`
}
