package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"ovacare/backend/database"
	"ovacare/backend/metrics"
	"ovacare/backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxContentLength 是訊息內容（去除前後空白後）允許的最大長度
const MaxContentLength = 500

var (
	// ErrInvalidContent 表示訊息內容為空或超過長度限制
	ErrInvalidContent = errors.New("message content must be 1-500 characters")

	// ErrStoreUnavailable 表示資料庫操作失敗
	ErrStoreUnavailable = errors.New("message store unavailable")
)

// MessageStore 定義聊天訊息的持久化操作
type MessageStore interface {
	// Append 驗證並寫入一條新訊息
	Append(ctx context.Context, authorID, authorName, content string) (models.Message, error)
	// Recent 回傳最新的訊息（新到舊），排除已軟刪除的訊息
	Recent(ctx context.Context, limit, offset int) ([]models.Message, error)
	// SoftDelete 將訊息標記為已刪除，可重複呼叫
	SoftDelete(ctx context.Context, id string) error
}

// MongoMessageStore 是 MessageStore 的 MongoDB 實作
type MongoMessageStore struct {
	store database.Store
}

// NewMessageStore 建立一個以 MongoDB 為後端的訊息儲存
func NewMessageStore(store database.Store) *MongoMessageStore {
	return &MongoMessageStore{store: store}
}

// ValidateContent 去除前後空白並檢查長度，回傳正規化後的內容
func ValidateContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" || len([]rune(trimmed)) > MaxContentLength {
		return "", ErrInvalidContent
	}
	return trimmed, nil
}

// Append 驗證並寫入一條新訊息
func (s *MongoMessageStore) Append(ctx context.Context, authorID, authorName, content string) (models.Message, error) {
	trimmed, err := ValidateContent(content)
	if err != nil {
		metrics.MessagesRejected.Inc()
		return models.Message{}, err
	}

	message := models.Message{
		ID:         primitive.NewObjectID(),
		AuthorID:   authorID,
		AuthorName: authorName,
		Content:    trimmed,
		Timestamp:  time.Now(),
	}

	collection := s.store.Collection("messages")
	if _, err := collection.InsertOne(ctx, message); err != nil {
		return models.Message{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	metrics.MessagesPersisted.Inc()
	return message, nil
}

// Recent 回傳最新的訊息（新到舊）
//
// 以 timestamp 排序並用 _id 決定同時間訊息的先後，
// 讓並發寫入下的分頁仍然有穩定的全序。
func (s *MongoMessageStore) Recent(ctx context.Context, limit, offset int) ([]models.Message, error) {
	filter := bson.M{
		"is_deleted": bson.M{"$ne": true}, // 排除已刪除的訊息
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}})
	findOptions.SetLimit(int64(limit))
	findOptions.SetSkip(int64(offset))

	collection := s.store.Collection("messages")
	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return messages, nil
}

// SoftDelete 將訊息標記為已刪除
func (s *MongoMessageStore) SoftDelete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid message id: %w", err)
	}

	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"is_deleted": true,
			"deleted_at": now,
		},
	}

	collection := s.store.Collection("messages")
	if _, err := collection.UpdateOne(ctx, bson.M{"_id": objectID}, update); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	return nil
}
