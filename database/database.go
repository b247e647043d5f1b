package database

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Store 抽象化資料庫存取，方便在測試中注入替身
type Store interface {
	Collection(name string) *mongo.Collection
	Disconnect(ctx context.Context) error
}

// MongoStore 是 Store 的 MongoDB 實作
type MongoStore struct {
	client *mongo.Client
	dbName string
}

// NewMongoStore 連線到 MongoDB 並回傳一個 MongoStore
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// 檢查連線
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")
	return &MongoStore{client: client, dbName: dbName}, nil
}

// Collection 返回一個集合的實例
func (s *MongoStore) Collection(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// Disconnect 斷開與 MongoDB 的連線
func (s *MongoStore) Disconnect(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// storeKey 用於在 context 中攜帶 Store
type storeKey struct{}

// WithStore 將 Store 放入 context
func WithStore(ctx context.Context, store Store) context.Context {
	return context.WithValue(ctx, storeKey{}, store)
}

// StoreFromContext 從 context 取出 Store
func StoreFromContext(ctx context.Context) (Store, bool) {
	store, ok := ctx.Value(storeKey{}).(Store)
	return store, ok
}
