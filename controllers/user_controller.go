package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"ovacare/backend/database"
	"ovacare/backend/middleware"
	"ovacare/backend/models"
	"ovacare/backend/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RegisterRequest 用於解析註冊請求的結構
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginCredentials 用於解析登入請求的結構
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse 定義了返回給客戶端的使用者資訊結構，不包含密碼
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Register 註冊新用戶
func Register(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "無效的請求格式"}`, http.StatusBadRequest)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Username == "" || req.Email == "" || len(req.Password) < 6 {
		http.Error(w, `{"error": "用戶名、Email 為必填，密碼至少 6 個字元"}`, http.StatusBadRequest)
		return
	}

	store, ok := database.StoreFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "內部伺服器錯誤"}`, http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	userCollection := store.Collection("users")

	// 檢查 Email 是否已被註冊
	err := userCollection.FindOne(ctx, bson.M{"email": req.Email}).Err()
	if err == nil {
		http.Error(w, `{"error": "Email 已被註冊"}`, http.StatusConflict)
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("Error checking existing email: %v", err)
		http.Error(w, `{"error": "查找用戶時發生錯誤"}`, http.StatusInternalServerError)
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		http.Error(w, `{"error": "密碼處理失敗"}`, http.StatusInternalServerError)
		return
	}

	now := time.Now()
	user := models.User{
		ID:        primitive.NewObjectID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := userCollection.InsertOne(ctx, user); err != nil {
		log.Printf("Failed to create user: %v", err)
		http.Error(w, `{"error": "註冊失敗"}`, http.StatusInternalServerError)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Username)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		http.Error(w, `{"error": "Token 生成失敗"}`, http.StatusInternalServerError)
		return
	}

	log.Printf("New user registered: %s", user.Username)

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user": UserResponse{
			ID:        user.ID.Hex(),
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Login 用戶登入
func Login(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var creds LoginCredentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, `{"error": "無效的請求格式"}`, http.StatusBadRequest)
		return
	}

	store, ok := database.StoreFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "內部伺服器錯誤"}`, http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	err := store.Collection("users").FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		// 不透露帳號是否存在
		http.Error(w, `{"error": "Email 或密碼錯誤"}`, http.StatusUnauthorized)
		return
	}

	if !utils.CheckPasswordHash(creds.Password, user.Password) {
		http.Error(w, `{"error": "Email 或密碼錯誤"}`, http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateJWT(user.ID.Hex(), user.Username)
	if err != nil {
		log.Printf("Error generating JWT: %v", err)
		http.Error(w, `{"error": "Token 生成失敗"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"token": token,
		"user": UserResponse{
			ID:        user.ID.Hex(),
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

// GetProfile 獲取當前用戶的個人資料
func GetProfile(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		http.Error(w, `{"error": "無法獲取用戶 ID"}`, http.StatusUnauthorized)
		return
	}

	store, ok := database.StoreFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "內部伺服器錯誤"}`, http.StatusInternalServerError)
		return
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		http.Error(w, `{"error": "無效的用戶 ID"}`, http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var user models.User
	err = store.Collection("users").FindOne(ctx, bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.Error(w, `{"error": "用戶不存在"}`, http.StatusNotFound)
		} else {
			log.Printf("Error finding user %s: %v", userID, err)
			http.Error(w, `{"error": "查找用戶時發生錯誤"}`, http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user": UserResponse{
			ID:        user.ID.Hex(),
			Username:  user.Username,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}
