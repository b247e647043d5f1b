package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"ovacare/backend/database"
	"ovacare/backend/middleware"
	"ovacare/backend/models"
	"ovacare/backend/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LogPeriodRequest 記錄經期的請求結構
type LogPeriodRequest struct {
	StartDate   string   `json:"start_date"` // YYYY-MM-DD
	EndDate     string   `json:"end_date,omitempty"`
	CycleLength int      `json:"cycle_length,omitempty"`
	Symptoms    []string `json:"symptoms,omitempty"`
}

// LogPeriod 記錄一次經期
func LogPeriod(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		http.Error(w, `{"error": "無法獲取用戶 ID"}`, http.StatusUnauthorized)
		return
	}

	var req LogPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "無效的請求格式"}`, http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		http.Error(w, `{"error": "start_date 格式必須為 YYYY-MM-DD"}`, http.StatusBadRequest)
		return
	}

	var endDate *time.Time
	if req.EndDate != "" {
		parsed, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil || parsed.Before(startDate) {
			http.Error(w, `{"error": "end_date 無效"}`, http.StatusBadRequest)
			return
		}
		endDate = &parsed
	}

	cycleLength := req.CycleLength
	if cycleLength <= 0 {
		cycleLength = services.DefaultCycleLength
	}

	store, ok := database.StoreFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "內部伺服器錯誤"}`, http.StatusInternalServerError)
		return
	}

	entry := models.PeriodLog{
		ID:          primitive.NewObjectID(),
		UserID:      userID,
		StartDate:   startDate,
		EndDate:     endDate,
		CycleLength: cycleLength,
		Symptoms:    req.Symptoms,
		CreatedAt:   time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := store.Collection("period_logs").InsertOne(ctx, entry); err != nil {
		log.Printf("Failed to save period log: %v", err)
		http.Error(w, `{"error": "保存經期紀錄失敗"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"log":     entry,
	})
}

// GetPeriodLogs 取得當前用戶的經期紀錄（新到舊）
func GetPeriodLogs(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cursor, err := store.Collection("period_logs").Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		log.Printf("Error finding period logs for %s: %v", userID, err)
		http.Error(w, `{"error": "查詢經期紀錄時發生錯誤"}`, http.StatusInternalServerError)
		return
	}
	defer cursor.Close(ctx)

	logs := []models.PeriodLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		log.Printf("Error decoding period logs: %v", err)
		http.Error(w, `{"error": "讀取經期紀錄時發生錯誤"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"logs": logs,
	})
}

// GetPrediction 根據最近一次紀錄推算下次經期
func GetPrediction(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	findOptions := options.FindOne().SetSort(bson.D{{Key: "start_date", Value: -1}})

	var latest models.PeriodLog
	err := store.Collection("period_logs").FindOne(ctx, bson.M{"user_id": userID}, findOptions).Decode(&latest)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			http.Error(w, `{"error": "尚無經期紀錄，無法推算"}`, http.StatusNotFound)
		} else {
			log.Printf("Error finding latest period log for %s: %v", userID, err)
			http.Error(w, `{"error": "查詢經期紀錄時發生錯誤"}`, http.StatusInternalServerError)
		}
		return
	}

	prediction := services.PredictCycle(latest, time.Now())

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"prediction": prediction,
	})
}
