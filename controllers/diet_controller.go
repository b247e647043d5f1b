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
	"ovacare/backend/services"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AddDietEntryRequest 新增飲食紀錄的請求結構
type AddDietEntryRequest struct {
	FoodName string  `json:"food_name"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
	MealType string  `json:"meal_type"`
}

// dayRange 回傳某日期字串（YYYY-MM-DD，空字串代表今天）對應的起迄時間
func dayRange(dateStr string) (time.Time, time.Time, error) {
	day := time.Now()
	if dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		day = parsed
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return start, start.AddDate(0, 0, 1), nil
}

// AddDietEntry 新增一筆飲食紀錄
func AddDietEntry(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, ok := r.Context().Value(middleware.UserIDKey).(string)
	if !ok {
		http.Error(w, `{"error": "無法獲取用戶 ID"}`, http.StatusUnauthorized)
		return
	}

	var req AddDietEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "無效的請求格式"}`, http.StatusBadRequest)
		return
	}

	req.FoodName = strings.TrimSpace(req.FoodName)
	if req.FoodName == "" || req.Calories < 0 {
		http.Error(w, `{"error": "food_name 為必填，calories 不可為負"}`, http.StatusBadRequest)
		return
	}

	mealType := req.MealType
	switch mealType {
	case "breakfast", "lunch", "dinner", "snack":
	case "":
		mealType = "snack"
	default:
		http.Error(w, `{"error": "meal_type 必須為 breakfast/lunch/dinner/snack"}`, http.StatusBadRequest)
		return
	}

	store, ok := database.StoreFromContext(r.Context())
	if !ok {
		http.Error(w, `{"error": "內部伺服器錯誤"}`, http.StatusInternalServerError)
		return
	}

	entry := models.DietEntry{
		ID:       primitive.NewObjectID(),
		UserID:   userID,
		FoodName: req.FoodName,
		Calories: req.Calories,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fats:     req.Fats,
		MealType: mealType,
		Date:     time.Now(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if _, err := store.Collection("diet_entries").InsertOne(ctx, entry); err != nil {
		log.Printf("Failed to save diet entry: %v", err)
		http.Error(w, `{"error": "保存飲食紀錄失敗"}`, http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"entry":   entry,
	})
}

// findDietEntries 查詢某用戶某一天的飲食紀錄
func findDietEntries(ctx context.Context, store database.Store, userID, dateStr string) ([]models.DietEntry, error) {
	start, end, err := dayRange(dateStr)
	if err != nil {
		return nil, err
	}

	filter := bson.M{
		"user_id": userID,
		"date":    bson.M{"$gte": start, "$lt": end},
	}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := store.Collection("diet_entries").Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	entries := []models.DietEntry{}
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetDietEntries 取得某一天的飲食紀錄（預設今天）
func GetDietEntries(w http.ResponseWriter, r *http.Request) {
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

	entries, err := findDietEntries(ctx, store, userID, r.URL.Query().Get("date"))
	if err != nil {
		log.Printf("Error finding diet entries for %s: %v", userID, err)
		http.Error(w, `{"error": "查詢飲食紀錄時發生錯誤"}`, http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"entries": entries,
	})
}

// GetDietSummary 取得某一天的營養總和（預設今天）
func GetDietSummary(w http.ResponseWriter, r *http.Request) {
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

	entries, err := findDietEntries(ctx, store, userID, r.URL.Query().Get("date"))
	if err != nil {
		log.Printf("Error finding diet entries for %s: %v", userID, err)
		http.Error(w, `{"error": "查詢飲食紀錄時發生錯誤"}`, http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"summary": services.SumNutrition(entries),
	})
}
