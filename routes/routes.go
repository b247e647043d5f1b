package routes

import (
	"encoding/json"
	"log"
	"net/http"

	"ovacare/backend/config"
	"ovacare/backend/controllers"
	"ovacare/backend/database"
	"ovacare/backend/middleware"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// helloHandler 是一個簡單的歡迎處理函式
func helloHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Welcome to OvaCare API!",
		"status":  "ready",
	})
}

// SetupRoutes 設定並返回一個新的 mux.Router
func SetupRoutes(store database.Store, chat *controllers.ChatMessageController) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.WithStore(store))

	// Prometheus 指標（不經過 /api/v1 前綴，也不需要驗證）
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// 為所有 API 加上 /api/v1 前綴
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/", helloHandler).Methods("GET")

	// 健康檢查端點
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":  "healthy",
			"message": "Server is running",
		})
	}).Methods("GET")

	// 註冊來自不同模組的路由
	SetupUserRoutes(api)
	SetupChatMessageRoutes(api, chat)
	SetupPeriodRoutes(api)
	SetupDietRoutes(api)
	SetupPCOSRoutes(api)

	log.Println("Routes have been initialized")

	// 使用配置中的 CORS 設定
	cfg := config.LoadConfig()
	allowedOrigins := handlers.AllowedOrigins(cfg.AllowedOrigins)

	allowedMethods := handlers.AllowedMethods([]string{
		"GET", "POST", "PUT", "DELETE", "OPTIONS", "HEAD",
	})

	allowedHeaders := handlers.AllowedHeaders([]string{
		"Content-Type",
		"Authorization",
		"X-Requested-With",
		"Accept",
		"Origin",
	})

	allowCredentials := handlers.AllowCredentials()

	return handlers.CORS(
		allowedOrigins,
		allowedMethods,
		allowedHeaders,
		allowCredentials,
	)(r)
}
