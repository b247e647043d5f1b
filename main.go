package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ovacare/backend/config"
	"ovacare/backend/controllers"
	"ovacare/backend/database"
	"ovacare/backend/routes"
	"ovacare/backend/services"
	"ovacare/backend/websockets"
)

func main() {
	// 1. 載入設定
	cfg := config.LoadConfig()

	log.Printf("=== Starting OvaCare Server ===")
	log.Printf("Version: %s", cfg.AppVersion)
	log.Printf("Environment: %s", cfg.Environment)
	log.Printf("Server Port: %s", cfg.ServerPort)
	log.Printf("MongoDB Database: %s", cfg.MongoDbName)
	log.Printf("ML Service URL: %s", cfg.MLServiceURL)
	log.Printf("===============================")

	// 2. 連線到資料庫
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()
	store, err := database.NewMongoStore(dbCtx, cfg.MongoURI, cfg.MongoDbName)
	if err != nil {
		log.Fatalf("Could not connect to MongoDB: %v", err)
	}

	// 應用程式結束時斷開資料庫連線
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer disconnectCancel()
		if err := store.Disconnect(disconnectCtx); err != nil {
			log.Fatalf("Error disconnecting from MongoDB: %v", err)
		}
		log.Println("Disconnected from MongoDB.")
	}()

	// 3. 初始化 Socket.IO 聊天閘道
	log.Println("Initializing Socket.IO server...")
	messageStore := services.NewMessageStore(store)
	gateway := websockets.NewChatGateway(messageStore)

	go func() {
		if err := gateway.Server.Serve(); err != nil {
			log.Fatalf("Socket.IO listen error: %s\n", err)
		}
	}()
	defer gateway.Server.Close()
	log.Println("✓ Socket.IO server initialized")

	// 4. 初始化 HTTP API 路由
	log.Println("Setting up HTTP routes...")
	chatController := controllers.NewChatMessageController(messageStore, gateway)
	apiHandler := routes.SetupRoutes(store, chatController)
	log.Println("✓ HTTP routes configured")

	// 5. 設定 HTTP 伺服器
	serverMux := http.NewServeMux()
	serverMux.Handle("/socket.io/", gateway.Server) // 將 /socket.io/ 路徑交給 Socket.IO 處理
	serverMux.Handle("/", apiHandler)

	server := &http.Server{
		Addr:         cfg.ServerPort,
		Handler:      serverMux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// 6. 優雅地啟動與關閉伺服器
	go func() {
		log.Printf("🚀 Server is ready and listening on port %s", cfg.ServerPort)
		log.Printf("📡 Socket.IO endpoint: http://localhost%s/socket.io/", cfg.ServerPort)
		log.Printf("🌐 API endpoint: http://localhost%s/api/v1/", cfg.ServerPort)

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", cfg.ServerPort, err)
		}
	}()

	// 等待中斷訊號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	// 給予 5 秒的時間來處理現有請求
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("✓ Server exited gracefully")
}
