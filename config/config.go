package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// AppConfig 存放應用程式的所有設定
type AppConfig struct {
	AppVersion     string
	Environment    string // 環境類型: production, development, testing
	ServerPort     string
	MongoURI       string
	MongoDbName    string
	JwtSecret      string
	MLServiceURL   string   // Python PCOS 推論服務的位址
	AllowedOrigins []string // 允許的 CORS 來源
}

// LoadConfig 載入設定
func LoadConfig() AppConfig {
	// 在 Docker 環境中直接使用環境變數，本地開發才嘗試讀取 .env 檔案
	if os.Getenv("DOCKER_ENV") != "true" && os.Getenv("CONTAINER") != "true" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: Could not find .env file, using environment variables")
		}
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = ":5000"
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}

	mongoDbName := os.Getenv("MONGO_DB_NAME")
	if mongoDbName == "" {
		// 根據環境自動選擇資料庫名稱
		if environment == "production" {
			mongoDbName = "ovacare_db"
		} else {
			mongoDbName = "ovacare_db_dev"
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	mlServiceURL := os.Getenv("ML_SERVICE_URL")
	if mlServiceURL == "" {
		mlServiceURL = "http://localhost:5001"
	}

	// CORS 配置
	var allowedOrigins []string
	if environment == "production" {
		allowedOrigins = []string{
			"https://ovacare.app",
			"https://www.ovacare.app",
		}
	} else {
		// 開發環境允許本地前端來源
		allowedOrigins = []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"*",
		}
	}

	return AppConfig{
		AppVersion:     "1.2.0",
		Environment:    environment,
		ServerPort:     port,
		MongoURI:       mongoURI,
		MongoDbName:    mongoDbName,
		JwtSecret:      jwtSecret,
		MLServiceURL:   mlServiceURL,
		AllowedOrigins: allowedOrigins,
	}
}
