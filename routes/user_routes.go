package routes

import (
	"ovacare/backend/controllers"
	"ovacare/backend/middleware"

	"github.com/gorilla/mux"
)

// SetupUserRoutes 設定所有與用戶相關的路由
func SetupUserRoutes(router *mux.Router) {
	// 註冊與登入不需要驗證
	router.HandleFunc("/users/register", controllers.Register).Methods("POST")
	router.HandleFunc("/users/login", controllers.Login).Methods("POST")

	// 個人資料需要通過 JWT 驗證
	profileRouter := router.PathPrefix("/users").Subrouter()
	profileRouter.Use(middleware.JwtAuthentication)
	profileRouter.HandleFunc("/profile", controllers.GetProfile).Methods("GET")
}
