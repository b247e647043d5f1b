package routes

import (
	"ovacare/backend/controllers"
	"ovacare/backend/middleware"

	"github.com/gorilla/mux"
)

// SetupChatMessageRoutes 設定所有與聊天訊息相關的路由
//
// 所有路由都受 JWT 驗證保護；回應中的訊息一律是匿名化後的投影。
func SetupChatMessageRoutes(router *mux.Router, chat *controllers.ChatMessageController) {
	messageRouter := router.PathPrefix("/messages").Subrouter()
	messageRouter.Use(middleware.JwtAuthentication)

	messageRouter.HandleFunc("", chat.GetMessages).Methods("GET")
	messageRouter.HandleFunc("/send", chat.SendMessage).Methods("POST")

	// 在線人數端點永遠回報零，但仍需通過驗證
	onlineRouter := router.PathPrefix("/online-count").Subrouter()
	onlineRouter.Use(middleware.JwtAuthentication)
	onlineRouter.HandleFunc("", chat.GetOnlineCount).Methods("GET")
}
