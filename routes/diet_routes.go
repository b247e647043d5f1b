package routes

import (
	"ovacare/backend/controllers"
	"ovacare/backend/middleware"

	"github.com/gorilla/mux"
)

// SetupDietRoutes 設定所有與飲食紀錄相關的路由
func SetupDietRoutes(router *mux.Router) {
	dietRouter := router.PathPrefix("/diet").Subrouter()
	dietRouter.Use(middleware.JwtAuthentication)

	dietRouter.HandleFunc("", controllers.AddDietEntry).Methods("POST")
	dietRouter.HandleFunc("", controllers.GetDietEntries).Methods("GET")
	dietRouter.HandleFunc("/summary", controllers.GetDietSummary).Methods("GET")
}
