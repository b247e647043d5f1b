package routes

import (
	"ovacare/backend/controllers"
	"ovacare/backend/middleware"

	"github.com/gorilla/mux"
)

// SetupPeriodRoutes 設定所有與經期追蹤相關的路由
func SetupPeriodRoutes(router *mux.Router) {
	periodRouter := router.PathPrefix("/periods").Subrouter()
	periodRouter.Use(middleware.JwtAuthentication)

	periodRouter.HandleFunc("", controllers.LogPeriod).Methods("POST")
	periodRouter.HandleFunc("", controllers.GetPeriodLogs).Methods("GET")
	periodRouter.HandleFunc("/prediction", controllers.GetPrediction).Methods("GET")
}
