package routes

import (
	"ovacare/backend/controllers"
	"ovacare/backend/middleware"

	"github.com/gorilla/mux"
)

// SetupPCOSRoutes 設定 PCOS 推論相關的路由
func SetupPCOSRoutes(router *mux.Router) {
	pcosRouter := router.PathPrefix("/pcos").Subrouter()
	pcosRouter.Use(middleware.JwtAuthentication)

	pcosRouter.HandleFunc("/predict", controllers.PredictPCOS).Methods("POST")
}
