package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"ovacare/backend/config"
)

// mlHTTPClient 是呼叫推論服務用的 HTTP 客戶端
var mlHTTPClient = &http.Client{Timeout: 10 * time.Second}

// PredictPCOSRequest 是轉發給推論服務的症狀資料
type PredictPCOSRequest struct {
	Age              float64 `json:"age"`
	BMI              float64 `json:"bmi"`
	HairGrowth       int     `json:"hairGrowth"`
	Acne             int     `json:"acne"`
	IrregularPeriods int     `json:"irregularPeriods"`
}

// PredictPCOS 將症狀資料轉發給 Python 推論服務並回傳分類結果
//
// 推論服務是一個不透明的協作者，回應格式為
// {"prediction": 0|1, "probability": <百分比>, "method": "..."}。
func PredictPCOS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req PredictPCOSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error": "無效的請求格式"}`, http.StatusBadRequest)
		return
	}

	payload, err := json.Marshal(req)
	if err != nil {
		http.Error(w, `{"error": "內部伺服器錯誤"}`, http.StatusInternalServerError)
		return
	}

	cfg := config.LoadConfig()
	url := cfg.MLServiceURL + "/predict"

	upstreamReq, err := http.NewRequestWithContext(r.Context(), http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		http.Error(w, `{"error": "內部伺服器錯誤"}`, http.StatusInternalServerError)
		return
	}
	upstreamReq.Header.Set("Content-Type", "application/json")

	resp, err := mlHTTPClient.Do(upstreamReq)
	if err != nil {
		log.Printf("ML service unreachable: %v", err)
		http.Error(w, `{"error": "推論服務暫時無法使用"}`, http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("Error reading ML service response: %v", err)
		http.Error(w, `{"error": "推論服務回應無法讀取"}`, http.StatusBadGateway)
		return
	}

	// 原樣轉發推論服務的狀態碼與 JSON 回應
	w.WriteHeader(resp.StatusCode)
	w.Write(body)
}
