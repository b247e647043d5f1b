package middleware

import (
	"context"
	"net/http"
	"strings"

	"ovacare/backend/database"
	"ovacare/backend/metrics"
	"ovacare/backend/utils"
)

// contextKey 是一個自訂類型，用於在 context 中安全地儲存鍵值，避免衝突
type contextKey string

// UserIDKey 是用於在請求 context 中儲存使用者 ID 的鍵
const UserIDKey contextKey = "userID"

// UsernameKey 是用於在請求 context 中儲存使用者名稱的鍵
const UsernameKey contextKey = "username"

// JwtAuthentication 是一個中介軟體，用於驗證 JWT
func JwtAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			metrics.AuthFailures.Inc()
			http.Error(w, `{"error": "請求未包含 token"}`, http.StatusUnauthorized)
			return
		}

		// token 以 "Bearer <token>" 的形式出現
		splitToken := strings.Split(authHeader, " ")
		if len(splitToken) != 2 || strings.ToLower(splitToken[0]) != "bearer" {
			metrics.AuthFailures.Inc()
			http.Error(w, `{"error": "Token 格式不正確"}`, http.StatusUnauthorized)
			return
		}
		tokenString := splitToken[1]

		claims, err := utils.VerifyJWT(tokenString)
		if err != nil {
			metrics.AuthFailures.Inc()
			http.Error(w, `{"error": "無效的 token"}`, http.StatusUnauthorized)
			return
		}

		// 驗證成功，將使用者身分存入請求的 context 中
		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// WithStore 將資料庫 Store 注入每個請求的 context
func WithStore(store database.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(database.WithStore(r.Context(), store)))
		})
	}
}
