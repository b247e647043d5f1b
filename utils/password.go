package utils

import "golang.org/x/crypto/bcrypt"

// bcryptCost 是密碼雜湊的成本參數
const bcryptCost = 14

// HashPassword 使用 bcrypt 雜湊密碼
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	return string(bytes), err
}

// CheckPasswordHash 比較明文密碼和雜湊值是否相符
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
