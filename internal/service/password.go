package service

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher описывает интерфейс хеширования паролей
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// BcryptHasher реализует PasswordHasher поверх bcrypt
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создает хешер со стандартной стоимостью bcrypt
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash возвращает bcrypt-хеш пароля
func (h *BcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare проверяет соответствие пароля хешу
func (h *BcryptHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
