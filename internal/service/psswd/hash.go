// Package psswd хеширование паролей пользователей bcrypt.
package psswd

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Bcrypt реализует service.PasswordHasher. Нулевое значение использует bcrypt.DefaultCost.
type Bcrypt struct {
	Cost int
}

func (b Bcrypt) HashPassword(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// ComparePassword сообщает, соответствует ли пароль хешу. Любая ошибка bcrypt означает несовпадение.
func (b Bcrypt) ComparePassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
