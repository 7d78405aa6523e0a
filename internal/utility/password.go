package utility

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword genera el hash bcrypt de una contraseña en texto plano
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compara una contraseña en texto plano con su hash bcrypt
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
