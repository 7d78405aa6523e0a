package utility

import (
	"github.com/dgrijalva/jwt-go"
)

// tokenClaims contiene los datos codificados dentro del JWT
type tokenClaims struct {
	UserID       string `json:"userId"`
	Time         string `json:"time"`
	RandomNumber string `json:"randomNumber"`
	jwt.StandardClaims
}

// CreateToken genera un JWT firmado con HS256.
//
// Parameters:
// - secret: Secreto de firma (JWT_SECRET)
// - userID: ID del usuario (hex)
// - timeHex: Timestamp en hexadecimal (aporta unicidad por sesión)
// - randomStr: Número aleatorio (aporta unicidad adicional)
//
// Returns:
// - map[string]string: Mapa con la clave "token"
// - error: Error si la firma falla
func CreateToken(secret string, userID string, timeHex string, randomStr string) (map[string]string, error) {
	claims := tokenClaims{
		UserID:       userID,
		Time:         timeHex,
		RandomNumber: randomStr,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return nil, err
	}

	return map[string]string{"token": signed}, nil
}
