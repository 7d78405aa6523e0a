package utility

import "testing"

func TestHashYCheckPassword(t *testing.T) {
	hash, err := HashPassword("secreta123")
	if err != nil {
		t.Fatalf("HashPassword falló: %v", err)
	}
	if hash == "secreta123" {
		t.Fatal("el hash no puede ser la contraseña en texto plano")
	}
	if !CheckPassword(hash, "secreta123") {
		t.Error("CheckPassword debe aceptar la contraseña correcta")
	}
	if CheckPassword(hash, "otra") {
		t.Error("CheckPassword debe rechazar una contraseña incorrecta")
	}
}
