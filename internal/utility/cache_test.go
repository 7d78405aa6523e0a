package utility

import (
	"testing"
	"time"
)

func TestCache_SetGetDelete(t *testing.T) {
	cache := NewCache(time.Minute, time.Hour)

	cache.Set("token-abc", "usuario-1")
	valor, existe := cache.Get("token-abc")
	if !existe || valor != "usuario-1" {
		t.Errorf("Get = (%v, %v), se esperaba (usuario-1, true)", valor, existe)
	}

	cache.Delete("token-abc")
	if _, existe := cache.Get("token-abc"); existe {
		t.Error("la clave debe desaparecer después de Delete")
	}

	if _, existe := cache.Get("nunca-existió"); existe {
		t.Error("una clave no guardada no debe existir")
	}
}
