package catalogosvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"gestion_ventas/internal/common"
)

func TestValidarLimiteEtiquetas(t *testing.T) {
	hasta4 := make([]primitive.ObjectID, 4)
	for i := range hasta4 {
		hasta4[i] = primitive.NewObjectID()
	}

	if err := validarLimiteEtiquetas(nil); err != nil {
		t.Errorf("sin etiquetas no debe fallar: %v", err)
	}
	if err := validarLimiteEtiquetas(hasta4); err != nil {
		t.Errorf("4 etiquetas es el máximo permitido: %v", err)
	}

	cinco := append(hasta4, primitive.NewObjectID())
	err := validarLimiteEtiquetas(cinco)
	if err == nil {
		t.Fatal("5 etiquetas deben rechazarse")
	}
	if err != common.ErrLimiteEtiquetas {
		t.Errorf("se esperaba ErrLimiteEtiquetas, hay %v", err)
	}
}
