package models

import (
	"testing"
	"time"
)

func TestDescuentoActivo(t *testing.T) {
	manana := time.Now().Add(24 * time.Hour).UnixMilli()
	ayer := time.Now().Add(-24 * time.Hour).UnixMilli()

	casos := []struct {
		nombre   string
		producto Producto
		esperado bool
	}{
		{"vigente", Producto{Descuento: 20, FinDescuento: manana}, true},
		{"vencido", Producto{Descuento: 20, FinDescuento: ayer}, false},
		{"sin porcentaje", Producto{Descuento: 0, FinDescuento: manana}, false},
		{"sin nada", Producto{}, false},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			if got := c.producto.DescuentoActivo(); got != c.esperado {
				t.Errorf("DescuentoActivo = %v, se esperaba %v", got, c.esperado)
			}
		})
	}
}

func TestPrecioEfectivo(t *testing.T) {
	manana := time.Now().Add(24 * time.Hour).UnixMilli()

	p := Producto{Precio: 200, Descuento: 25, FinDescuento: manana}
	if got := p.PrecioEfectivo(); got != 150 {
		t.Errorf("PrecioEfectivo = %v, se esperaba 150", got)
	}

	// Vencido el descuento vuelve el precio de lista
	p.FinDescuento = time.Now().Add(-time.Hour).UnixMilli()
	if got := p.PrecioEfectivo(); got != 200 {
		t.Errorf("PrecioEfectivo = %v, se esperaba 200", got)
	}
}
