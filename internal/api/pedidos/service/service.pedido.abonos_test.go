// Package pedidossvc - tests de la asignación de abonos a renglones.
package pedidossvc

import (
	"math"
	"testing"

	"gestion_ventas/internal/api/pedidos/models"
)

func intPtr(i int) *int {
	return &i
}

func casiIgual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAsignarAbonos_SinAbonos(t *testing.T) {
	items := []models.ItemPedido{
		{Nombre: "Pastel", Subtotal: 100},
		{Nombre: "Galletas", Subtotal: 50},
	}
	r := AsignarAbonos(items, nil)

	if len(r.Items) != 2 {
		t.Fatalf("se esperaban 2 coberturas, hay %d", len(r.Items))
	}
	for i, c := range r.Items {
		if c.Cubierto != 0 || c.Porcentaje != 0 || c.Estado != ItemPendiente {
			t.Errorf("renglón %d: se esperaba pendiente en cero, hay %+v", i, c)
		}
	}
	if r.TotalAbonado != 0 || !casiIgual(r.TotalPendiente, 150) {
		t.Errorf("totales incorrectos: abonado=%v pendiente=%v", r.TotalAbonado, r.TotalPendiente)
	}
}

func TestAsignarAbonos_PoolEnOrdenDeRenglones(t *testing.T) {
	// El pool se consume en el orden guardado: 120 cubre el primero (100)
	// y deja 20 en el segundo
	items := []models.ItemPedido{
		{Nombre: "A", Subtotal: 100},
		{Nombre: "B", Subtotal: 50},
	}
	abonos := []models.Abono{{Monto: 120}}
	r := AsignarAbonos(items, abonos)

	if !casiIgual(r.Items[0].Cubierto, 100) || r.Items[0].Estado != ItemPagado {
		t.Errorf("renglón A: se esperaba 100 pagado, hay %+v", r.Items[0])
	}
	if !casiIgual(r.Items[1].Cubierto, 20) || r.Items[1].Estado != ItemParcial {
		t.Errorf("renglón B: se esperaba 20 parcial, hay %+v", r.Items[1])
	}
	if !casiIgual(r.TotalAbonado, 120) || !casiIgual(r.TotalPendiente, 30) {
		t.Errorf("totales incorrectos: abonado=%v pendiente=%v", r.TotalAbonado, r.TotalPendiente)
	}
}

func TestAsignarAbonos_DirectoMasPool(t *testing.T) {
	// 30 directo al renglón 0 más 50 del pool general: 80 de 100, parcial
	items := []models.ItemPedido{{Nombre: "A", Subtotal: 100}}
	abonos := []models.Abono{
		{Monto: 30, IndiceItem: intPtr(0)},
		{Monto: 50},
	}
	r := AsignarAbonos(items, abonos)

	if !casiIgual(r.Items[0].Cubierto, 80) {
		t.Errorf("se esperaba 80 cubierto, hay %v", r.Items[0].Cubierto)
	}
	if !casiIgual(r.Items[0].Porcentaje, 80) {
		t.Errorf("se esperaba 80%%, hay %v", r.Items[0].Porcentaje)
	}
	if r.Items[0].Estado != ItemParcial {
		t.Errorf("se esperaba parcial, hay %s", r.Items[0].Estado)
	}
}

func TestAsignarAbonos_IndiceInvalidoVaAlPool(t *testing.T) {
	// El renglón 5 no existe (se eliminó en una edición): el abono va al pool
	// y se consume en orden
	items := []models.ItemPedido{
		{Nombre: "A", Subtotal: 40},
		{Nombre: "B", Subtotal: 60},
	}
	abonos := []models.Abono{{Monto: 50, IndiceItem: intPtr(5)}}
	r := AsignarAbonos(items, abonos)

	if !casiIgual(r.Items[0].Cubierto, 40) || r.Items[0].Estado != ItemPagado {
		t.Errorf("renglón A: se esperaba 40 pagado, hay %+v", r.Items[0])
	}
	if !casiIgual(r.Items[1].Cubierto, 10) || r.Items[1].Estado != ItemParcial {
		t.Errorf("renglón B: se esperaba 10 parcial, hay %+v", r.Items[1])
	}
}

func TestAsignarAbonos_IndiceNegativoVaAlPool(t *testing.T) {
	items := []models.ItemPedido{{Nombre: "A", Subtotal: 30}}
	abonos := []models.Abono{{Monto: 30, IndiceItem: intPtr(-1)}}
	r := AsignarAbonos(items, abonos)

	if r.Items[0].Estado != ItemPagado {
		t.Errorf("se esperaba pagado, hay %s", r.Items[0].Estado)
	}
}

func TestAsignarAbonos_DirectoExcedenteSeAcota(t *testing.T) {
	// Un abono directo mayor al subtotal queda acotado al subtotal;
	// el excedente directo no derrama a otros renglones
	items := []models.ItemPedido{
		{Nombre: "A", Subtotal: 50},
		{Nombre: "B", Subtotal: 50},
	}
	abonos := []models.Abono{{Monto: 80, IndiceItem: intPtr(0)}}
	r := AsignarAbonos(items, abonos)

	if !casiIgual(r.Items[0].Cubierto, 50) || r.Items[0].Estado != ItemPagado {
		t.Errorf("renglón A: se esperaba 50 pagado, hay %+v", r.Items[0])
	}
	if r.Items[1].Cubierto != 0 || r.Items[1].Estado != ItemPendiente {
		t.Errorf("renglón B: se esperaba 0 pendiente, hay %+v", r.Items[1])
	}
}

func TestAsignarAbonos_SubtotalCero(t *testing.T) {
	// Un renglón sin subtotal no debe nada: pagado con porcentaje 0
	items := []models.ItemPedido{
		{Nombre: "Regalo", Subtotal: 0},
		{Nombre: "A", Subtotal: 100},
	}
	abonos := []models.Abono{{Monto: 100}}
	r := AsignarAbonos(items, abonos)

	if r.Items[0].Estado != ItemPagado || r.Items[0].Porcentaje != 0 || r.Items[0].Cubierto != 0 {
		t.Errorf("renglón sin subtotal: se esperaba pagado 0%%, hay %+v", r.Items[0])
	}
	if !casiIgual(r.Items[1].Cubierto, 100) || r.Items[1].Estado != ItemPagado {
		t.Errorf("renglón A: se esperaba 100 pagado, hay %+v", r.Items[1])
	}
}

func TestAsignarAbonos_ConservacionDeMontos(t *testing.T) {
	// La suma de coberturas más el pool restante es igual a lo abonado
	items := []models.ItemPedido{
		{Nombre: "A", Subtotal: 35.5},
		{Nombre: "B", Subtotal: 20.25},
		{Nombre: "C", Subtotal: 44.25},
	}
	abonos := []models.Abono{
		{Monto: 10, IndiceItem: intPtr(1)},
		{Monto: 15.75},
		{Monto: 40},
	}
	r := AsignarAbonos(items, abonos)

	var totalAbonos float64
	for _, a := range abonos {
		totalAbonos += a.Monto
	}
	var cubierto float64
	for _, c := range r.Items {
		cubierto += c.Cubierto
	}
	if !casiIgual(cubierto+r.PoolRestante, totalAbonos) {
		t.Errorf("no se conserva el monto: cubierto=%v pool=%v abonos=%v", cubierto, r.PoolRestante, totalAbonos)
	}
	if !casiIgual(r.TotalAbonado, cubierto) {
		t.Errorf("TotalAbonado=%v no coincide con la suma de coberturas %v", r.TotalAbonado, cubierto)
	}
}

func TestAsignarAbonos_PoolRestanteConTodoPagado(t *testing.T) {
	items := []models.ItemPedido{{Nombre: "A", Subtotal: 10}}
	abonos := []models.Abono{{Monto: 25}}
	r := AsignarAbonos(items, abonos)

	if !casiIgual(r.PoolRestante, 15) {
		t.Errorf("se esperaba pool restante 15, hay %v", r.PoolRestante)
	}
	if !casiIgual(r.TotalPendiente, 0) {
		t.Errorf("se esperaba pendiente 0, hay %v", r.TotalPendiente)
	}
}
