package models

import "testing"

func TestTotalAbonadoYSaldoPendiente(t *testing.T) {
	p := &Pedido{
		Total: 200,
		Abonos: []Abono{
			{Monto: 50},
			{Monto: 75.5},
		},
	}
	if got := p.TotalAbonado(); got != 125.5 {
		t.Errorf("TotalAbonado = %v, se esperaba 125.5", got)
	}
	if got := p.SaldoPendiente(); got != 74.5 {
		t.Errorf("SaldoPendiente = %v, se esperaba 74.5", got)
	}
}

func TestSaldoPendiente_NuncaNegativo(t *testing.T) {
	p := &Pedido{
		Total:  100,
		Abonos: []Abono{{Monto: 150}},
	}
	if got := p.SaldoPendiente(); got != 0 {
		t.Errorf("SaldoPendiente = %v, se esperaba 0", got)
	}
}

func TestEsEstadoValido(t *testing.T) {
	for _, estado := range EstadosValidos {
		if !EsEstadoValido(estado) {
			t.Errorf("EsEstadoValido(%q) = false", estado)
		}
	}
	if EsEstadoValido("cancelado") {
		t.Error("EsEstadoValido(\"cancelado\") = true, no es un estado aceptado")
	}
	if EsEstadoValido("") {
		t.Error("EsEstadoValido(\"\") = true")
	}
}
