// Package pedidossvc - lógica de negocio del domain pedidos.
package pedidossvc

import (
	"gestion_ventas/internal/api/pedidos/models"
)

// Estados de cobertura de un renglón
const (
	ItemPendiente = "pendiente"
	ItemParcial   = "parcial"
	ItemPagado    = "pagado"
)

// CoberturaItem es el resultado de la asignación para un renglón
type CoberturaItem struct {
	Cubierto   float64 `json:"cubierto"`   // Monto cubierto, acotado a [0, subtotal]
	Porcentaje float64 `json:"porcentaje"` // Cubierto / subtotal × 100 (0 si subtotal es 0)
	Estado     string  `json:"estado"`     // pendiente | parcial | pagado
}

// ResultadoAbonos es el desglose completo de la asignación de abonos
type ResultadoAbonos struct {
	Items          []CoberturaItem `json:"items"`
	TotalAbonado   float64         `json:"totalAbonado"`   // Suma de coberturas acotadas
	TotalPendiente float64         `json:"totalPendiente"` // Suma de saldos por renglón
	PoolRestante   float64         `json:"poolRestante"`   // Pool general sin consumir
}

// AsignarAbonos distribuye los abonos de un pedido sobre sus renglones.
//
// Reglas:
//   - Un abono con índice válido (0 <= indiceItem < cantidad de renglones) se
//     asigna directo a ese renglón.
//   - Un abono sin índice, o con índice fuera de rango (p.ej. el renglón se
//     eliminó en una edición posterior), va al pool general.
//   - El pool general se consume renglón por renglón en el orden guardado:
//     primero en mostrarse, primero en cobrarse. Esta política la comparten
//     la lista, el detalle y la fila expandible, por eso vive acá y no
//     duplicada en cada pantalla.
//   - La cobertura final de cada renglón queda acotada a [0, subtotal].
//
// Función pura: no muta los argumentos, no hace I/O.
func AsignarAbonos(items []models.ItemPedido, abonos []models.Abono) ResultadoAbonos {
	n := len(items)
	cubierto := make([]float64, n)
	var pool float64

	// Partición: asignación directa o pool general
	for _, abono := range abonos {
		if abono.IndiceItem != nil && *abono.IndiceItem >= 0 && *abono.IndiceItem < n {
			cubierto[*abono.IndiceItem] += abono.Monto
		} else {
			pool += abono.Monto
		}
	}

	// Consumir el pool en el orden de los renglones
	for i := 0; i < n && pool > 0; i++ {
		restante := items[i].Subtotal - cubierto[i]
		if restante < 0 {
			restante = 0
		}
		porcion := pool
		if restante < porcion {
			porcion = restante
		}
		cubierto[i] += porcion
		pool -= porcion
	}

	resultado := ResultadoAbonos{
		Items:        make([]CoberturaItem, n),
		PoolRestante: pool,
	}
	for i := 0; i < n; i++ {
		subtotal := items[i].Subtotal

		// Acotar a [0, subtotal]
		monto := cubierto[i]
		if monto < 0 {
			monto = 0
		}
		if monto > subtotal {
			monto = subtotal
		}

		var porcentaje float64
		if subtotal > 0 {
			porcentaje = monto / subtotal * 100
		}

		estado := ItemPendiente
		switch {
		case subtotal <= 0 || porcentaje >= 100:
			// Un renglón sin subtotal no debe nada: cuenta como pagado,
			// con porcentaje 0 para no dividir por cero
			estado = ItemPagado
		case porcentaje > 0:
			estado = ItemParcial
		}

		resultado.Items[i] = CoberturaItem{
			Cubierto:   monto,
			Porcentaje: porcentaje,
			Estado:     estado,
		}
		resultado.TotalAbonado += monto
		resultado.TotalPendiente += subtotal - monto
	}

	return resultado
}
