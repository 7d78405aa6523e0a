// Package dto - tipos de entrada y salida del domain reportes.
package dto

import "time"

// Períodos del reporte de ventas
const (
	PeriodoHoy           = "hoy"
	PeriodoSemana        = "semana" // Ventana móvil de 7 días, no alineada a la semana calendario
	PeriodoMes           = "mes"    // Del 1° del mes corriente a hoy
	PeriodoPersonalizado = "personalizado"
)

// RangoFechas es el rango resuelto de un período, inclusive en ambos extremos
type RangoFechas struct {
	Inicio time.Time `json:"inicio"`
	Fin    time.Time `json:"fin"`
}

// KPIs indicadores del período
type KPIs struct {
	VentasTotal     float64 `json:"ventasTotal"`
	CantidadPedidos int     `json:"cantidadPedidos"`
	TicketPromedio  float64 `json:"ticketPromedio"`
	// Clientes distintos por nombre normalizado (minúsculas, sin espacios en
	// los extremos). Dos clientes con el mismo nombre cuentan como uno:
	// limitación conocida del conteo por nombre.
	ClientesUnicos int `json:"clientesUnicos"`
}

// EstadoResumen desglose de un estado del pedido
type EstadoResumen struct {
	Estado     string  `json:"estado"`
	Cantidad   int     `json:"cantidad"`
	Total      float64 `json:"total"`
	Porcentaje float64 `json:"porcentaje"` // Cantidad / total de pedidos × 100
}

// TopCliente cliente rankeado por gasto en el período
type TopCliente struct {
	Nombre   string  `json:"nombre"`
	Cantidad int     `json:"cantidad"`
	Total    float64 `json:"total"`
}

// PuntoSerie un bucket del gráfico (por hora o por día)
type PuntoSerie struct {
	Etiqueta string  `json:"etiqueta"`
	Valor    float64 `json:"valor"`
	Cantidad int     `json:"cantidad"`
}

// ReporteVentas respuesta completa del dashboard
type ReporteVentas struct {
	Periodo         string          `json:"periodo"`
	Rango           RangoFechas     `json:"rango"`
	KPIs            KPIs            `json:"kpis"`
	DesgloseEstados []EstadoResumen `json:"desgloseEstados"`
	TopClientes     []TopCliente    `json:"topClientes"`
	Serie           []PuntoSerie    `json:"serie"`
}
