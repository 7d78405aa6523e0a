// Package reportessvc - tests de los agregados del reporte de ventas.
package reportessvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pedmodels "gestion_ventas/internal/api/pedidos/models"
	repdto "gestion_ventas/internal/api/reportes/dto"
)

// ahoraFija: viernes 2025-03-14 16:30 local
var ahoraFija = time.Date(2025, 3, 14, 16, 30, 0, 0, time.Local)

func pedidoEn(momento time.Time, nombre string, total float64, estado string) pedmodels.Pedido {
	return pedmodels.Pedido{
		Cliente:   pedmodels.ClientePedido{Nombre: nombre},
		Total:     total,
		Estado:    estado,
		CreatedAt: momento.UnixMilli(),
	}
}

func TestResolverRango_Hoy(t *testing.T) {
	rango := ResolverRango(repdto.PeriodoHoy, ahoraFija, time.Time{}, time.Time{})
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local), rango.Inicio)
	assert.Equal(t, time.Date(2025, 3, 14, 23, 59, 59, 999_000_000, time.Local), rango.Fin)
}

func TestResolverRango_SemanaMovilDe7Dias(t *testing.T) {
	rango := ResolverRango(repdto.PeriodoSemana, ahoraFija, time.Time{}, time.Time{})
	// Ventana móvil: 7 días calendario terminando hoy, no alineada al domingo
	assert.Equal(t, time.Date(2025, 3, 8, 0, 0, 0, 0, time.Local), rango.Inicio)
	assert.Equal(t, 14, rango.Fin.Day())
}

func TestResolverRango_MesDesdeElPrimero(t *testing.T) {
	rango := ResolverRango(repdto.PeriodoMes, ahoraFija, time.Time{}, time.Time{})
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local), rango.Inicio)
}

func TestResolverRango_PersonalizadoNormalizaHoras(t *testing.T) {
	desde := time.Date(2025, 2, 10, 14, 22, 0, 0, time.Local)
	hasta := time.Date(2025, 2, 20, 9, 5, 0, 0, time.Local)
	rango := ResolverRango(repdto.PeriodoPersonalizado, ahoraFija, desde, hasta)
	assert.Equal(t, time.Date(2025, 2, 10, 0, 0, 0, 0, time.Local), rango.Inicio)
	assert.Equal(t, time.Date(2025, 2, 20, 23, 59, 59, 999_000_000, time.Local), rango.Fin)
}

func TestFiltrarPorRango_InclusivoEIdempotente(t *testing.T) {
	rango := ResolverRango(repdto.PeriodoHoy, ahoraFija, time.Time{}, time.Time{})
	pedidos := []pedmodels.Pedido{
		pedidoEn(rango.Inicio, "a", 10, pedmodels.EstadoPendiente),                // borde inferior
		pedidoEn(rango.Fin, "b", 20, pedmodels.EstadoPendiente),                   // borde superior
		pedidoEn(rango.Inicio.Add(-time.Millisecond), "c", 30, pedmodels.EstadoPendiente), // fuera
	}

	filtrados := FiltrarPorRango(pedidos, rango)
	require.Len(t, filtrados, 2)

	// Filtrar lo ya filtrado no cambia el resultado
	assert.Equal(t, filtrados, FiltrarPorRango(filtrados, rango))
}

func TestConstruirReporte_SinPedidos(t *testing.T) {
	rango := ResolverRango(repdto.PeriodoHoy, ahoraFija, time.Time{}, time.Time{})
	reporte := ConstruirReporte(nil, repdto.PeriodoHoy, rango)

	assert.Zero(t, reporte.KPIs.VentasTotal)
	assert.Zero(t, reporte.KPIs.CantidadPedidos)
	assert.Zero(t, reporte.KPIs.TicketPromedio)
	assert.Zero(t, reporte.KPIs.ClientesUnicos)
	assert.Empty(t, reporte.TopClientes)

	// El desglose siempre trae los tres estados, en cero
	require.Len(t, reporte.DesgloseEstados, 3)
	for _, e := range reporte.DesgloseEstados {
		assert.Zero(t, e.Cantidad)
		assert.Zero(t, e.Porcentaje)
	}

	// Sin ventas el gráfico horario muestra la ventana fija 8-20
	require.Len(t, reporte.Serie, 13)
	assert.Equal(t, "08:00", reporte.Serie[0].Etiqueta)
	assert.Equal(t, "20:00", reporte.Serie[len(reporte.Serie)-1].Etiqueta)
}

func TestCalcularKPIs_ClientesUnicosPorNombreNormalizado(t *testing.T) {
	pedidos := []pedmodels.Pedido{
		pedidoEn(ahoraFija, "Ana", 100, pedmodels.EstadoPendiente),
		pedidoEn(ahoraFija, "ana ", 250, pedmodels.EstadoEntregado),
		pedidoEn(ahoraFija, "Luis", 50, pedmodels.EstadoPendiente),
	}
	kpis := calcularKPIs(pedidos)

	assert.Equal(t, 3, kpis.CantidadPedidos)
	assert.InDelta(t, 400, kpis.VentasTotal, 1e-9)
	assert.Equal(t, 2, kpis.ClientesUnicos)
	assert.InDelta(t, 400.0/3, kpis.TicketPromedio, 1e-9)
}

func TestCalcularTopClientes_AgrupaYOrdenaPorGasto(t *testing.T) {
	pedidos := []pedmodels.Pedido{
		pedidoEn(ahoraFija, "Ana", 100, pedmodels.EstadoPendiente),
		pedidoEn(ahoraFija, "Luis", 300, pedmodels.EstadoPendiente),
		pedidoEn(ahoraFija, "ana", 250, pedmodels.EstadoPendiente),
	}
	top := calcularTopClientes(pedidos, TopClientesPorDefecto)

	require.Len(t, top, 2)
	// "Ana" y "ana" se agrupan: 350 gana sobre los 300 de Luis,
	// conservando el nombre tal como apareció la primera vez
	assert.Equal(t, "Ana", top[0].Nombre)
	assert.InDelta(t, 350, top[0].Total, 1e-9)
	assert.Equal(t, 2, top[0].Cantidad)
	assert.Equal(t, "Luis", top[1].Nombre)
}

func TestCalcularTopClientes_TruncaAlLimite(t *testing.T) {
	pedidos := []pedmodels.Pedido{}
	for i := 0; i < 8; i++ {
		pedidos = append(pedidos, pedidoEn(ahoraFija, string(rune('a'+i)), float64(i+1), pedmodels.EstadoPendiente))
	}
	top := calcularTopClientes(pedidos, TopClientesPorDefecto)
	assert.Len(t, top, TopClientesPorDefecto)
	// El mayor gasto queda primero
	assert.InDelta(t, 8, top[0].Total, 1e-9)
}

func TestCalcularDesgloseEstados_PorcentajePorCantidad(t *testing.T) {
	pedidos := []pedmodels.Pedido{
		pedidoEn(ahoraFija, "a", 1000, pedmodels.EstadoPendiente),
		pedidoEn(ahoraFija, "b", 10, pedmodels.EstadoEntregado),
		pedidoEn(ahoraFija, "c", 10, pedmodels.EstadoEntregado),
		pedidoEn(ahoraFija, "d", 10, pedmodels.EstadoEntregado),
	}
	desglose := calcularDesgloseEstados(pedidos)
	require.Len(t, desglose, 3)

	porEstado := map[string]repdto.EstadoResumen{}
	for _, e := range desglose {
		porEstado[e.Estado] = e
	}

	// El porcentaje sale de la cantidad, no del monto: pendiente junta casi
	// todo el dinero pero es 1 de 4 pedidos
	assert.InDelta(t, 25, porEstado[pedmodels.EstadoPendiente].Porcentaje, 1e-9)
	assert.InDelta(t, 75, porEstado[pedmodels.EstadoEntregado].Porcentaje, 1e-9)
	assert.Zero(t, porEstado[pedmodels.EstadoEnPreparacion].Cantidad)
}

func TestCalcularSerieHoraria_RecortaConMargen(t *testing.T) {
	dia := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	pedidos := []pedmodels.Pedido{
		pedidoEn(dia.Add(10*time.Hour), "a", 100, pedmodels.EstadoPendiente),
		pedidoEn(dia.Add(14*time.Hour+30*time.Minute), "b", 50, pedmodels.EstadoPendiente),
	}
	serie := calcularSerieHoraria(pedidos)

	// Ventana [primera-1, última+1]: de 09:00 a 15:00
	require.Len(t, serie, 7)
	assert.Equal(t, "09:00", serie[0].Etiqueta)
	assert.Equal(t, "15:00", serie[len(serie)-1].Etiqueta)

	assert.InDelta(t, 100, serie[1].Valor, 1e-9) // 10:00
	assert.Equal(t, 1, serie[1].Cantidad)
	assert.InDelta(t, 50, serie[5].Valor, 1e-9) // 14:00
}

func TestCalcularSerieHoraria_MargenAcotadoAlDia(t *testing.T) {
	dia := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	pedidos := []pedmodels.Pedido{
		pedidoEn(dia, "a", 10, pedmodels.EstadoPendiente),                // 00:00
		pedidoEn(dia.Add(23*time.Hour), "b", 10, pedmodels.EstadoPendiente), // 23:00
	}
	serie := calcularSerieHoraria(pedidos)
	require.Len(t, serie, 24)
	assert.Equal(t, "00:00", serie[0].Etiqueta)
	assert.Equal(t, "23:00", serie[23].Etiqueta)
}

func TestCalcularSerieDiaria_EtiquetasYBuckets(t *testing.T) {
	// Semana móvil terminando el viernes 14/03: sáb 8 ... vie 14
	rango := ResolverRango(repdto.PeriodoSemana, ahoraFija, time.Time{}, time.Time{})
	pedidos := []pedmodels.Pedido{
		pedidoEn(time.Date(2025, 3, 8, 11, 0, 0, 0, time.Local), "a", 120, pedmodels.EstadoPendiente),
		pedidoEn(time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local), "b", 80, pedmodels.EstadoPendiente),
		pedidoEn(time.Date(2025, 3, 14, 18, 0, 0, 0, time.Local), "c", 20, pedmodels.EstadoPendiente),
	}
	serie := calcularSerieDiaria(pedidos, rango)

	require.Len(t, serie, 7)
	assert.Equal(t, "sáb 8", serie[0].Etiqueta)
	assert.Equal(t, "vie 14", serie[6].Etiqueta)

	assert.InDelta(t, 120, serie[0].Valor, 1e-9)
	assert.InDelta(t, 100, serie[6].Valor, 1e-9)
	assert.Equal(t, 2, serie[6].Cantidad)
	assert.Zero(t, serie[3].Valor)
}

func TestConstruirReporte_SerieDiariaParaPeriodosLargos(t *testing.T) {
	rango := ResolverRango(repdto.PeriodoSemana, ahoraFija, time.Time{}, time.Time{})
	reporte := ConstruirReporte(nil, repdto.PeriodoSemana, rango)
	// Una semana son 7 buckets diarios, no la ventana horaria
	assert.Len(t, reporte.Serie, 7)
}
