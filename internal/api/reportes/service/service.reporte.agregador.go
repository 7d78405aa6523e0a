// Package reportessvc - lógica de negocio del domain reportes.
package reportessvc

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	pedmodels "gestion_ventas/internal/api/pedidos/models"
	repdto "gestion_ventas/internal/api/reportes/dto"
)

// TopClientesPorDefecto cantidad de clientes del ranking
const TopClientesPorDefecto = 5

// Ventana fija del gráfico horario cuando el día no tiene ventas
const (
	horaFallbackInicio = 8
	horaFallbackFin    = 20
)

// diasSemana nombres cortos en español, indexados por time.Weekday
var diasSemana = [7]string{"dom", "lun", "mar", "mié", "jue", "vie", "sáb"}

// medianoche devuelve la fecha a las 00:00:00 locales
func medianoche(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// finDeDia devuelve la fecha a las 23:59:59.999 locales
func finDeDia(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, t.Location())
}

// ResolverRango calcula el rango de fechas de un período, relativo a ahora.
//
//   - hoy: de la medianoche de hoy al fin del día.
//   - semana: ventana móvil de 7 días que termina hoy (no alineada al domingo).
//   - mes: del 1° del mes corriente a hoy.
//   - personalizado: desde/hasta del caller, forzados a medianoche y fin de día.
func ResolverRango(periodo string, ahora time.Time, desde, hasta time.Time) repdto.RangoFechas {
	switch periodo {
	case repdto.PeriodoSemana:
		return repdto.RangoFechas{
			Inicio: medianoche(ahora.AddDate(0, 0, -6)),
			Fin:    finDeDia(ahora),
		}
	case repdto.PeriodoMes:
		return repdto.RangoFechas{
			Inicio: time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, ahora.Location()),
			Fin:    finDeDia(ahora),
		}
	case repdto.PeriodoPersonalizado:
		return repdto.RangoFechas{
			Inicio: medianoche(desde),
			Fin:    finDeDia(hasta),
		}
	default: // hoy
		return repdto.RangoFechas{
			Inicio: medianoche(ahora),
			Fin:    finDeDia(ahora),
		}
	}
}

// FiltrarPorRango devuelve los pedidos creados dentro del rango, inclusive.
// Idempotente: aplicarlo dos veces da el mismo conjunto.
func FiltrarPorRango(pedidos []pedmodels.Pedido, rango repdto.RangoFechas) []pedmodels.Pedido {
	inicio := rango.Inicio.UnixMilli()
	fin := rango.Fin.UnixMilli()
	filtrados := make([]pedmodels.Pedido, 0, len(pedidos))
	for _, pedido := range pedidos {
		if pedido.CreatedAt >= inicio && pedido.CreatedAt <= fin {
			filtrados = append(filtrados, pedido)
		}
	}
	return filtrados
}

// normalizarNombre normaliza el nombre del cliente para agrupar
func normalizarNombre(nombre string) string {
	return strings.ToLower(strings.TrimSpace(nombre))
}

// calcularKPIs computa los indicadores del período
func calcularKPIs(pedidos []pedmodels.Pedido) repdto.KPIs {
	kpis := repdto.KPIs{CantidadPedidos: len(pedidos)}

	nombres := map[string]struct{}{}
	for _, pedido := range pedidos {
		kpis.VentasTotal += pedido.Total
		nombres[normalizarNombre(pedido.Cliente.Nombre)] = struct{}{}
	}
	kpis.ClientesUnicos = len(nombres)
	if kpis.CantidadPedidos > 0 {
		kpis.TicketPromedio = kpis.VentasTotal / float64(kpis.CantidadPedidos)
	}
	return kpis
}

// calcularDesgloseEstados computa cantidad, total y porcentaje por estado.
// El porcentaje sale de la cantidad de pedidos, no del monto.
func calcularDesgloseEstados(pedidos []pedmodels.Pedido) []repdto.EstadoResumen {
	desglose := make([]repdto.EstadoResumen, 0, len(pedmodels.EstadosValidos))
	for _, estado := range pedmodels.EstadosValidos {
		resumen := repdto.EstadoResumen{Estado: estado}
		for _, pedido := range pedidos {
			if pedido.Estado == estado {
				resumen.Cantidad++
				resumen.Total += pedido.Total
			}
		}
		if len(pedidos) > 0 {
			resumen.Porcentaje = float64(resumen.Cantidad) / float64(len(pedidos)) * 100
		}
		desglose = append(desglose, resumen)
	}
	return desglose
}

// calcularTopClientes agrupa por nombre normalizado y rankea por gasto.
// El orden es estable: ante empate gana el que apareció primero.
func calcularTopClientes(pedidos []pedmodels.Pedido, n int) []repdto.TopCliente {
	indices := map[string]int{}
	clientes := []repdto.TopCliente{}

	for _, pedido := range pedidos {
		clave := normalizarNombre(pedido.Cliente.Nombre)
		idx, visto := indices[clave]
		if !visto {
			indices[clave] = len(clientes)
			clientes = append(clientes, repdto.TopCliente{Nombre: pedido.Cliente.Nombre})
			idx = len(clientes) - 1
		}
		clientes[idx].Cantidad++
		clientes[idx].Total += pedido.Total
	}

	sort.SliceStable(clientes, func(i, j int) bool {
		return clientes[i].Total > clientes[j].Total
	})
	if len(clientes) > n {
		clientes = clientes[:n]
	}
	return clientes
}

// calcularSerieHoraria arma los buckets por hora del período "hoy".
// Sin ventas devuelve la ventana fija 8-20; con ventas recorta a
// [primeraHoraActiva-1, últimaHoraActiva+1] acotado a [0, 23].
func calcularSerieHoraria(pedidos []pedmodels.Pedido) []repdto.PuntoSerie {
	buckets := make([]repdto.PuntoSerie, 24)
	for h := 0; h < 24; h++ {
		buckets[h].Etiqueta = fmt.Sprintf("%02d:00", h)
	}

	primera, ultima := -1, -1
	for _, pedido := range pedidos {
		hora := time.UnixMilli(pedido.CreatedAt).Hour()
		buckets[hora].Valor += pedido.Total
		buckets[hora].Cantidad++
		if primera == -1 || hora < primera {
			primera = hora
		}
		if hora > ultima {
			ultima = hora
		}
	}

	if primera == -1 {
		return buckets[horaFallbackInicio : horaFallbackFin+1]
	}

	desde := primera - 1
	if desde < 0 {
		desde = 0
	}
	hasta := ultima + 1
	if hasta > 23 {
		hasta = 23
	}
	return buckets[desde : hasta+1]
}

// calcularSerieDiaria arma un bucket por día calendario del rango, inclusive.
// El bucket de cada pedido se elige por el offset de días desde el inicio
// (comparación de fecha, ignorando la hora); un offset fuera del rango se
// descarta en silencio.
func calcularSerieDiaria(pedidos []pedmodels.Pedido, rango repdto.RangoFechas) []repdto.PuntoSerie {
	inicio := medianoche(rango.Inicio)
	fin := medianoche(rango.Fin)

	buckets := []repdto.PuntoSerie{}
	for dia := inicio; !dia.After(fin); dia = dia.AddDate(0, 0, 1) {
		buckets = append(buckets, repdto.PuntoSerie{
			Etiqueta: fmt.Sprintf("%s %d", diasSemana[dia.Weekday()], dia.Day()),
		})
	}

	for _, pedido := range pedidos {
		fecha := medianoche(time.UnixMilli(pedido.CreatedAt))
		// Redondeado: con un cambio de horario de por medio la resta entre
		// medianoches no es un múltiplo exacto de 24h
		offset := int(math.Round(fecha.Sub(inicio).Hours() / 24))
		if offset < 0 || offset >= len(buckets) {
			continue
		}
		buckets[offset].Valor += pedido.Total
		buckets[offset].Cantidad++
	}
	return buckets
}

// ConstruirReporte arma el reporte completo del dashboard.
// Función pura: filtra los pedidos al rango y computa KPIs, desglose por
// estado, ranking de clientes y la serie del gráfico. Sin pedidos devuelve
// agregados en cero, nunca error.
func ConstruirReporte(pedidos []pedmodels.Pedido, periodo string, rango repdto.RangoFechas) repdto.ReporteVentas {
	filtrados := FiltrarPorRango(pedidos, rango)

	var serie []repdto.PuntoSerie
	if periodo == repdto.PeriodoHoy {
		serie = calcularSerieHoraria(filtrados)
	} else {
		serie = calcularSerieDiaria(filtrados, rango)
	}

	return repdto.ReporteVentas{
		Periodo:         periodo,
		Rango:           rango,
		KPIs:            calcularKPIs(filtrados),
		DesgloseEstados: calcularDesgloseEstados(filtrados),
		TopClientes:     calcularTopClientes(filtrados, TopClientesPorDefecto),
		Serie:           serie,
	}
}
