package pedidossvc

import (
	"fmt"
	"strings"
	"time"

	"gestion_ventas/internal/api/pedidos/models"
)

// etiquetasEstado nombres de estado para mostrar en el export
var etiquetasEstado = map[string]string{
	models.EstadoPendiente:     "Pendiente",
	models.EstadoEnPreparacion: "En preparación",
	models.EstadoEntregado:     "Entregado",
}

// escaparCampoCSV encierra entre comillas los campos con coma, comilla o
// salto de línea, duplicando las comillas internas
func escaparCampoCSV(campo string) string {
	if strings.ContainsAny(campo, ",\"\n") {
		return "\"" + strings.ReplaceAll(campo, "\"", "\"\"") + "\""
	}
	return campo
}

// formatearProductos arma la columna Productos: "cantidad x [clave] nombre - $subtotal"
// por renglón, unidos por " | "
func formatearProductos(items []models.ItemPedido) string {
	partes := make([]string, 0, len(items))
	for _, item := range items {
		if item.Clave != "" {
			partes = append(partes, fmt.Sprintf("%d x [%s] %s - $%.2f", item.Cantidad, item.Clave, item.Nombre, item.Subtotal))
		} else {
			partes = append(partes, fmt.Sprintf("%d x %s - $%.2f", item.Cantidad, item.Nombre, item.Subtotal))
		}
	}
	return strings.Join(partes, " | ")
}

// GenerarCSV serializa un listado de pedidos a CSV.
// El orden de columnas y la regla de escape son un contrato de
// compatibilidad con los consumidores del export: no cambiar.
func GenerarCSV(pedidos []models.Pedido) string {
	var b strings.Builder
	b.WriteString("ID,Cliente,Teléfono,Productos,Total,Estado,Notas,Fecha\n")

	for i := range pedidos {
		pedido := &pedidos[i]

		estado := etiquetasEstado[pedido.Estado]
		if estado == "" {
			estado = pedido.Estado
		}

		campos := []string{
			pedido.ID.Hex(),
			pedido.Cliente.Nombre,
			pedido.Cliente.Telefono,
			formatearProductos(pedido.Items),
			fmt.Sprintf("%.2f", pedido.Total),
			estado,
			pedido.Notas,
			time.UnixMilli(pedido.CreatedAt).Format("02/01/2006 15:04"),
		}
		for j, campo := range campos {
			campos[j] = escaparCampoCSV(campo)
		}
		b.WriteString(strings.Join(campos, ","))
		b.WriteByte('\n')
	}
	return b.String()
}
