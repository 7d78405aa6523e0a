package pedidossvc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gestion_ventas/internal/api/pedidos/models"
)

func TestEscaparCampoCSV(t *testing.T) {
	casos := []struct {
		nombre   string
		entrada  string
		esperado string
	}{
		{"sin caracteres especiales", "Pastel de chocolate", "Pastel de chocolate"},
		{"con coma", "Galletas, surtidas", "\"Galletas, surtidas\""},
		{"con comillas", `Caja "premium"`, `"Caja ""premium"""`},
		{"con salto de linea", "línea1\nlínea2", "\"línea1\nlínea2\""},
		{"vacío", "", ""},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.Equal(t, c.esperado, escaparCampoCSV(c.entrada))
		})
	}
}

func TestFormatearProductos(t *testing.T) {
	items := []models.ItemPedido{
		{Nombre: "Pastel", Clave: "PAS-01", Cantidad: 2, Subtotal: 300},
		{Nombre: "Galletas", Cantidad: 1, Subtotal: 45.5},
	}
	// Con clave va entre corchetes; sin clave los corchetes se omiten
	assert.Equal(t, "2 x [PAS-01] Pastel - $300.00 | 1 x Galletas - $45.50", formatearProductos(items))
}

func TestGenerarCSV_Encabezado(t *testing.T) {
	csv := GenerarCSV(nil)
	assert.Equal(t, "ID,Cliente,Teléfono,Productos,Total,Estado,Notas,Fecha\n", csv)
}

func TestGenerarCSV_FilaCompleta(t *testing.T) {
	id := primitive.NewObjectID()
	pedidos := []models.Pedido{{
		ID: id,
		Cliente: models.ClientePedido{
			Nombre:   "María López",
			Telefono: "5551234567",
		},
		Items: []models.ItemPedido{
			{Nombre: "Pastel", Clave: "PAS-01", Cantidad: 1, Subtotal: 250},
		},
		Total:     250,
		Estado:    models.EstadoEnPreparacion,
		Notas:     "Entregar antes de las 5, por favor",
		CreatedAt: 1735689600000, // 2025-01-01 00:00 UTC
	}}
	csv := GenerarCSV(pedidos)

	lineas := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	assert.Len(t, lineas, 2)

	fila := lineas[1]
	assert.True(t, strings.HasPrefix(fila, id.Hex()+","), "la fila debe empezar con el ID")
	assert.Contains(t, fila, "María López")
	assert.Contains(t, fila, "1 x [PAS-01] Pastel - $250.00")
	assert.Contains(t, fila, "250.00")
	// El estado se exporta con su nombre para mostrar
	assert.Contains(t, fila, "En preparación")
	// Las notas con coma van entre comillas
	assert.Contains(t, fila, "\"Entregar antes de las 5, por favor\"")
}

func TestGenerarCSV_EstadoDesconocidoSeExportaCrudo(t *testing.T) {
	pedidos := []models.Pedido{{
		ID:      primitive.NewObjectID(),
		Cliente: models.ClientePedido{Nombre: "Juan"},
		Estado:  "migrado_v1",
	}}
	csv := GenerarCSV(pedidos)
	assert.Contains(t, csv, "migrado_v1")
}
