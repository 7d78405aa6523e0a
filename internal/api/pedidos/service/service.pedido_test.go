package pedidossvc

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	peddto "gestion_ventas/internal/api/pedidos/dto"
)

func TestConstruirItems_CalculaSubtotalesYTotal(t *testing.T) {
	inputs := []peddto.ItemPedidoInput{
		{Nombre: "Pastel", Cantidad: 2, PrecioUnitario: 150},
		{Nombre: "Galletas", Cantidad: 3, PrecioUnitario: 25.5},
	}
	items, total := construirItems(inputs)

	if len(items) != 2 {
		t.Fatalf("se esperaban 2 renglones, hay %d", len(items))
	}
	if items[0].Subtotal != 300 {
		t.Errorf("subtotal del primer renglón = %v, se esperaba 300", items[0].Subtotal)
	}
	if items[1].Subtotal != 76.5 {
		t.Errorf("subtotal del segundo renglón = %v, se esperaba 76.5", items[1].Subtotal)
	}
	if total != 376.5 {
		t.Errorf("total = %v, se esperaba 376.5", total)
	}
}

func TestConstruirItems_IgnoraSubtotalDelCliente(t *testing.T) {
	// El subtotal siempre se recalcula en el servidor, venga lo que venga
	inputs := []peddto.ItemPedidoInput{
		{Nombre: "Pastel", Cantidad: 1, PrecioUnitario: 100, PrecioOriginal: 120, Descuento: 10},
	}
	items, total := construirItems(inputs)
	if items[0].Subtotal != 100 || total != 100 {
		t.Errorf("subtotal=%v total=%v, se esperaba 100 en ambos", items[0].Subtotal, total)
	}
	if items[0].PrecioOriginal != 120 || items[0].Descuento != 10 {
		t.Errorf("el snapshot de precio original/descuento no se conservó: %+v", items[0])
	}
}

func TestConstruirFiltro_PorDefectoExcluyeArchivados(t *testing.T) {
	owner := primitive.NewObjectID()
	filtro := construirFiltro(owner, FiltrosListado{})

	if filtro["ownerUserId"] != owner {
		t.Error("el filtro debe quedar acotado al dueño del token")
	}
	if filtro["archivado"] != false {
		t.Errorf("archivado = %v, el listado por defecto excluye archivados", filtro["archivado"])
	}
	if _, existe := filtro["estado"]; existe {
		t.Error("sin filtro de estado no debe aparecer la clave estado")
	}
}

func TestConstruirFiltro_EstadoYTelefono(t *testing.T) {
	owner := primitive.NewObjectID()
	filtro := construirFiltro(owner, FiltrosListado{
		Estado:     "pendiente",
		Telefono:   "555",
		Archivados: true,
	})

	if filtro["estado"] != "pendiente" {
		t.Errorf("estado = %v", filtro["estado"])
	}
	if filtro["archivado"] != true {
		t.Errorf("archivado = %v, se pidieron los archivados", filtro["archivado"])
	}
	regex, ok := filtro["cliente.telefono"].(primitive.Regex)
	if !ok {
		t.Fatalf("cliente.telefono debe filtrar por regex, hay %T", filtro["cliente.telefono"])
	}
	if regex.Pattern != "555" {
		t.Errorf("pattern = %q, se esperaba 555", regex.Pattern)
	}
}
