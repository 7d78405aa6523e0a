// Package models - Pedido del domain pedidos.
// El pedido guarda un snapshot del cliente y de los precios al momento de la
// venta: no se recalcula contra el catálogo ni contra el cliente vivo.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Estados del pedido
const (
	EstadoPendiente     = "pendiente"
	EstadoEnPreparacion = "en_preparacion"
	EstadoEntregado     = "entregado"
)

// EstadosValidos estados aceptados para un pedido
var EstadosValidos = []string{EstadoPendiente, EstadoEnPreparacion, EstadoEntregado}

// ClientePedido es el snapshot del cliente al momento de crear el pedido
type ClientePedido struct {
	Nombre       string `json:"nombre" bson:"nombre" validate:"required"`
	Telefono     string `json:"telefono,omitempty" bson:"telefono,omitempty"`
	FotoURL      string `json:"fotoUrl,omitempty" bson:"fotoUrl,omitempty"`
	CodigoPostal string `json:"codigoPostal,omitempty" bson:"codigoPostal,omitempty"`
}

// ItemPedido es un renglón del pedido con el precio congelado al guardar.
// Subtotal = cantidad × precio unitario efectivo, calculado al crear/editar.
type ItemPedido struct {
	Nombre         string  `json:"nombre" bson:"nombre" validate:"required"`
	Clave          string  `json:"clave,omitempty" bson:"clave,omitempty"`
	Cantidad       int     `json:"cantidad" bson:"cantidad" validate:"gte=1"`
	PrecioUnitario float64 `json:"precioUnitario" bson:"precioUnitario"`
	Subtotal       float64 `json:"subtotal" bson:"subtotal"`
	PrecioOriginal float64 `json:"precioOriginal,omitempty" bson:"precioOriginal,omitempty"`
	Descuento      float64 `json:"descuento,omitempty" bson:"descuento,omitempty"`
}

// Abono es un pago parcial del pedido.
// IndiceItem en nil significa abono general; con valor, el abono se aplica
// con preferencia a ese renglón. Un índice que quedó fuera de rango después
// de una edición pasa al pool general, no se reasigna.
type Abono struct {
	Monto      float64 `json:"monto" bson:"monto" validate:"gt=0"`
	Fecha      int64   `json:"fecha" bson:"fecha"`
	IndiceItem *int    `json:"indiceItem,omitempty" bson:"indiceItem,omitempty"`
}

// Pedido representa una venta con sus renglones y pagos parciales
type Pedido struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerUserID primitive.ObjectID `json:"ownerUserId" bson:"ownerUserId" index:"single"`

	Cliente ClientePedido `json:"cliente" bson:"cliente"`
	Items   []ItemPedido  `json:"items" bson:"items"`
	Abonos  []Abono       `json:"abonos,omitempty" bson:"abonos,omitempty"`

	// Total congelado al guardar (suma de subtotales)
	Total float64 `json:"total" bson:"total"`

	Estado    string `json:"estado" bson:"estado" default:"pendiente" index:"single"`
	Archivado bool   `json:"archivado" bson:"archivado" index:"single"`
	Notas     string `json:"notas,omitempty" bson:"notas,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// TotalAbonado suma todos los abonos registrados
func (p *Pedido) TotalAbonado() float64 {
	var total float64
	for _, abono := range p.Abonos {
		total += abono.Monto
	}
	return total
}

// SaldoPendiente devuelve lo que falta pagar (nunca negativo)
func (p *Pedido) SaldoPendiente() float64 {
	saldo := p.Total - p.TotalAbonado()
	if saldo < 0 {
		return 0
	}
	return saldo
}

// EsEstadoValido indica si el estado recibido es uno de los aceptados
func EsEstadoValido(estado string) bool {
	for _, e := range EstadosValidos {
		if e == estado {
			return true
		}
	}
	return false
}
