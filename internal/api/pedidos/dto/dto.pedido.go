// Package dto - inputs del domain pedidos.
package dto

// ClientePedidoInput snapshot del cliente para el pedido
type ClientePedidoInput struct {
	Nombre       string `json:"nombre" validate:"required" maxLength:"100"`
	Telefono     string `json:"telefono,omitempty" maxLength:"20"`
	FotoURL      string `json:"fotoUrl,omitempty" maxLength:"500"`
	CodigoPostal string `json:"codigoPostal,omitempty" maxLength:"10"`
}

// ItemPedidoInput renglón del pedido.
// El subtotal lo calcula el servidor: cantidad × precio unitario.
type ItemPedidoInput struct {
	Nombre         string  `json:"nombre" validate:"required" maxLength:"150"`
	Clave          string  `json:"clave,omitempty" maxLength:"50"`
	Cantidad       int     `json:"cantidad" validate:"gte=1"`
	PrecioUnitario float64 `json:"precioUnitario" validate:"gte=0"`
	PrecioOriginal float64 `json:"precioOriginal,omitempty" validate:"gte=0"`
	Descuento      float64 `json:"descuento,omitempty" validate:"gte=0,lte=100"`
}

// PedidoCreateInput datos para crear un pedido
type PedidoCreateInput struct {
	Cliente ClientePedidoInput `json:"cliente" validate:"required"`
	Items   []ItemPedidoInput  `json:"items" validate:"required,min=1,dive"`
	Notas   string             `json:"notas,omitempty" maxLength:"1000"`
}

// PedidoUpdateInput datos para editar un pedido.
// Items en nil deja los renglones como están; con valor los reemplaza
// completos y recalcula subtotales y total.
type PedidoUpdateInput struct {
	Cliente *ClientePedidoInput `json:"cliente,omitempty"`
	Items   []ItemPedidoInput   `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	Notas   *string             `json:"notas,omitempty"`
}

// AbonoInput datos para registrar un pago parcial
type AbonoInput struct {
	Monto      float64 `json:"monto" validate:"required,gt=0"`
	IndiceItem *int    `json:"indiceItem,omitempty"`
}

// CambiarEstadoInput datos para cambiar el estado del pedido
type CambiarEstadoInput struct {
	Estado string `json:"estado" validate:"required,oneof=pendiente en_preparacion entregado"`
}
