// Package models - modelos del domain catalogo (Producto, Etiqueta, HistorialDescuento).
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Producto representa un producto del catálogo.
// El descuento es temporal: está activo solo mientras hoy <= finDescuento.
type Producto struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerUserID primitive.ObjectID `json:"ownerUserId" bson:"ownerUserId" index:"single"`

	Clave       string  `json:"clave,omitempty" bson:"clave,omitempty" index:"single"`
	Nombre      string  `json:"nombre" bson:"nombre" validate:"required" index:"text"`
	Descripcion string  `json:"descripcion,omitempty" bson:"descripcion,omitempty"`
	Precio      float64 `json:"precio" bson:"precio"`
	ImagenURL   string  `json:"imagenUrl,omitempty" bson:"imagenUrl,omitempty"`

	// Etiquetas asociadas (máximo 4 por producto)
	EtiquetaIDs []primitive.ObjectID `json:"etiquetaIds,omitempty" bson:"etiquetaIds,omitempty"`

	// Descuento temporal: porcentaje (0-100) y fecha de vencimiento (UnixMilli)
	Descuento    float64 `json:"descuento,omitempty" bson:"descuento,omitempty"`
	FinDescuento int64   `json:"finDescuento,omitempty" bson:"finDescuento,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// MaxEtiquetasPorProducto límite de etiquetas asociadas a un producto
const MaxEtiquetasPorProducto = 4

// DescuentoActivo indica si el producto tiene un descuento vigente
func (p *Producto) DescuentoActivo() bool {
	return p.Descuento > 0 && p.FinDescuento >= time.Now().UnixMilli()
}

// PrecioEfectivo devuelve el precio con el descuento vigente aplicado
func (p *Producto) PrecioEfectivo() float64 {
	if p.DescuentoActivo() {
		return p.Precio * (1 - p.Descuento/100)
	}
	return p.Precio
}
