package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Motivos de cierre de un descuento
const (
	MotivoCancelado = "cancelado" // El usuario quitó o cambió el descuento al editar
	MotivoExpirado  = "expirado"  // El barrido encontró el descuento vencido
)

// HistorialDescuento registra un descuento cerrado para auditoría.
// Se escribe al cancelar un descuento en una edición o al expirar por barrido.
type HistorialDescuento struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerUserID primitive.ObjectID `json:"ownerUserId" bson:"ownerUserId" index:"single"`

	ProductoID     primitive.ObjectID `json:"productoId" bson:"productoId" index:"single"`
	Clave          string             `json:"clave,omitempty" bson:"clave,omitempty"`
	NombreProducto string             `json:"nombreProducto" bson:"nombreProducto"`

	Porcentaje   float64 `json:"porcentaje" bson:"porcentaje"`
	FinDescuento int64   `json:"finDescuento" bson:"finDescuento"`
	FechaCierre  int64   `json:"fechaCierre" bson:"fechaCierre"`
	Motivo       string  `json:"motivo" bson:"motivo" validate:"oneof=cancelado expirado"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
