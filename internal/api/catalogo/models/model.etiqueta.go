package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Etiqueta representa una etiqueta de producto (nombre + color + ícono).
// No se puede eliminar mientras haya productos que la referencien.
type Etiqueta struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty" relationship:"collection:productos,field:etiquetaIds,message:No se puede eliminar la etiqueta porque hay %d productos que la usan"`
	OwnerUserID primitive.ObjectID `json:"ownerUserId" bson:"ownerUserId" index:"single"`

	Nombre string `json:"nombre" bson:"nombre" validate:"required"`
	Color  string `json:"color,omitempty" bson:"color,omitempty" validate:"omitempty,hexcolor"`
	Icono  string `json:"icono,omitempty" bson:"icono,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
