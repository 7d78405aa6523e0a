// Package models - Cliente del domain clientes.
// Datos de contacto del cliente del negocio, con flag de favorito y notas libres.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cliente representa un cliente del negocio.
// Cada cliente pertenece a una sola cuenta (ownerUserId).
type Cliente struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	OwnerUserID primitive.ObjectID `json:"ownerUserId" bson:"ownerUserId" index:"single"`

	Nombre   string `json:"nombre" bson:"nombre" validate:"required" index:"text"`
	Apellido string `json:"apellido,omitempty" bson:"apellido,omitempty"`
	Telefono string `json:"telefono,omitempty" bson:"telefono,omitempty" index:"single"`
	Email    string `json:"email,omitempty" bson:"email,omitempty"`
	FotoURL  string `json:"fotoUrl,omitempty" bson:"fotoUrl,omitempty"`

	// Dirección postal
	Direccion    string `json:"direccion,omitempty" bson:"direccion,omitempty"`
	Ciudad       string `json:"ciudad,omitempty" bson:"ciudad,omitempty"`
	CodigoPostal string `json:"codigoPostal,omitempty" bson:"codigoPostal,omitempty"`

	// Preferencias de visibilidad y entrega
	Visible        bool `json:"visible" bson:"visible" default:"true"`
	EnvioDomicilio bool `json:"envioDomicilio" bson:"envioDomicilio"`

	Favorito bool   `json:"favorito" bson:"favorito"`
	Notas    string `json:"notas,omitempty" bson:"notas,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
