// Package models - modelos del domain auth (Usuario, Token).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Usuario representa la cuenta del dueño del negocio.
// Todos los datos de la aplicación (clientes, productos, pedidos) quedan
// asociados a un usuario mediante ownerUserId.
type Usuario struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Nombre        string             `json:"nombre" bson:"nombre" validate:"required"`
	Email         string             `json:"email" bson:"email,omitempty" index:"unique,sparse"`
	Password      string             `json:"-" bson:"password,omitempty"`
	Telefono      string             `json:"telefono,omitempty" bson:"telefono,omitempty"`
	NombreNegocio string             `json:"nombreNegocio,omitempty" bson:"nombreNegocio,omitempty"`
	Token         string             `json:"-" bson:"token,omitempty"`  // Token de la última sesión
	Tokens        []Token            `json:"-" bson:"tokens,omitempty"` // Tokens por dispositivo (hwid)
	IsBlock       bool               `json:"isBlock" bson:"isBlock"`
	BlockNote     string             `json:"blockNote,omitempty" bson:"blockNote,omitempty"`
	CreatedAt     int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt     int64              `json:"updatedAt" bson:"updatedAt"`
}
