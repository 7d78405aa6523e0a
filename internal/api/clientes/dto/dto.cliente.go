// Package dto - inputs del domain clientes.
package dto

// ClienteCreateInput datos para crear un cliente
type ClienteCreateInput struct {
	Nombre         string `json:"nombre" validate:"required" maxLength:"100"`
	Apellido       string `json:"apellido,omitempty" maxLength:"100"`
	Telefono       string `json:"telefono,omitempty" maxLength:"20"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	FotoURL        string `json:"fotoUrl,omitempty" maxLength:"500"`
	Direccion      string `json:"direccion,omitempty" maxLength:"250"`
	Ciudad         string `json:"ciudad,omitempty" maxLength:"100"`
	CodigoPostal   string `json:"codigoPostal,omitempty" maxLength:"10"`
	Visible        bool   `json:"visible,omitempty"`
	EnvioDomicilio bool   `json:"envioDomicilio,omitempty"`
	Favorito       bool   `json:"favorito,omitempty"`
	Notas          string `json:"notas,omitempty" maxLength:"1000"`
}

// ClienteUpdateInput datos para actualizar un cliente
type ClienteUpdateInput struct {
	Nombre         string `json:"nombre,omitempty" maxLength:"100"`
	Apellido       string `json:"apellido,omitempty" maxLength:"100"`
	Telefono       string `json:"telefono,omitempty" maxLength:"20"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	FotoURL        string `json:"fotoUrl,omitempty" maxLength:"500"`
	Direccion      string `json:"direccion,omitempty" maxLength:"250"`
	Ciudad         string `json:"ciudad,omitempty" maxLength:"100"`
	CodigoPostal   string `json:"codigoPostal,omitempty" maxLength:"10"`
	Visible        bool   `json:"visible,omitempty"`
	EnvioDomicilio bool   `json:"envioDomicilio,omitempty"`
	Favorito       bool   `json:"favorito,omitempty"`
	Notas          string `json:"notas,omitempty" maxLength:"1000"`
}

// FavoritoInput cambia el flag de favorito de un cliente
type FavoritoInput struct {
	Favorito bool `json:"favorito"`
}
