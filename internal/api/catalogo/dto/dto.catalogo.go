// Package dto - inputs del domain catalogo.
package dto

// ProductoCreateInput datos para crear un producto
type ProductoCreateInput struct {
	Clave        string   `json:"clave,omitempty" maxLength:"50"`
	Nombre       string   `json:"nombre" validate:"required" maxLength:"150"`
	Descripcion  string   `json:"descripcion,omitempty" maxLength:"1000"`
	Precio       float64  `json:"precio" validate:"gte=0"`
	ImagenURL    string   `json:"imagenUrl,omitempty" maxLength:"500"`
	EtiquetaIDs  []string `json:"etiquetaIds,omitempty" validate:"omitempty,dive,len=24"`
	Descuento    float64  `json:"descuento,omitempty" validate:"gte=0,lte=100"`
	FinDescuento int64    `json:"finDescuento,omitempty"`
}

// ProductoUpdateInput datos para actualizar un producto.
// Los punteros distinguen "no enviado" de "poner en cero" (importa para
// detectar la cancelación de un descuento).
type ProductoUpdateInput struct {
	Clave        *string  `json:"clave,omitempty" maxLength:"50"`
	Nombre       *string  `json:"nombre,omitempty" maxLength:"150"`
	Descripcion  *string  `json:"descripcion,omitempty" maxLength:"1000"`
	Precio       *float64 `json:"precio,omitempty" validate:"omitempty,gte=0"`
	ImagenURL    *string  `json:"imagenUrl,omitempty" maxLength:"500"`
	EtiquetaIDs  []string `json:"etiquetaIds,omitempty" validate:"omitempty,dive,len=24"`
	Descuento    *float64 `json:"descuento,omitempty" validate:"omitempty,gte=0,lte=100"`
	FinDescuento *int64   `json:"finDescuento,omitempty"`
}

// EtiquetaCreateInput datos para crear una etiqueta
type EtiquetaCreateInput struct {
	Nombre string `json:"nombre" validate:"required" maxLength:"50"`
	Color  string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icono  string `json:"icono,omitempty" maxLength:"50"`
}

// EtiquetaUpdateInput datos para actualizar una etiqueta
type EtiquetaUpdateInput struct {
	Nombre string `json:"nombre,omitempty" maxLength:"50"`
	Color  string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icono  string `json:"icono,omitempty" maxLength:"50"`
}
