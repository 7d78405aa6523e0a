// Package authdto - inputs del domain auth.
package authdto

// RegistroInput datos para registrar una cuenta de negocio nueva
type RegistroInput struct {
	Nombre        string `json:"nombre" validate:"required" maxLength:"100"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8" maxLength:"72"`
	Telefono      string `json:"telefono,omitempty" maxLength:"20"`
	NombreNegocio string `json:"nombreNegocio,omitempty" maxLength:"150"`
	Hwid          string `json:"hwid" validate:"required"`
}

// LoginInput datos para iniciar sesión con email y contraseña
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Hwid     string `json:"hwid" validate:"required"`
}

// LogoutInput datos para cerrar la sesión de un dispositivo
type LogoutInput struct {
	Hwid string `json:"hwid" validate:"required"`
}

// CambiarInfoInput datos editables del perfil
type CambiarInfoInput struct {
	Nombre        string `json:"nombre,omitempty" maxLength:"100"`
	Telefono      string `json:"telefono,omitempty" maxLength:"20"`
	NombreNegocio string `json:"nombreNegocio,omitempty" maxLength:"150"`
}

// CambiarPasswordInput datos para cambiar la contraseña
type CambiarPasswordInput struct {
	PasswordActual string `json:"passwordActual" validate:"required"`
	PasswordNuevo  string `json:"passwordNuevo" validate:"required,min=8" maxLength:"72"`
}
