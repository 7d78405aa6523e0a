// Package authhdl - handlers HTTP del domain auth.
package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "gestion_ventas/internal/api/auth/dto"
	"gestion_ventas/internal/api/auth/models"
	authsvc "gestion_ventas/internal/api/auth/service"
	basehdl "gestion_ventas/internal/api/base/handler"
	basesvc "gestion_ventas/internal/api/base/service"
	"gestion_ventas/internal/common"
)

// UsuarioHandler maneja los requests de autenticación y perfil
type UsuarioHandler struct {
	*basehdl.BaseHandler[models.Usuario, authdto.RegistroInput, authdto.CambiarInfoInput]
	usuarioService *authsvc.UsuarioService
}

// NewUsuarioHandler crea una instancia nueva de UsuarioHandler
func NewUsuarioHandler() (*UsuarioHandler, error) {
	usuarioService, err := authsvc.NewUsuarioService()
	if err != nil {
		return nil, fmt.Errorf("failed to create usuario service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Usuario, authdto.RegistroInput, authdto.CambiarInfoInput](usuarioService)
	return &UsuarioHandler{
		BaseHandler:    baseHandler,
		usuarioService: usuarioService,
	}, nil
}

// respuestaSesion arma la respuesta de login/registro con el token incluido.
// El token no se serializa desde el model (json:"-"), va explícito.
func respuestaSesion(usuario *models.Usuario) fiber.Map {
	return fiber.Map{
		"token":   usuario.Token,
		"usuario": usuario,
	}
}

// HandleRegistro registra una cuenta de negocio nueva
// @Summary Registrar cuenta
// @Router /auth/registro [post]
func (h *UsuarioHandler) HandleRegistro(c fiber.Ctx) error {
	var input authdto.RegistroInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	usuario, err := h.usuarioService.Registrar(c.Context(), &input)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	h.HandleResponse(c, respuestaSesion(usuario), nil)
	return nil
}

// HandleLogin inicia sesión con email y contraseña
// @Summary Iniciar sesión
// @Router /auth/login [post]
func (h *UsuarioHandler) HandleLogin(c fiber.Ctx) error {
	var input authdto.LoginInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	usuario, err := h.usuarioService.Login(c.Context(), &input)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	h.HandleResponse(c, respuestaSesion(usuario), nil)
	return nil
}

// HandleLogout cierra la sesión del dispositivo indicado
// @Summary Cerrar sesión
// @Router /auth/logout [post]
func (h *UsuarioHandler) HandleLogout(c fiber.Ctx) error {
	userID, err := h.usuarioIDDelContexto(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input authdto.LogoutInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	err = h.usuarioService.Logout(c.Context(), userID, &input)
	h.HandleResponse(c, nil, err)
	return nil
}

// HandleGetProfile devuelve el perfil del usuario autenticado
// @Summary Obtener perfil
// @Router /auth/perfil [get]
func (h *UsuarioHandler) HandleGetProfile(c fiber.Ctx) error {
	userID, err := h.usuarioIDDelContexto(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	usuario, err := h.usuarioService.FindOneById(c.Context(), userID)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	h.HandleResponse(c, usuario, nil)
	return nil
}

// HandleUpdateProfile actualiza los datos editables del perfil
// @Summary Actualizar perfil
// @Router /auth/perfil [put]
func (h *UsuarioHandler) HandleUpdateProfile(c fiber.Ctx) error {
	userID, err := h.usuarioIDDelContexto(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input authdto.CambiarInfoInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}

	set := map[string]interface{}{}
	if input.Nombre != "" {
		set["nombre"] = input.Nombre
	}
	if input.Telefono != "" {
		set["telefono"] = input.Telefono
	}
	if input.NombreNegocio != "" {
		set["nombreNegocio"] = input.NombreNegocio
	}
	if len(set) == 0 {
		h.HandleResponse(c, nil, common.ErrInvalidInput)
		return nil
	}

	update := &basesvc.UpdateData{Set: set}
	usuario, err := h.usuarioService.UpdateById(c.Context(), userID, update)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	h.HandleResponse(c, usuario, nil)
	return nil
}

// HandleCambiarPassword cambia la contraseña del usuario autenticado
// @Summary Cambiar contraseña
// @Router /auth/password [put]
func (h *UsuarioHandler) HandleCambiarPassword(c fiber.Ctx) error {
	userID, err := h.usuarioIDDelContexto(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input authdto.CambiarPasswordInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	err = h.usuarioService.CambiarPassword(c.Context(), userID, &input)
	h.HandleResponse(c, nil, err)
	return nil
}

// usuarioIDDelContexto obtiene el ObjectID del usuario autenticado desde el contexto
func (h *UsuarioHandler) usuarioIDDelContexto(c fiber.Ctx) (primitive.ObjectID, error) {
	userID := c.Locals("user_id")
	if userID == nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeAuth,
			"Usuario no autenticado",
			common.StatusUnauthorized,
			nil,
		)
	}
	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			"ID de usuario inválido",
			common.StatusBadRequest,
			err,
		)
	}
	return objID, nil
}
