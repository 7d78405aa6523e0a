// Package clienteshdl - handlers HTTP del domain clientes.
package clienteshdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "gestion_ventas/internal/api/base/handler"
	clidto "gestion_ventas/internal/api/clientes/dto"
	"gestion_ventas/internal/api/clientes/models"
	clientessvc "gestion_ventas/internal/api/clientes/service"
	"gestion_ventas/internal/common"
)

// ClienteHandler maneja los requests del domain clientes
type ClienteHandler struct {
	*basehdl.BaseHandler[models.Cliente, clidto.ClienteCreateInput, clidto.ClienteUpdateInput]
	clienteService *clientessvc.ClienteService
}

// NewClienteHandler crea una instancia nueva de ClienteHandler
func NewClienteHandler() (*ClienteHandler, error) {
	clienteService, err := clientessvc.NewClienteService()
	if err != nil {
		return nil, fmt.Errorf("failed to create cliente service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Cliente, clidto.ClienteCreateInput, clidto.ClienteUpdateInput](clienteService)
	return &ClienteHandler{
		BaseHandler:    baseHandler,
		clienteService: clienteService,
	}, nil
}

// HandleFavoritos devuelve los clientes favoritos de la cuenta
// @Summary Listar clientes favoritos
// @Router /clientes/favoritos [get]
func (h *ClienteHandler) HandleFavoritos(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID := h.GetOwnerUserIDFromContext(c)
		if ownerID == nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		clientes, err := h.clienteService.Favoritos(c.Context(), *ownerID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, clientes, nil)
		return nil
	})
}

// HandleBuscar busca clientes por nombre, apellido o teléfono
// @Summary Buscar clientes
// @Router /clientes/buscar [get]
func (h *ClienteHandler) HandleBuscar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID := h.GetOwnerUserIDFromContext(c)
		if ownerID == nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		texto := c.Query("q")
		clientes, err := h.clienteService.Buscar(c.Context(), *ownerID, texto)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, clientes, nil)
		return nil
	})
}

// HandleCambiarFavorito marca o desmarca un cliente como favorito
// @Summary Cambiar favorito
// @Router /clientes/favorito/:id [put]
func (h *ClienteHandler) HandleCambiarFavorito(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID := h.GetOwnerUserIDFromContext(c)
		if ownerID == nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		clienteID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		var input clidto.FavoritoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		cliente, err := h.clienteService.CambiarFavorito(c.Context(), *ownerID, clienteID, input.Favorito)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, cliente, nil)
		return nil
	})
}
