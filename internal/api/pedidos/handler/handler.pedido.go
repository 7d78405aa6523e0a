// Package pedidoshdl - handlers HTTP del domain pedidos.
package pedidoshdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "gestion_ventas/internal/api/base/handler"
	peddto "gestion_ventas/internal/api/pedidos/dto"
	"gestion_ventas/internal/api/pedidos/models"
	pedidossvc "gestion_ventas/internal/api/pedidos/service"
	"gestion_ventas/internal/common"
)

// PedidoHandler maneja los requests del domain pedidos.
// Las escrituras van por handlers propios (cálculo de totales, validación
// de abonos, archivado); las lecturas genéricas usan el CRUD base.
type PedidoHandler struct {
	*basehdl.BaseHandler[models.Pedido, peddto.PedidoCreateInput, peddto.PedidoUpdateInput]
	pedidoService *pedidossvc.PedidoService
}

// NewPedidoHandler crea una instancia nueva de PedidoHandler
func NewPedidoHandler() (*PedidoHandler, error) {
	pedidoService, err := pedidossvc.NewPedidoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create pedido service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Pedido, peddto.PedidoCreateInput, peddto.PedidoUpdateInput](pedidoService)
	return &PedidoHandler{
		BaseHandler:   baseHandler,
		pedidoService: pedidoService,
	}, nil
}

// contexto resuelve el owner y el :id del request; responde el error si falta alguno
func (h *PedidoHandler) contexto(c fiber.Ctx) (primitive.ObjectID, primitive.ObjectID, bool) {
	ownerID := h.GetOwnerUserIDFromContext(c)
	if ownerID == nil {
		h.HandleResponse(c, nil, common.ErrTokenInvalid)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	pedidoID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		h.HandleResponse(c, nil, common.ErrInvalidFormat)
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return *ownerID, pedidoID, true
}

// filtrosDelQuery lee los filtros de listado del query string
func filtrosDelQuery(c fiber.Ctx) pedidossvc.FiltrosListado {
	return pedidossvc.FiltrosListado{
		Estado:     c.Query("estado"),
		Telefono:   c.Query("telefono"),
		Archivados: c.Query("archivados") == "true",
	}
}

// HandleCrear crea un pedido
// @Summary Crear pedido
// @Router /pedidos/insert-one [post]
func (h *PedidoHandler) HandleCrear(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID := h.GetOwnerUserIDFromContext(c)
		if ownerID == nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		var input peddto.PedidoCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		pedido, err := h.pedidoService.Crear(c.Context(), *ownerID, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, pedido, nil)
		return nil
	})
}

// HandleListar lista los pedidos con filtros y paginación
// @Summary Listar pedidos
// @Router /pedidos/listar [get]
func (h *PedidoHandler) HandleListar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID := h.GetOwnerUserIDFromContext(c)
		if ownerID == nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		page, limit := h.ParsePagination(c)
		resultado, err := h.pedidoService.Listar(c.Context(), *ownerID, filtrosDelQuery(c), page, limit)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, resultado, nil)
		return nil
	})
}

// HandleDetalle devuelve el pedido con el desglose de abonos por renglón
// @Summary Detalle del pedido con desglose de abonos
// @Router /pedidos/detalle/:id [get]
func (h *PedidoHandler) HandleDetalle(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, pedidoID, ok := h.contexto(c)
		if !ok {
			return nil
		}
		pedido, desglose, err := h.pedidoService.Desglose(c.Context(), ownerID, pedidoID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, fiber.Map{
			"pedido":   pedido,
			"desglose": desglose,
		}, nil)
		return nil
	})
}

// HandleActualizar edita el cliente, los renglones o las notas del pedido
// @Summary Editar pedido
// @Router /pedidos/update-by-id/:id [put]
func (h *PedidoHandler) HandleActualizar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, pedidoID, ok := h.contexto(c)
		if !ok {
			return nil
		}
		var input peddto.PedidoUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		pedido, err := h.pedidoService.Actualizar(c.Context(), ownerID, pedidoID, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, pedido, nil)
		return nil
	})
}

// HandleAgregarAbono registra un pago parcial sobre el pedido
// @Summary Agregar abono
// @Router /pedidos/abonos/:id [post]
func (h *PedidoHandler) HandleAgregarAbono(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, pedidoID, ok := h.contexto(c)
		if !ok {
			return nil
		}
		var input peddto.AbonoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		pedido, err := h.pedidoService.AgregarAbono(c.Context(), ownerID, pedidoID, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, pedido, nil)
		return nil
	})
}

// HandleCambiarEstado cambia el estado del pedido
// @Summary Cambiar estado
// @Router /pedidos/estado/:id [put]
func (h *PedidoHandler) HandleCambiarEstado(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, pedidoID, ok := h.contexto(c)
		if !ok {
			return nil
		}
		var input peddto.CambiarEstadoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		pedido, err := h.pedidoService.CambiarEstado(c.Context(), ownerID, pedidoID, input.Estado)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, pedido, nil)
		return nil
	})
}

// HandleArchivar archiva el pedido (borrado blando)
// @Summary Archivar pedido
// @Router /pedidos/archivar/:id [put]
func (h *PedidoHandler) HandleArchivar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, pedidoID, ok := h.contexto(c)
		if !ok {
			return nil
		}
		pedido, err := h.pedidoService.Archivar(c.Context(), ownerID, pedidoID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, pedido, nil)
		return nil
	})
}

// HandleRestaurar restaura un pedido archivado
// @Summary Restaurar pedido
// @Router /pedidos/restaurar/:id [put]
func (h *PedidoHandler) HandleRestaurar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, pedidoID, ok := h.contexto(c)
		if !ok {
			return nil
		}
		pedido, err := h.pedidoService.Restaurar(c.Context(), ownerID, pedidoID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, pedido, nil)
		return nil
	})
}

// HandleEliminar borra el pedido en forma definitiva
// @Summary Eliminar pedido
// @Router /pedidos/delete-by-id/:id [delete]
func (h *PedidoHandler) HandleEliminar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID, pedidoID, ok := h.contexto(c)
		if !ok {
			return nil
		}
		err := h.pedidoService.Eliminar(c.Context(), ownerID, pedidoID)
		h.HandleResponse(c, nil, err)
		return nil
	})
}

// HandleExportarCSV exporta los pedidos filtrados a CSV
// @Summary Exportar pedidos a CSV
// @Router /pedidos/export/csv [get]
func (h *PedidoHandler) HandleExportarCSV(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID := h.GetOwnerUserIDFromContext(c)
		if ownerID == nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		pedidos, err := h.pedidoService.ListarTodos(c.Context(), *ownerID, filtrosDelQuery(c))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		csv := pedidossvc.GenerarCSV(pedidos)
		c.Set("Content-Type", "text/csv; charset=utf-8")
		c.Set("Content-Disposition", "attachment; filename=pedidos.csv")
		return c.SendString(csv)
	})
}
