// Package catalogohdl - handlers HTTP del domain catalogo.
package catalogohdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "gestion_ventas/internal/api/base/handler"
	catdto "gestion_ventas/internal/api/catalogo/dto"
	"gestion_ventas/internal/api/catalogo/models"
	catalogosvc "gestion_ventas/internal/api/catalogo/service"
	"gestion_ventas/internal/common"
)

// ProductoHandler maneja los requests de productos.
// La creación y la edición van por handlers propios: validan el límite de
// etiquetas y cierran descuentos cancelados. El resto de las operaciones
// usa el CRUD genérico.
type ProductoHandler struct {
	*basehdl.BaseHandler[models.Producto, catdto.ProductoCreateInput, catdto.ProductoUpdateInput]
	productoService *catalogosvc.ProductoService
}

// NewProductoHandler crea una instancia nueva de ProductoHandler
func NewProductoHandler() (*ProductoHandler, error) {
	productoService, err := catalogosvc.NewProductoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create producto service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Producto, catdto.ProductoCreateInput, catdto.ProductoUpdateInput](productoService)
	return &ProductoHandler{
		BaseHandler:     baseHandler,
		productoService: productoService,
	}, nil
}

// HandleCrear crea un producto del catálogo
// @Summary Crear producto
// @Router /productos/insert-one [post]
func (h *ProductoHandler) HandleCrear(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID := h.GetOwnerUserIDFromContext(c)
		if ownerID == nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		var input catdto.ProductoCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		producto, err := h.productoService.Crear(c.Context(), *ownerID, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, producto, nil)
		return nil
	})
}

// HandleActualizar edita un producto del catálogo
// @Summary Actualizar producto
// @Router /productos/update-by-id/:id [put]
func (h *ProductoHandler) HandleActualizar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID := h.GetOwnerUserIDFromContext(c)
		if ownerID == nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}
		productoID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		var input catdto.ProductoUpdateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		producto, err := h.productoService.Actualizar(c.Context(), *ownerID, productoID, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, producto, nil)
		return nil
	})
}
