// Package router registra las rutas del domain catalogo.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	catalogohdl "gestion_ventas/internal/api/catalogo/handler"
	"gestion_ventas/internal/api/middleware"
	apirouter "gestion_ventas/internal/api/router"
)

// productosConfig: la creación y la edición van por handlers propios
// (límite de etiquetas + cierre de descuentos), ver Register.
var productosConfig = apirouter.CRUDConfig{
	InsOne: false, InsMany: false,
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	UpdById: false, UpdMany: false,
	DelById: true, DelMany: true,
	Count: true, Distinct: true,
	Upsert: false, Exists: true,
}

// Register registra las rutas de catálogo (productos, etiquetas, historial) sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	productoHandler, err := catalogohdl.NewProductoHandler()
	if err != nil {
		return fmt.Errorf("failed to create producto handler: %w", err)
	}
	etiquetaHandler, err := catalogohdl.NewEtiquetaHandler()
	if err != nil {
		return fmt.Errorf("failed to create etiqueta handler: %w", err)
	}
	historialHandler, err := catalogohdl.NewHistorialDescuentoHandler()
	if err != nil {
		return fmt.Errorf("failed to create historial descuento handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/productos", "POST", "/insert-one", auth, productoHandler.HandleCrear)
	apirouter.RegisterRouteWithMiddleware(v1, "/productos", "PUT", "/update-by-id/:id", auth, productoHandler.HandleActualizar)
	r.RegisterCRUDRoutes(v1, "/productos", productoHandler, productosConfig)

	r.RegisterCRUDRoutes(v1, "/etiquetas", etiquetaHandler, apirouter.ReadWriteConfig)
	r.RegisterCRUDRoutes(v1, "/historial-descuentos", historialHandler, apirouter.ReadOnlyConfig)
	return nil
}
