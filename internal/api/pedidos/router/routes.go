// Package router registra las rutas del domain pedidos.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"gestion_ventas/internal/api/middleware"
	pedidoshdl "gestion_ventas/internal/api/pedidos/handler"
	apirouter "gestion_ventas/internal/api/router"
)

// pedidosConfig: solo las lecturas genéricas van por el CRUD base; las
// escrituras tienen handlers propios (totales, abonos, archivado).
var pedidosConfig = apirouter.CRUDConfig{
	InsOne: false, InsMany: false,
	Find: true, FindOne: true, FindById: true,
	FindIds: true, Paginate: true,
	UpdById: false, UpdMany: false,
	DelById: false, DelMany: false,
	Count: true, Distinct: true,
	Upsert: false, Exists: true,
}

// Register registra las rutas de pedidos sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	pedidoHandler, err := pedidoshdl.NewPedidoHandler()
	if err != nil {
		return fmt.Errorf("failed to create pedido handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "POST", "/insert-one", auth, pedidoHandler.HandleCrear)
	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "GET", "/listar", auth, pedidoHandler.HandleListar)
	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "GET", "/detalle/:id", auth, pedidoHandler.HandleDetalle)
	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "PUT", "/update-by-id/:id", auth, pedidoHandler.HandleActualizar)
	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "POST", "/abonos/:id", auth, pedidoHandler.HandleAgregarAbono)
	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "PUT", "/estado/:id", auth, pedidoHandler.HandleCambiarEstado)
	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "PUT", "/archivar/:id", auth, pedidoHandler.HandleArchivar)
	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "PUT", "/restaurar/:id", auth, pedidoHandler.HandleRestaurar)
	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "DELETE", "/delete-by-id/:id", auth, pedidoHandler.HandleEliminar)
	apirouter.RegisterRouteWithMiddleware(v1, "/pedidos", "GET", "/export/csv", auth, pedidoHandler.HandleExportarCSV)

	r.RegisterCRUDRoutes(v1, "/pedidos", pedidoHandler, pedidosConfig)
	return nil
}
