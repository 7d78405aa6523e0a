// Package router registra las rutas del domain clientes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	clienteshdl "gestion_ventas/internal/api/clientes/handler"
	"gestion_ventas/internal/api/middleware"
	apirouter "gestion_ventas/internal/api/router"
)

// Register registra las rutas de clientes sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	clienteHandler, err := clienteshdl.NewClienteHandler()
	if err != nil {
		return fmt.Errorf("failed to create cliente handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	// Rutas propias del dominio antes que las CRUD genéricas
	apirouter.RegisterRouteWithMiddleware(v1, "/clientes", "GET", "/favoritos", auth, clienteHandler.HandleFavoritos)
	apirouter.RegisterRouteWithMiddleware(v1, "/clientes", "GET", "/buscar", auth, clienteHandler.HandleBuscar)
	apirouter.RegisterRouteWithMiddleware(v1, "/clientes", "PUT", "/favorito/:id", auth, clienteHandler.HandleCambiarFavorito)

	r.RegisterCRUDRoutes(v1, "/clientes", clienteHandler, apirouter.ReadWriteConfig)
	return nil
}
