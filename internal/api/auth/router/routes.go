// Package router registra las rutas del domain auth: System y Auth.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "gestion_ventas/internal/api/auth/handler"
	basehdl "gestion_ventas/internal/api/base/handler"
	"gestion_ventas/internal/api/middleware"
	apirouter "gestion_ventas/internal/api/router"
)

// Register registra todas las rutas auth (system, registro, login, perfil) sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router) error {
	usuarioHandler, err := authhdl.NewUsuarioHandler()
	if err != nil {
		return fmt.Errorf("failed to create usuario handler: %w", err)
	}

	// Rutas públicas
	router.Post("/auth/registro", usuarioHandler.HandleRegistro)
	router.Post("/auth/login", usuarioHandler.HandleLogin)

	// Rutas autenticadas
	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "POST", "/logout", auth, usuarioHandler.HandleLogout)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/perfil", auth, usuarioHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/perfil", auth, usuarioHandler.HandleUpdateProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/password", auth, usuarioHandler.HandleCambiarPassword)
	return nil
}
