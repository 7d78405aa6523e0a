// Package router registra las rutas del domain reportes.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"gestion_ventas/internal/api/middleware"
	reporteshdl "gestion_ventas/internal/api/reportes/handler"
	apirouter "gestion_ventas/internal/api/router"
)

// Register registra las rutas de reportes sobre v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	reporteHandler, err := reporteshdl.NewReporteHandler()
	if err != nil {
		return fmt.Errorf("failed to create reporte handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}
	apirouter.RegisterRouteWithMiddleware(v1, "/reportes", "GET", "/ventas", auth, reporteHandler.HandleReporteVentas)
	return nil
}
