package catalogohdl

import (
	"fmt"

	basehdl "gestion_ventas/internal/api/base/handler"
	catdto "gestion_ventas/internal/api/catalogo/dto"
	"gestion_ventas/internal/api/catalogo/models"
	catalogosvc "gestion_ventas/internal/api/catalogo/service"
)

// EtiquetaHandler maneja los requests de etiquetas (CRUD genérico)
type EtiquetaHandler struct {
	*basehdl.BaseHandler[models.Etiqueta, catdto.EtiquetaCreateInput, catdto.EtiquetaUpdateInput]
	etiquetaService *catalogosvc.EtiquetaService
}

// NewEtiquetaHandler crea una instancia nueva de EtiquetaHandler
func NewEtiquetaHandler() (*EtiquetaHandler, error) {
	etiquetaService, err := catalogosvc.NewEtiquetaService()
	if err != nil {
		return nil, fmt.Errorf("failed to create etiqueta service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Etiqueta, catdto.EtiquetaCreateInput, catdto.EtiquetaUpdateInput](etiquetaService)
	return &EtiquetaHandler{
		BaseHandler:     baseHandler,
		etiquetaService: etiquetaService,
	}, nil
}

// HistorialDescuentoHandler maneja la consulta del historial de descuentos (solo lectura)
type HistorialDescuentoHandler struct {
	*basehdl.BaseHandler[models.HistorialDescuento, interface{}, interface{}]
	historialService *catalogosvc.HistorialDescuentoService
}

// NewHistorialDescuentoHandler crea una instancia nueva de HistorialDescuentoHandler
func NewHistorialDescuentoHandler() (*HistorialDescuentoHandler, error) {
	historialService, err := catalogosvc.NewHistorialDescuentoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create historial descuento service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.HistorialDescuento, interface{}, interface{}](historialService)
	return &HistorialDescuentoHandler{
		BaseHandler:      baseHandler,
		historialService: historialService,
	}, nil
}
