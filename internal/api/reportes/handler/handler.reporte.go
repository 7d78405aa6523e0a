// Package reporteshdl - handlers HTTP del domain reportes.
package reporteshdl

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	basehdl "gestion_ventas/internal/api/base/handler"
	repdto "gestion_ventas/internal/api/reportes/dto"
	reportessvc "gestion_ventas/internal/api/reportes/service"
	"gestion_ventas/internal/common"
)

// formatoFecha formato esperado en los query params desde/hasta
const formatoFecha = "2006-01-02"

// ReporteHandler maneja los requests del dashboard de ventas
type ReporteHandler struct {
	*basehdl.BaseHandler[interface{}, interface{}, interface{}]
	reporteService *reportessvc.ReporteService
}

// NewReporteHandler crea una instancia nueva de ReporteHandler
func NewReporteHandler() (*ReporteHandler, error) {
	reporteService, err := reportessvc.NewReporteService()
	if err != nil {
		return nil, fmt.Errorf("failed to create reporte service: %v", err)
	}
	return &ReporteHandler{
		BaseHandler:    &basehdl.BaseHandler[interface{}, interface{}, interface{}]{},
		reporteService: reporteService,
	}, nil
}

// HandleReporteVentas devuelve los agregados del dashboard para el período pedido
// @Summary Reporte de ventas
// @Description KPIs, desglose por estado, top clientes y serie del gráfico
// @Router /reportes/ventas [get]
func (h *ReporteHandler) HandleReporteVentas(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		ownerID := h.GetOwnerUserIDFromContext(c)
		if ownerID == nil {
			h.HandleResponse(c, nil, common.ErrTokenInvalid)
			return nil
		}

		periodo := c.Query("periodo", repdto.PeriodoHoy)
		switch periodo {
		case repdto.PeriodoHoy, repdto.PeriodoSemana, repdto.PeriodoMes, repdto.PeriodoPersonalizado:
		default:
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput,
				"Período inválido: se espera hoy, semana, mes o personalizado",
				common.StatusBadRequest,
				nil,
			))
			return nil
		}

		var desde, hasta time.Time
		var err error
		if periodo == repdto.PeriodoPersonalizado {
			desde, err = time.ParseInLocation(formatoFecha, c.Query("desde"), time.Local)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					"Fecha desde inválida: se espera AAAA-MM-DD",
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			hasta, err = time.ParseInLocation(formatoFecha, c.Query("hasta"), time.Local)
			if err != nil {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationFormat,
					"Fecha hasta inválida: se espera AAAA-MM-DD",
					common.StatusBadRequest,
					err,
				))
				return nil
			}
			if hasta.Before(desde) {
				h.HandleResponse(c, nil, common.NewError(
					common.ErrCodeValidationInput,
					"El rango es inválido: hasta es anterior a desde",
					common.StatusBadRequest,
					nil,
				))
				return nil
			}
		}

		reporte, err := h.reporteService.GenerarReporteVentas(c.Context(), *ownerID, periodo, desde, hasta)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, reporte, nil)
		return nil
	})
}
