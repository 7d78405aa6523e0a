// Package worker - workers de fondo del servidor.
package worker

import (
	"context"
	"time"

	catalogosvc "gestion_ventas/internal/api/catalogo/service"
	"gestion_ventas/internal/logger"
)

// DescuentosWorker barre periódicamente los descuentos vencidos del catálogo.
// Por cada producto con descuento vencido escribe el registro de cierre en el
// historial (motivo "expirado") y limpia los campos de descuento del producto.
type DescuentosWorker struct {
	productoService *catalogosvc.ProductoService
	interval        time.Duration // Tiempo entre barridos
}

// NewDescuentosWorker crea una instancia nueva de DescuentosWorker.
//
// Parameters:
//   - interval: tiempo entre barridos (mínimo 1 minuto; default 15 minutos)
//
// Returns:
//   - *DescuentosWorker: la instancia nueva
//   - error: error de inicialización si lo hay
func NewDescuentosWorker(interval time.Duration) (*DescuentosWorker, error) {
	productoService, err := catalogosvc.NewProductoService()
	if err != nil {
		return nil, err
	}

	if interval < time.Minute {
		interval = 15 * time.Minute
	}

	return &DescuentosWorker{
		productoService: productoService,
		interval:        interval,
	}, nil
}

// Start corre el worker en loop hasta que el contexto se cancele.
func (w *DescuentosWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🏷️ [DESCUENTOS] Starting Descuentos Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🏷️ [DESCUENTOS] Descuentos Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🏷️ [DESCUENTOS] Panic en el barrido, se reintenta en el próximo ciclo")
					}
				}()

				cerrados, err := w.productoService.BarrerDescuentosVencidos(ctx)
				if err != nil {
					log.WithError(err).Error("🏷️ [DESCUENTOS] Falló el barrido de descuentos vencidos")
					return
				}

				if cerrados > 0 {
					log.WithFields(map[string]interface{}{
						"cerrados": cerrados,
					}).Info("🏷️ [DESCUENTOS] Descuentos vencidos cerrados")
				}
				// Con cerrados = 0 no se loguea (menos ruido)
			}()
		}
	}
}
