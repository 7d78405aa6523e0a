package reportessvc

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	pedidossvc "gestion_ventas/internal/api/pedidos/service"
	repdto "gestion_ventas/internal/api/reportes/dto"
)

// ReporteService arma el reporte de ventas del dashboard a partir de los
// pedidos no archivados de la cuenta
type ReporteService struct {
	pedidoService *pedidossvc.PedidoService
}

// NewReporteService crea una instancia nueva de ReporteService
func NewReporteService() (*ReporteService, error) {
	pedidoService, err := pedidossvc.NewPedidoService()
	if err != nil {
		return nil, err
	}
	return &ReporteService{pedidoService: pedidoService}, nil
}

// GenerarReporteVentas resuelve el rango del período, trae los pedidos no
// archivados de la cuenta dentro del rango y construye los agregados.
func (s *ReporteService) GenerarReporteVentas(ctx context.Context, ownerUserID primitive.ObjectID, periodo string, desde, hasta time.Time) (repdto.ReporteVentas, error) {
	rango := ResolverRango(periodo, time.Now(), desde, hasta)

	filter := bson.M{
		"ownerUserId": ownerUserID,
		"archivado":   false,
		"createdAt": bson.M{
			"$gte": rango.Inicio.UnixMilli(),
			"$lte": rango.Fin.UnixMilli(),
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	pedidos, err := s.pedidoService.Find(ctx, filter, opts)
	if err != nil {
		return repdto.ReporteVentas{}, err
	}

	return ConstruirReporte(pedidos, periodo, rango), nil
}
