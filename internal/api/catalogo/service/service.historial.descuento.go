package catalogosvc

import (
	"context"
	"time"

	basesvc "gestion_ventas/internal/api/base/service"
	"gestion_ventas/internal/api/catalogo/models"
	"gestion_ventas/internal/common"
	"gestion_ventas/internal/global"
)

// HistorialDescuentoService maneja los registros de descuentos cerrados
type HistorialDescuentoService struct {
	*basesvc.BaseServiceMongoImpl[models.HistorialDescuento]
}

// NewHistorialDescuentoService crea una instancia nueva de HistorialDescuentoService
func NewHistorialDescuentoService() (*HistorialDescuentoService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.HistorialDescuentos)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeDatabaseConnection,
			"No se encontró la colección de historial de descuentos",
			common.StatusInternalServerError,
			nil,
		)
	}
	return &HistorialDescuentoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.HistorialDescuento](collection),
	}, nil
}

// CerrarDescuento escribe el registro de auditoría de un descuento cerrado.
// Se llama al cancelar el descuento en una edición o al expirar por barrido.
func (s *HistorialDescuentoService) CerrarDescuento(ctx context.Context, producto *models.Producto, motivo string) (models.HistorialDescuento, error) {
	registro := models.HistorialDescuento{
		OwnerUserID:    producto.OwnerUserID,
		ProductoID:     producto.ID,
		Clave:          producto.Clave,
		NombreProducto: producto.Nombre,
		Porcentaje:     producto.Descuento,
		FinDescuento:   producto.FinDescuento,
		FechaCierre:    time.Now().UnixMilli(),
		Motivo:         motivo,
	}
	return s.InsertOne(ctx, registro)
}
