// Package catalogosvc - lógica de negocio del domain catalogo.
package catalogosvc

import (
	basesvc "gestion_ventas/internal/api/base/service"
	"gestion_ventas/internal/api/catalogo/models"
	"gestion_ventas/internal/common"
	"gestion_ventas/internal/global"
)

// EtiquetaService maneja las etiquetas de producto.
// El borrado está protegido por el tag relationship del model: una etiqueta
// referenciada por productos no se puede eliminar.
type EtiquetaService struct {
	*basesvc.BaseServiceMongoImpl[models.Etiqueta]
}

// NewEtiquetaService crea una instancia nueva de EtiquetaService
func NewEtiquetaService() (*EtiquetaService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Etiquetas)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeDatabaseConnection,
			"No se encontró la colección de etiquetas",
			common.StatusInternalServerError,
			nil,
		)
	}
	return &EtiquetaService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Etiqueta](collection),
	}, nil
}
