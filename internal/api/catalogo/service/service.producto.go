package catalogosvc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "gestion_ventas/internal/api/base/service"
	catdto "gestion_ventas/internal/api/catalogo/dto"
	"gestion_ventas/internal/api/catalogo/models"
	"gestion_ventas/internal/common"
	"gestion_ventas/internal/global"
	"gestion_ventas/internal/utility"
)

// ProductoService maneja los productos del catálogo, incluido el ciclo de vida
// de los descuentos temporales (cancelación en edición y expiración por barrido).
type ProductoService struct {
	*basesvc.BaseServiceMongoImpl[models.Producto]
	historialService *HistorialDescuentoService
}

// NewProductoService crea una instancia nueva de ProductoService
func NewProductoService() (*ProductoService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Productos)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeDatabaseConnection,
			"No se encontró la colección de productos",
			common.StatusInternalServerError,
			nil,
		)
	}
	historialService, err := NewHistorialDescuentoService()
	if err != nil {
		return nil, err
	}
	return &ProductoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Producto](collection),
		historialService:     historialService,
	}, nil
}

// validarLimiteEtiquetas verifica el tope de etiquetas por producto
func validarLimiteEtiquetas(etiquetaIDs []primitive.ObjectID) error {
	if len(etiquetaIDs) > models.MaxEtiquetasPorProducto {
		return common.ErrLimiteEtiquetas
	}
	return nil
}

// Crear crea un producto nuevo de la cuenta, validando el límite de etiquetas
func (s *ProductoService) Crear(ctx context.Context, ownerUserID primitive.ObjectID, input *catdto.ProductoCreateInput) (models.Producto, error) {
	var zero models.Producto

	etiquetaIDs := utility.StringArray2ObjectIDArray(input.EtiquetaIDs)
	for _, id := range etiquetaIDs {
		if id.IsZero() {
			return zero, common.ErrInvalidFormat
		}
	}
	if err := validarLimiteEtiquetas(etiquetaIDs); err != nil {
		return zero, err
	}

	producto := models.Producto{
		OwnerUserID:  ownerUserID,
		Clave:        input.Clave,
		Nombre:       input.Nombre,
		Descripcion:  input.Descripcion,
		Precio:       input.Precio,
		ImagenURL:    input.ImagenURL,
		EtiquetaIDs:  etiquetaIDs,
		Descuento:    input.Descuento,
		FinDescuento: input.FinDescuento,
	}
	return s.InsertOne(ctx, producto)
}

// Actualizar aplica una edición parcial a un producto de la cuenta.
// Si la edición quita o cambia un descuento vigente, escribe el registro
// de historial con motivo "cancelado" antes de aplicar el cambio.
func (s *ProductoService) Actualizar(ctx context.Context, ownerUserID, productoID primitive.ObjectID, input *catdto.ProductoUpdateInput) (models.Producto, error) {
	var zero models.Producto

	filter := bson.M{"_id": productoID, "ownerUserId": ownerUserID}
	existente, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return zero, err
	}

	set := map[string]interface{}{}
	unset := map[string]interface{}{}

	if input.Clave != nil {
		set["clave"] = *input.Clave
	}
	if input.Nombre != nil {
		set["nombre"] = *input.Nombre
	}
	if input.Descripcion != nil {
		set["descripcion"] = *input.Descripcion
	}
	if input.Precio != nil {
		set["precio"] = *input.Precio
	}
	if input.ImagenURL != nil {
		set["imagenUrl"] = *input.ImagenURL
	}
	if input.EtiquetaIDs != nil {
		etiquetaIDs := utility.StringArray2ObjectIDArray(input.EtiquetaIDs)
		for _, id := range etiquetaIDs {
			if id.IsZero() {
				return zero, common.ErrInvalidFormat
			}
		}
		if err := validarLimiteEtiquetas(etiquetaIDs); err != nil {
			return zero, err
		}
		set["etiquetaIds"] = etiquetaIDs
	}

	// Detección de cancelación: la edición quita o cambia un descuento vigente
	descuentoCambia := (input.Descuento != nil && *input.Descuento != existente.Descuento) ||
		(input.FinDescuento != nil && *input.FinDescuento != existente.FinDescuento)
	if existente.DescuentoActivo() && descuentoCambia {
		if _, err := s.historialService.CerrarDescuento(ctx, &existente, models.MotivoCancelado); err != nil {
			return zero, err
		}
		logrus.WithFields(logrus.Fields{
			"producto_id": existente.ID.Hex(),
			"porcentaje":  existente.Descuento,
		}).Info("Descuento cancelado por edición")
	}

	if input.Descuento != nil {
		if *input.Descuento <= 0 {
			unset["descuento"] = ""
			unset["finDescuento"] = ""
		} else {
			set["descuento"] = *input.Descuento
		}
	}
	if input.FinDescuento != nil && (input.Descuento == nil || *input.Descuento > 0) {
		set["finDescuento"] = *input.FinDescuento
	}

	if len(set) == 0 && len(unset) == 0 {
		return existente, nil
	}

	update := &basesvc.UpdateData{Set: set, Unset: unset}
	return s.UpdateOne(ctx, filter, update, nil)
}

// BarrerDescuentosVencidos cierra los descuentos cuyo vencimiento ya pasó.
// Recorre todas las cuentas: escribe el historial con motivo "expirado" y
// limpia los campos de descuento del producto. Devuelve la cantidad cerrada.
func (s *ProductoService) BarrerDescuentosVencidos(ctx context.Context) (int, error) {
	ahora := time.Now().UnixMilli()
	filter := bson.M{
		"descuento":    bson.M{"$gt": 0},
		"finDescuento": bson.M{"$gt": 0, "$lt": ahora},
	}

	vencidos, err := s.Find(ctx, filter, nil)
	if err != nil {
		return 0, err
	}

	cerrados := 0
	for i := range vencidos {
		producto := vencidos[i]
		if _, err := s.historialService.CerrarDescuento(ctx, &producto, models.MotivoExpirado); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"producto_id": producto.ID.Hex(),
			}).Error("No se pudo escribir el historial del descuento expirado")
			continue
		}

		update := &basesvc.UpdateData{
			Unset: map[string]interface{}{"descuento": "", "finDescuento": ""},
		}
		if _, err := s.UpdateById(ctx, producto.ID, update); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"producto_id": producto.ID.Hex(),
			}).Error("No se pudo limpiar el descuento expirado del producto")
			continue
		}
		cerrados++
	}
	return cerrados, nil
}
