package pedidossvc

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "gestion_ventas/internal/api/base/models"
	basesvc "gestion_ventas/internal/api/base/service"
	peddto "gestion_ventas/internal/api/pedidos/dto"
	"gestion_ventas/internal/api/pedidos/models"
	"gestion_ventas/internal/common"
	"gestion_ventas/internal/global"
)

// toleranciaMonto absorbe el ruido de coma flotante al comparar montos
const toleranciaMonto = 1e-9

// PedidoService maneja los pedidos de una cuenta de negocio
type PedidoService struct {
	*basesvc.BaseServiceMongoImpl[models.Pedido]
}

// NewPedidoService crea una instancia nueva de PedidoService
func NewPedidoService() (*PedidoService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Pedidos)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeDatabaseConnection,
			"No se encontró la colección de pedidos",
			common.StatusInternalServerError,
			nil,
		)
	}
	return &PedidoService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Pedido](collection),
	}, nil
}

// construirItems arma los renglones calculando cada subtotal en el servidor
func construirItems(inputs []peddto.ItemPedidoInput) ([]models.ItemPedido, float64) {
	items := make([]models.ItemPedido, 0, len(inputs))
	var total float64
	for _, in := range inputs {
		subtotal := float64(in.Cantidad) * in.PrecioUnitario
		items = append(items, models.ItemPedido{
			Nombre:         in.Nombre,
			Clave:          in.Clave,
			Cantidad:       in.Cantidad,
			PrecioUnitario: in.PrecioUnitario,
			Subtotal:       subtotal,
			PrecioOriginal: in.PrecioOriginal,
			Descuento:      in.Descuento,
		})
		total += subtotal
	}
	return items, total
}

// Crear crea un pedido nuevo con el snapshot del cliente y los renglones.
// El subtotal de cada renglón y el total se calculan y congelan acá.
func (s *PedidoService) Crear(ctx context.Context, ownerUserID primitive.ObjectID, input *peddto.PedidoCreateInput) (models.Pedido, error) {
	items, total := construirItems(input.Items)

	pedido := models.Pedido{
		OwnerUserID: ownerUserID,
		Cliente: models.ClientePedido{
			Nombre:       input.Cliente.Nombre,
			Telefono:     input.Cliente.Telefono,
			FotoURL:      input.Cliente.FotoURL,
			CodigoPostal: input.Cliente.CodigoPostal,
		},
		Items:  items,
		Total:  total,
		Estado: models.EstadoPendiente,
		Notas:  input.Notas,
	}
	return s.InsertOne(ctx, pedido)
}

// Actualizar edita un pedido de la cuenta. Si vienen renglones nuevos los
// reemplaza completos y recalcula el total. Los abonos registrados no se
// tocan: un abono cuyo índice quedó fuera de rango pasa al pool general
// en la asignación (ver AsignarAbonos).
func (s *PedidoService) Actualizar(ctx context.Context, ownerUserID, pedidoID primitive.ObjectID, input *peddto.PedidoUpdateInput) (models.Pedido, error) {
	filter := bson.M{"_id": pedidoID, "ownerUserId": ownerUserID}

	set := map[string]interface{}{}
	if input.Cliente != nil {
		set["cliente"] = models.ClientePedido{
			Nombre:       input.Cliente.Nombre,
			Telefono:     input.Cliente.Telefono,
			FotoURL:      input.Cliente.FotoURL,
			CodigoPostal: input.Cliente.CodigoPostal,
		}
	}
	if input.Items != nil {
		items, total := construirItems(input.Items)
		set["items"] = items
		set["total"] = total
	}
	if input.Notas != nil {
		set["notas"] = *input.Notas
	}
	if len(set) == 0 {
		return s.FindOne(ctx, filter, nil)
	}

	update := &basesvc.UpdateData{Set: set}
	return s.UpdateOne(ctx, filter, update, nil)
}

// AgregarAbono registra un pago parcial sobre el pedido.
//
// Rechaza el abono si el acumulado superaría el total (ErrPagoExcedente) y
// si el índice de renglón indicado no existe. Cuando el acumulado alcanza el
// total y el pedido sigue pendiente, lo promueve a en_preparacion.
func (s *PedidoService) AgregarAbono(ctx context.Context, ownerUserID, pedidoID primitive.ObjectID, input *peddto.AbonoInput) (models.Pedido, error) {
	var zero models.Pedido

	filter := bson.M{"_id": pedidoID, "ownerUserId": ownerUserID}
	pedido, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return zero, err
	}

	if input.IndiceItem != nil {
		if *input.IndiceItem < 0 || *input.IndiceItem >= len(pedido.Items) {
			return zero, common.NewError(
				common.ErrCodeValidationInput,
				"El renglón indicado no existe en el pedido",
				common.StatusBadRequest,
				nil,
			)
		}
	}

	acumulado := pedido.TotalAbonado() + input.Monto
	if acumulado > pedido.Total+toleranciaMonto {
		return zero, common.ErrPagoExcedente
	}

	abono := models.Abono{
		Monto:      input.Monto,
		Fecha:      time.Now().UnixMilli(),
		IndiceItem: input.IndiceItem,
	}

	update := &basesvc.UpdateData{
		Push: map[string]interface{}{"abonos": abono},
	}
	// Auto-promoción: pago completo sobre un pedido pendiente
	if pedido.Estado == models.EstadoPendiente && acumulado >= pedido.Total-toleranciaMonto {
		update.Set = map[string]interface{}{"estado": models.EstadoEnPreparacion}
		logrus.WithFields(logrus.Fields{
			"pedido_id": pedido.ID.Hex(),
		}).Info("Pedido promovido a en_preparacion por pago completo")
	}

	return s.UpdateOne(ctx, filter, update, nil)
}

// CambiarEstado cambia el estado del pedido (transición manual del usuario)
func (s *PedidoService) CambiarEstado(ctx context.Context, ownerUserID, pedidoID primitive.ObjectID, estado string) (models.Pedido, error) {
	var zero models.Pedido
	if !models.EsEstadoValido(estado) {
		return zero, common.ErrInvalidState
	}
	filter := bson.M{"_id": pedidoID, "ownerUserId": ownerUserID}
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"estado": estado},
	}
	return s.UpdateOne(ctx, filter, update, nil)
}

// Archivar marca el pedido como archivado (borrado blando)
func (s *PedidoService) Archivar(ctx context.Context, ownerUserID, pedidoID primitive.ObjectID) (models.Pedido, error) {
	return s.cambiarArchivado(ctx, ownerUserID, pedidoID, true)
}

// Restaurar vuelve a incluir un pedido archivado en los listados
func (s *PedidoService) Restaurar(ctx context.Context, ownerUserID, pedidoID primitive.ObjectID) (models.Pedido, error) {
	return s.cambiarArchivado(ctx, ownerUserID, pedidoID, false)
}

func (s *PedidoService) cambiarArchivado(ctx context.Context, ownerUserID, pedidoID primitive.ObjectID, archivado bool) (models.Pedido, error) {
	filter := bson.M{"_id": pedidoID, "ownerUserId": ownerUserID}
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"archivado": archivado},
	}
	return s.UpdateOne(ctx, filter, update, nil)
}

// Eliminar borra el pedido en forma definitiva
func (s *PedidoService) Eliminar(ctx context.Context, ownerUserID, pedidoID primitive.ObjectID) error {
	filter := bson.M{"_id": pedidoID, "ownerUserId": ownerUserID}
	return s.DeleteOne(ctx, filter)
}

// FiltrosListado filtros del listado de pedidos
type FiltrosListado struct {
	Estado     string // Vacío = todos los estados
	Telefono   string // Coincidencia parcial sobre el teléfono del snapshot
	Archivados bool   // true = mostrar solo archivados
}

// construirFiltro arma el filtro de Mongo para el listado.
// Por defecto los archivados quedan excluidos.
func construirFiltro(ownerUserID primitive.ObjectID, filtros FiltrosListado) bson.M {
	filter := bson.M{
		"ownerUserId": ownerUserID,
		"archivado":   filtros.Archivados,
	}
	if filtros.Estado != "" {
		filter["estado"] = filtros.Estado
	}
	if filtros.Telefono != "" {
		filter["cliente.telefono"] = primitive.Regex{Pattern: filtros.Telefono, Options: ""}
	}
	return filter
}

// Listar devuelve los pedidos de la cuenta paginados, más nuevos primero
func (s *PedidoService) Listar(ctx context.Context, ownerUserID primitive.ObjectID, filtros FiltrosListado, page, limit int64) (*basemodels.PaginateResult[models.Pedido], error) {
	filter := construirFiltro(ownerUserID, filtros)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

// ListarTodos devuelve los pedidos de la cuenta sin paginar (para export y reportes)
func (s *PedidoService) ListarTodos(ctx context.Context, ownerUserID primitive.ObjectID, filtros FiltrosListado) ([]models.Pedido, error) {
	filter := construirFiltro(ownerUserID, filtros)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}

// Desglose devuelve el pedido con la asignación de abonos por renglón
func (s *PedidoService) Desglose(ctx context.Context, ownerUserID, pedidoID primitive.ObjectID) (models.Pedido, ResultadoAbonos, error) {
	filter := bson.M{"_id": pedidoID, "ownerUserId": ownerUserID}
	pedido, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return models.Pedido{}, ResultadoAbonos{}, err
	}
	return pedido, AsignarAbonos(pedido.Items, pedido.Abonos), nil
}
