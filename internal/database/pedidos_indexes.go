// Package database - indexes adicionales para pedidos (compound con filtros
// combinados) que no se pueden declarar vía tags del modelo.
package database

import (
	"context"
	"strings"

	"gestion_ventas/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreatePedidosAdditionalIndexes crea los indexes adicionales para pedidos.
// Se llama después de CreateIndexes de cada colección.
func CreatePedidosAdditionalIndexes(ctx context.Context, db *mongo.Database) error {
	// pedidos: (ownerUserId, archivado, estado) — listado por defecto filtrado por estado
	pedidos := db.Collection(global.MongoDB_ColNames.Pedidos)
	if _, err := pedidos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerUserId", Value: 1},
			{Key: "archivado", Value: 1},
			{Key: "estado", Value: 1},
		},
		Options: options.Index().SetName("pedido_owner_archivado_estado"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// pedidos: (ownerUserId, cliente.telefono) — búsqueda por teléfono del cliente
	if _, err := pedidos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerUserId", Value: 1},
			{Key: "cliente.telefono", Value: 1},
		},
		Options: options.Index().SetName("pedido_owner_telefono").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// pedidos: (ownerUserId, createdAt) — filtrado por rango de fechas en reportes
	if _, err := pedidos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerUserId", Value: 1},
			{Key: "createdAt", Value: -1},
		},
		Options: options.Index().SetName("pedido_owner_fecha"),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	// productos: (ownerUserId, finDescuento) sparse — barrido de descuentos vencidos
	productos := db.Collection(global.MongoDB_ColNames.Productos)
	if _, err := productos.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "ownerUserId", Value: 1},
			{Key: "finDescuento", Value: 1},
		},
		Options: options.Index().SetName("producto_owner_fin_descuento").SetSparse(true),
	}); err != nil && !isIndexExistsError(err) {
		return err
	}

	return nil
}

func isIndexExistsError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "already exists") || strings.Contains(s, "duplicate")
}
