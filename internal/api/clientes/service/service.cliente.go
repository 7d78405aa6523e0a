// Package clientessvc - lógica de negocio del domain clientes.
package clientessvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "gestion_ventas/internal/api/base/service"
	"gestion_ventas/internal/api/clientes/models"
	"gestion_ventas/internal/common"
	"gestion_ventas/internal/global"
)

// ClienteService maneja los clientes de una cuenta de negocio
type ClienteService struct {
	*basesvc.BaseServiceMongoImpl[models.Cliente]
}

// NewClienteService crea una instancia nueva de ClienteService
func NewClienteService() (*ClienteService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Clientes)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeDatabaseConnection,
			"No se encontró la colección de clientes",
			common.StatusInternalServerError,
			nil,
		)
	}
	return &ClienteService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Cliente](collection),
	}, nil
}

// Favoritos devuelve los clientes marcados como favoritos, ordenados por nombre
func (s *ClienteService) Favoritos(ctx context.Context, ownerUserID primitive.ObjectID) ([]models.Cliente, error) {
	filter := bson.M{
		"ownerUserId": ownerUserID,
		"favorito":    true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}})
	return s.Find(ctx, filter, opts)
}

// Buscar busca clientes por nombre, apellido o teléfono (regex, case-insensitive)
func (s *ClienteService) Buscar(ctx context.Context, ownerUserID primitive.ObjectID, texto string) ([]models.Cliente, error) {
	if texto == "" {
		return []models.Cliente{}, nil
	}
	regex := primitive.Regex{Pattern: regexEscape(texto), Options: "i"}
	filter := bson.M{
		"ownerUserId": ownerUserID,
		"$or": []bson.M{
			{"nombre": regex},
			{"apellido": regex},
			{"telefono": regex},
		},
	}
	opts := options.Find().SetSort(bson.D{{Key: "nombre", Value: 1}}).SetLimit(50)
	return s.Find(ctx, filter, opts)
}

// CambiarFavorito cambia el flag de favorito de un cliente de la cuenta
func (s *ClienteService) CambiarFavorito(ctx context.Context, ownerUserID, clienteID primitive.ObjectID, favorito bool) (models.Cliente, error) {
	filter := bson.M{
		"_id":         clienteID,
		"ownerUserId": ownerUserID,
	}
	update := &basesvc.UpdateData{
		Set: map[string]interface{}{"favorito": favorito},
	}
	return s.UpdateOne(ctx, filter, update, nil)
}

// regexEscape escapa los metacaracteres de regex del texto de búsqueda
func regexEscape(s string) string {
	escaped := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '.', '+', '*', '?', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, c)
	}
	return string(escaped)
}
