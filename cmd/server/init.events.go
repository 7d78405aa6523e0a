package main

import (
	"context"

	"gestion_ventas/internal/api/events"
	"gestion_ventas/internal/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// InitEventSubscribers registra los subscribers del bus de eventos de datos.
// Hoy el único subscriber es el de auditoría: cada cambio vía CRUD queda en el
// log de auditoría con colección, operación y dueño (nunca el documento entero,
// que puede traer campos sensibles como el hash de la password).
func InitEventSubscribers() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		fields := map[string]interface{}{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		}
		if owner := events.GetOwnerUserIDFromDocument(e.Document); owner != primitive.NilObjectID {
			fields["ownerUserId"] = owner.Hex()
		}
		if updatedAt := events.GetInt64Field(e.Document, "UpdatedAt"); updatedAt > 0 {
			fields["updatedAt"] = updatedAt
		}
		logger.GetAuditLogger().WithFields(fields).Info("Data changed")
	})

	logger.GetAppLogger().Info("Initialized event subscribers")
}
