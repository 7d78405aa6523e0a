package database

import (
	"context"
	"fmt"
	"time"

	"gestion_ventas/config"
	"gestion_ventas/internal/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetInstance inicializa y devuelve un *mongo.Client conectado.
// Usa la URI de conexión de la configuración provista.
func GetInstance(c *config.Configuration) (*mongo.Client, error) {
	if c.MongoDB_ConnectionURI == "" {
		return nil, fmt.Errorf("la URI de conexión a la base de datos está vacía")
	}

	// Opciones del cliente
	clientOptions := options.Client().ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(50).                 // Máximo 50 conexiones
		SetMinPoolSize(10).                 // Mínimo 10 conexiones en el pool
		SetConnectTimeout(5 * time.Second). // Timeout de conexión
		SetSocketTimeout(10 * time.Second)  // Timeout de lectura/escritura

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("no se pudo conectar a MongoDB: %w", err)
	}

	// Verificar la conexión
	ctxPing, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelPing()

	err = client.Ping(ctxPing, nil)
	if err != nil {
		return nil, fmt.Errorf("no se pudo hacer ping a MongoDB: %w", err)
	}

	logger.GetAppLogger().Info("Conexión a MongoDB establecida correctamente")
	return client, nil
}

// CloseInstance cierra la conexión del cliente MongoDB.
func CloseInstance(client *mongo.Client) error {
	if err := client.Disconnect(context.TODO()); err != nil {
		logger.GetAppLogger().WithError(err).Error("No se pudo desconectar el cliente MongoDB")
		return err
	}
	logger.GetAppLogger().Info("Desconexión de MongoDB exitosa")
	return nil
}
