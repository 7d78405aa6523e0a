package main

import (
	"gestion_ventas/config"
	"gestion_ventas/internal/global"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// InitRegistry inicializa el registry y registra las colecciones
func InitRegistry() {
	err := InitCollections(global.MongoDB_Session, global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to initialize collections: %v", err)
	}
	logrus.Info("Initialized collection registry")
}

// InitCollections registra las colecciones MongoDB en el registry global.
// Los services las resuelven por nombre vía global.RegistryCollections.
func InitCollections(client *mongo.Client, cfg *config.Configuration) error {
	db := client.Database(cfg.MongoDB_DBName)
	colNames := []string{
		global.MongoDB_ColNames.Usuarios,
		global.MongoDB_ColNames.Clientes,
		global.MongoDB_ColNames.Productos,
		global.MongoDB_ColNames.Etiquetas,
		global.MongoDB_ColNames.HistorialDescuentos,
		global.MongoDB_ColNames.Pedidos,
	}

	for _, name := range colNames {
		registered, err := global.RegistryCollections.Register(name, db.Collection(name))
		if err != nil {
			logrus.Errorf("Failed to register collection %s: %v", name, err)
			return err
		}

		if registered {
			logrus.Infof("Collection %s registered successfully", name)
		} else {
			logrus.Errorf("Collection %s already registered", name)
		}
	}

	return nil
}
