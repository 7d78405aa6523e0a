package main

import (
	"context"

	"gestion_ventas/config"
	authmodels "gestion_ventas/internal/api/auth/models"
	catmodels "gestion_ventas/internal/api/catalogo/models"
	climodels "gestion_ventas/internal/api/clientes/models"
	pedmodels "gestion_ventas/internal/api/pedidos/models"
	"gestion_ventas/internal/database"
	"gestion_ventas/internal/global"

	"github.com/sirupsen/logrus"
)

// InitGlobal inicializa las variables globales de la aplicación
func InitGlobal() {
	initColNames()         // Nombres de las colecciones de la base de datos
	initValidator()        // Validator con las reglas custom
	initConfig()           // Configuración del servidor
	initDatabase_MongoDB() // Conexión a la base de datos
}

// initColNames inicializa los nombres de las colecciones
func initColNames() {
	global.MongoDB_ColNames.Usuarios = "usuarios"
	global.MongoDB_ColNames.Clientes = "clientes"
	global.MongoDB_ColNames.Productos = "productos"
	global.MongoDB_ColNames.Etiquetas = "etiquetas"
	global.MongoDB_ColNames.HistorialDescuentos = "historial_descuentos"
	global.MongoDB_ColNames.Pedidos = "pedidos"

	logrus.Info("Initialized collection names")
}

// initValidator inicializa el validator (registra los custom validators)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig inicializa la configuración del servidor
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB inicializa la conexión a la base de datos, las
// colecciones y los indexes declarados vía tags en los models.
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// En modo init se crean en forma explícita las colecciones faltantes
	if global.MongoDB_ServerConfig.InitMode {
		if err := database.EnsureDatabaseAndCollections(global.MongoDB_Session); err != nil {
			logrus.Fatalf("Failed to ensure database and collections: %v", err)
		}
		logrus.Info("Ensured database and collections")
	}

	// Indexes por colección (idempotente)
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Usuarios), authmodels.Usuario{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Clientes), climodels.Cliente{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Productos), catmodels.Producto{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Etiquetas), catmodels.Etiqueta{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.HistorialDescuentos), catmodels.HistorialDescuento{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Pedidos), pedmodels.Pedido{})

	// Indexes compuestos que no salen de los tags de los models
	if err := database.CreatePedidosAdditionalIndexes(context.TODO(), db); err != nil {
		logrus.Errorf("Failed to create additional indexes: %v", err)
	}
}
