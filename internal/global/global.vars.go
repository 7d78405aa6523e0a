package global

import (
	"gestion_ventas/config"
	"gestion_ventas/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName contiene los nombres de las colecciones en MongoDB
type MongoDB_CollectionName struct {
	Usuarios            string // Colección de usuarios (cuentas de negocio)
	Clientes            string // Colección de clientes
	Productos           string // Colección de productos del catálogo
	Etiquetas           string // Colección de etiquetas de producto
	HistorialDescuentos string // Colección de descuentos cerrados (auditoría)
	Pedidos             string // Colección de pedidos
}

// Variables globales
var Validate *validator.Validate                                                 // Validador de datos
var MongoDB_Session *mongo.Client                                                // Sesión de conexión a MongoDB
var MongoDB_ServerConfig *config.Configuration                                   // Configuración del servidor
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)       // Nombres de las colecciones

// Registries
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry con las colecciones
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry con las bases de datos
