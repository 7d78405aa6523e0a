package router

import (
	"github.com/gofiber/fiber/v3"

	"gestion_ventas/internal/api/middleware"
)

// ============================================================================
// IMPORTANTE: registro de middleware en Fiber v3
// ============================================================================
//
// Fiber v3 NO ejecuta los middlewares pasados en forma directa en la ruta:
//
//	router.Get("/path", middleware.AuthMiddleware(), handler)  // NO funciona
//
// El middleware tiene que registrarse con .Use() sobre un group:
//
//	authMiddleware := middleware.AuthMiddleware()
//	RegisterRouteWithMiddleware(router, "/prefix", "GET", "/path", []fiber.Handler{authMiddleware}, handler)
//
// Toda ruta nueva con middleware tiene que usar RegisterRouteWithMiddleware.
// ============================================================================

// CRUDHandler define la interface de los handlers CRUD
type CRUDHandler interface {
	// Create
	InsertOne(c fiber.Ctx) error
	InsertMany(c fiber.Ctx) error

	// Read
	Find(c fiber.Ctx) error
	FindOne(c fiber.Ctx) error
	FindOneById(c fiber.Ctx) error
	FindManyByIds(c fiber.Ctx) error
	FindWithPagination(c fiber.Ctx) error

	// Update
	UpdateById(c fiber.Ctx) error
	UpdateMany(c fiber.Ctx) error

	// Delete
	DeleteById(c fiber.Ctx) error
	DeleteMany(c fiber.Ctx) error

	// Other
	CountDocuments(c fiber.Ctx) error
	Distinct(c fiber.Ctx) error
	Upsert(c fiber.Ctx) error
	DocumentExists(c fiber.Ctx) error
}

// Router administra el ruteo de la API
type Router struct {
	app *fiber.App
}

// CRUDConfig configura las operaciones permitidas por colección
type CRUDConfig struct {
	// Create
	InsOne  bool // Insert One
	InsMany bool // Insert Many

	// Read
	Find     bool // Find All
	FindOne  bool // Find One
	FindById bool // Find By Id
	FindIds  bool // Find Many By Ids
	Paginate bool // Find With Pagination

	// Update
	UpdById bool // Update By Id
	UpdMany bool // Update Many

	// Delete
	DelById bool // Delete By Id
	DelMany bool // Delete Many

	// Other
	Count    bool // Count Documents
	Distinct bool // Distinct
	Upsert   bool // Upsert One
	Exists   bool // Document Exists
}

// Configs compartidas entre dominios
var (
	// ReadOnlyConfig solo permite lectura (find, count, distinct, exists)
	ReadOnlyConfig = CRUDConfig{
		InsOne: false, InsMany: false,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdById: false, UpdMany: false,
		DelById: false, DelMany: false,
		Count: true, Distinct: true,
		Upsert: false, Exists: true,
	}

	// ReadWriteConfig permite CRUD completo
	ReadWriteConfig = CRUDConfig{
		InsOne: true, InsMany: true,
		Find: true, FindOne: true, FindById: true,
		FindIds: true, Paginate: true,
		UpdById: true, UpdMany: true,
		DelById: true, DelMany: true,
		Count: true, Distinct: true,
		Upsert: true, Exists: true,
	}
)

// RoutePrefix contiene los prefijos base de la API
type RoutePrefix struct {
	Base string // Prefijo base (/api)
	V1   string // Prefijo para API version 1 (/api/v1)
}

// NewRoutePrefix crea un RoutePrefix con los valores por defecto
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// NewRouter crea una instancia nueva de Router
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware registra una ruta con middleware usando .Use()
// sobre un group (la única forma que funciona en Fiber v3, ver nota arriba).
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterCRUDRoutes registra las rutas CRUD de una colección.
// Todas las rutas requieren autenticación; los datos quedan filtrados
// por el usuario dueño en el handler base.
func (r *Router) RegisterCRUDRoutes(router fiber.Router, prefix string, h CRUDHandler, config CRUDConfig) {
	authMiddleware := middleware.AuthMiddleware()
	auth := []fiber.Handler{authMiddleware}

	// Create
	if config.InsOne {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/insert-one", auth, h.InsertOne)
	}
	if config.InsMany {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/insert-many", auth, h.InsertMany)
	}

	// Read
	if config.Find {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find", auth, h.Find)
	}
	if config.FindOne {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-one", auth, h.FindOne)
	}
	if config.FindById {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-by-id/:id", auth, h.FindOneById)
	}
	if config.FindIds {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/find-by-ids", auth, h.FindManyByIds)
	}
	if config.Paginate {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/find-with-pagination", auth, h.FindWithPagination)
	}

	// Update
	if config.UpdById {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/update-by-id/:id", auth, h.UpdateById)
	}
	if config.UpdMany {
		RegisterRouteWithMiddleware(router, prefix, "PUT", "/update-many", auth, h.UpdateMany)
	}

	// Delete
	if config.DelById {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/delete-by-id/:id", auth, h.DeleteById)
	}
	if config.DelMany {
		RegisterRouteWithMiddleware(router, prefix, "DELETE", "/delete-many", auth, h.DeleteMany)
	}

	// Other
	if config.Count {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/count", auth, h.CountDocuments)
	}
	if config.Distinct {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/distinct/:field", auth, h.Distinct)
	}
	if config.Upsert {
		RegisterRouteWithMiddleware(router, prefix, "POST", "/upsert-one", auth, h.Upsert)
	}
	if config.Exists {
		RegisterRouteWithMiddleware(router, prefix, "GET", "/exists", auth, h.DocumentExists)
	}
}

// RegisterFunc es la función de registro de rutas de un dominio (la exporta cada domain/router)
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes configura todas las rutas de la aplicación.
// El caller pasa el Register de cada dominio para evitar import cycles.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
