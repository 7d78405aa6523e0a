package middleware

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"

	"gestion_ventas/internal/api/auth/models"
	authsvc "gestion_ventas/internal/api/auth/service"
	"gestion_ventas/internal/common"
	"gestion_ventas/internal/logger"
	"gestion_ventas/internal/utility"
)

// AuthManager administra la autenticación con un cache de tokens.
// Singleton: se inicializa una sola vez al primer request.
type AuthManager struct {
	usuarioCRUD *authsvc.UsuarioService
	cache       *utility.Cache
}

var (
	authManager     *AuthManager
	authManagerOnce sync.Once
	authManagerErr  error
)

// getAuthManager devuelve el singleton de AuthManager
func getAuthManager() (*AuthManager, error) {
	authManagerOnce.Do(func() {
		usuarioService, err := authsvc.NewUsuarioService()
		if err != nil {
			authManagerErr = err
			return
		}
		authManager = &AuthManager{
			usuarioCRUD: usuarioService,
			cache:       utility.NewCache(5*time.Minute, 10*time.Minute),
		}
	})
	if authManagerErr != nil {
		return nil, authManagerErr
	}
	return authManager, nil
}

// AuthMiddleware valida el token Bearer y carga el usuario en el contexto.
// Setea c.Locals("user_id") y c.Locals("user") para los handlers.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		manager, err := getAuthManager()
		if err != nil {
			logger.GetAppLogger().WithError(err).Error("❌ [AUTH] No se pudo inicializar el auth manager")
			return HandleErrorResponse(c, common.NewError(
				common.ErrCodeInternalServer,
				"Error interno de autenticación",
				common.StatusInternalServerError,
				nil,
			))
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return HandleErrorResponse(c, common.ErrTokenMissing)
		}
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == authHeader || token == "" {
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"path": c.Path(),
			}).Warn("❌ [AUTH] Header Authorization sin formato Bearer")
			return HandleErrorResponse(c, common.ErrTokenInvalid)
		}

		usuario, err := manager.resolverUsuario(c, token)
		if err != nil {
			return HandleErrorResponse(c, err)
		}

		if usuario.IsBlock {
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"user_id": usuario.ID.Hex(),
			}).Warn("❌ [AUTH] Usuario bloqueado intentó acceder")
			return HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuth,
				"La cuenta está bloqueada: "+usuario.BlockNote,
				common.StatusForbidden,
				nil,
			))
		}

		c.Locals("user_id", usuario.ID.Hex())
		c.Locals("user", usuario)
		return c.Next()
	}
}

// resolverUsuario busca el usuario dueño del token, primero en cache y después en la base
func (m *AuthManager) resolverUsuario(c fiber.Ctx, token string) (*models.Usuario, error) {
	if cached, exists := m.cache.Get(token); exists {
		if usuario, ok := cached.(*models.Usuario); ok {
			return usuario, nil
		}
	}

	ctx := c.Context()

	// Token de la última sesión
	usuario, err := m.usuarioCRUD.FindOne(ctx, bson.M{"token": token}, nil)
	if err != nil {
		// Token de otro dispositivo (array tokens por hwid)
		usuario, err = m.usuarioCRUD.FindOne(ctx, bson.M{"tokens.jwtToken": token}, nil)
		if err != nil {
			logger.GetAppLogger().WithFields(map[string]interface{}{
				"path": c.Path(),
			}).Warn("❌ [AUTH] Token no asociado a ningún usuario")
			return nil, common.ErrTokenInvalid
		}
	}

	m.cache.Set(token, &usuario)
	return &usuario, nil
}
