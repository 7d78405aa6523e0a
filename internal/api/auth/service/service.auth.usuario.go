// Package authsvc - lógica de negocio del domain auth.
package authsvc

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "gestion_ventas/internal/api/auth/dto"
	"gestion_ventas/internal/api/auth/models"
	basesvc "gestion_ventas/internal/api/base/service"
	"gestion_ventas/internal/common"
	"gestion_ventas/internal/global"
	"gestion_ventas/internal/utility"
)

// UsuarioService maneja el registro, login y sesiones de la cuenta de negocio
type UsuarioService struct {
	*basesvc.BaseServiceMongoImpl[models.Usuario]
}

// NewUsuarioService crea una instancia nueva de UsuarioService
func NewUsuarioService() (*UsuarioService, error) {
	collection, exists := global.RegistryCollections.Get(global.MongoDB_ColNames.Usuarios)
	if !exists {
		return nil, common.NewError(
			common.ErrCodeDatabaseConnection,
			"No se encontró la colección de usuarios",
			common.StatusInternalServerError,
			nil,
		)
	}
	return &UsuarioService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Usuario](collection),
	}, nil
}

// Registrar crea una cuenta nueva con email y contraseña.
// El email debe ser único; la contraseña se guarda con hash bcrypt.
func (s *UsuarioService) Registrar(ctx context.Context, input *authdto.RegistroInput) (*models.Usuario, error) {
	exists, err := s.DocumentExists(ctx, bson.M{"email": input.Email})
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.NewError(
			common.ErrCodeBusinessOperation,
			"El email ya está registrado",
			common.StatusConflict,
			nil,
		)
	}

	hashed, err := utility.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			"No se pudo procesar la contraseña",
			common.StatusInternalServerError,
			err,
		)
	}

	usuario := models.Usuario{
		Nombre:        input.Nombre,
		Email:         input.Email,
		Password:      hashed,
		Telefono:      input.Telefono,
		NombreNegocio: input.NombreNegocio,
	}

	created, err := s.InsertOne(ctx, usuario)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": created.ID.Hex(),
		"email":   created.Email,
	}).Info("Cuenta registrada")

	// Iniciar sesión en el mismo paso del registro
	return s.emitirToken(ctx, &created, input.Hwid)
}

// Login valida email y contraseña y emite un token para el dispositivo (hwid).
func (s *UsuarioService) Login(ctx context.Context, input *authdto.LoginInput) (*models.Usuario, error) {
	usuario, err := s.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		// No revelar si el email existe o no
		return nil, common.ErrInvalidCredentials
	}

	if usuario.IsBlock {
		return nil, common.NewError(
			common.ErrCodeAuth,
			"La cuenta está bloqueada: "+usuario.BlockNote,
			common.StatusForbidden,
			nil,
		)
	}

	if !utility.CheckPassword(usuario.Password, input.Password) {
		return nil, common.ErrInvalidCredentials
	}

	return s.emitirToken(ctx, &usuario, input.Hwid)
}

// emitirToken genera un JWT nuevo y lo asocia al hwid del dispositivo.
// Si el dispositivo ya tenía un token, se reemplaza.
func (s *UsuarioService) emitirToken(ctx context.Context, usuario *models.Usuario, hwid string) (*models.Usuario, error) {
	rdNumber := rand.Intn(100)
	currentTime := time.Now().Unix()
	tokenMap, err := utility.CreateToken(
		global.MongoDB_ServerConfig.JwtSecret,
		usuario.ID.Hex(),
		strconv.FormatInt(currentTime, 16),
		strconv.Itoa(rdNumber),
	)
	if err != nil {
		return nil, common.NewError(
			common.ErrCodeInternalServer,
			"No se pudo generar el token",
			common.StatusInternalServerError,
			err,
		)
	}
	token := tokenMap["token"]

	// Reemplazar el token del mismo dispositivo, o agregar uno nuevo
	tokens := make([]models.Token, 0, len(usuario.Tokens)+1)
	replaced := false
	for _, t := range usuario.Tokens {
		if t.Hwid == hwid {
			tokens = append(tokens, models.Token{Hwid: hwid, JwtToken: token})
			replaced = true
			continue
		}
		tokens = append(tokens, t)
	}
	if !replaced {
		tokens = append(tokens, models.Token{Hwid: hwid, JwtToken: token})
	}

	update := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token":  token,
			"tokens": tokens,
		},
	}
	updated, err := s.UpdateById(ctx, usuario.ID, update)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": updated.ID.Hex(),
		"hwid":    hwid,
	}).Debug("Token emitido")

	return &updated, nil
}

// Logout cierra la sesión de un dispositivo: elimina el token del hwid indicado.
func (s *UsuarioService) Logout(ctx context.Context, userID primitive.ObjectID, input *authdto.LogoutInput) error {
	usuario, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	tokens := make([]models.Token, 0, len(usuario.Tokens))
	for _, t := range usuario.Tokens {
		if t.Hwid == input.Hwid {
			continue
		}
		tokens = append(tokens, t)
	}

	update := &basesvc.UpdateData{
		Set:   map[string]interface{}{"tokens": tokens},
		Unset: map[string]interface{}{"token": ""},
	}
	if _, err := s.UpdateById(ctx, userID, update); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID.Hex(),
		"hwid":    input.Hwid,
	}).Info("Sesión cerrada")
	return nil
}

// CambiarPassword valida la contraseña actual y la reemplaza.
// Invalida todas las sesiones activas.
func (s *UsuarioService) CambiarPassword(ctx context.Context, userID primitive.ObjectID, input *authdto.CambiarPasswordInput) error {
	usuario, err := s.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if !utility.CheckPassword(usuario.Password, input.PasswordActual) {
		return common.NewError(
			common.ErrCodeAuthCredentials,
			"La contraseña actual no es correcta",
			common.StatusUnauthorized,
			nil,
		)
	}

	hashed, err := utility.HashPassword(input.PasswordNuevo)
	if err != nil {
		return common.NewError(
			common.ErrCodeInternalServer,
			"No se pudo procesar la contraseña",
			common.StatusInternalServerError,
			err,
		)
	}

	update := &basesvc.UpdateData{
		Set:   map[string]interface{}{"password": hashed, "tokens": []models.Token{}},
		Unset: map[string]interface{}{"token": ""},
	}
	if _, err := s.UpdateById(ctx, userID, update); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"user_id": userID.Hex()}).Info("Contraseña actualizada")
	return nil
}
