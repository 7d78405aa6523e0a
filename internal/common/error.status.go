package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// Constantes de códigos de estado HTTP
const (
	// Códigos de éxito (2xx)
	StatusOK        = 200 // Operación exitosa
	StatusCreated   = 201 // Recurso creado
	StatusAccepted  = 202 // Solicitud aceptada
	StatusNoContent = 204 // Éxito sin contenido

	// Códigos de error del cliente (4xx)
	StatusBadRequest         = 400 // Solicitud inválida
	StatusUnauthorized       = 401 // Sin autenticar
	StatusForbidden          = 403 // Sin permiso de acceso
	StatusNotFound           = 404 // Recurso no encontrado
	StatusMethodNotAllowed   = 405 // Método HTTP no soportado
	StatusConflict           = 409 // Conflicto de datos
	StatusGone               = 410 // El recurso ya no existe
	StatusPreconditionFailed = 412 // Precondición no cumplida
	StatusTooManyRequests    = 429 // Demasiadas solicitudes

	// Códigos de error del servidor (5xx)
	StatusInternalServerError = 500 // Error del servidor
	StatusNotImplemented      = 501 // Función no implementada
	StatusBadGateway          = 502 // Gateway inválido
	StatusServiceUnavailable  = 503 // Servicio no disponible
	StatusGatewayTimeout      = 504 // Timeout del gateway
)

// Mensajes de respuesta
const (
	// Mensajes de éxito
	MsgSuccess   = "Operación exitosa"
	MsgCreated   = "Creado correctamente"
	MsgAccepted  = "Solicitud aceptada"
	MsgNoContent = "Sin contenido para devolver"

	// Mensajes de error
	MsgBadRequest         = "Solicitud inválida"
	MsgUnauthorized       = "Por favor inicie sesión"
	MsgForbidden          = "Sin permiso de acceso"
	MsgNotFound           = "Recurso no encontrado"
	MsgMethodNotAllowed   = "Método no soportado"
	MsgConflict           = "Conflicto de datos"
	MsgTooManyRequests    = "Demasiadas solicitudes"
	MsgInternalError      = "Error del sistema"
	MsgServiceUnavailable = "Servicio no disponible"

	// Mensajes de token
	MsgTokenMissing = "Falta el token de autenticación"
	MsgTokenInvalid = "Token inválido"
	MsgTokenExpired = "El token expiró"

	// Mensajes de validación
	MsgValidationError = "Datos inválidos"
	MsgDatabaseError   = "Error al interactuar con la base de datos"
	MsgInvalidFormat   = "Formato de datos inválido"
)

// ErrorCode define un código de error detallado
type ErrorCode struct {
	Code        string // Código del error (ej: AUTH_001)
	Category    string // Categoría del error (ej: Authentication)
	SubCategory string // Subcategoría (ej: Token)
	Description string // Descripción detallada
}

// Códigos de error organizados por jerarquía
var (
	// Errores de sistema (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Error interno del sistema",
	}

	// Errores de autenticación (AUTH_xxx)
	ErrCodeAuth = ErrorCode{
		Code:        "AUTH",
		Category:    "Authentication",
		SubCategory: "General",
		Description: "Error general de autenticación",
	}

	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Error relacionado con el token",
	}

	ErrCodeAuthCredentials = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Credentials",
		Description: "Error de credenciales de acceso",
	}

	// Errores de validación (VAL_xxx)
	ErrCodeValidation = ErrorCode{
		Code:        "VAL",
		Category:    "Validation",
		SubCategory: "General",
		Description: "Error general de validación de datos",
	}

	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Error en los datos de entrada",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Error de formato de datos",
	}

	// Errores de base de datos (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Error general de base de datos",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Error de conexión a la base de datos",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Error de consulta de datos",
	}

	// Errores de lógica de negocio (BIZ_xxx)
	ErrCodeBusiness = ErrorCode{
		Code:        "BIZ",
		Category:    "Business",
		SubCategory: "General",
		Description: "Error general de lógica de negocio",
	}

	ErrCodeBusinessState = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "State",
		Description: "Error de estado de negocio",
	}

	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Error de operación de negocio",
	}
)

// Error define la estructura de error detallada
type Error struct {
	Code       ErrorCode // Código de error detallado
	Message    string    // Mensaje del error
	StatusCode int       // HTTP status code
	Details    any       // Información adicional del error
}

// Error devuelve el mensaje del error
func (e *Error) Error() string {
	return e.Message
}

// Is verifica si el error corresponde al target (soporte para errors.Is)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError crea un error nuevo con información completa
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// Errores predefinidos
var (
	// Errores de autenticación
	ErrInvalidCredentials = NewError(ErrCodeAuthCredentials, "Credenciales incorrectas", StatusUnauthorized, nil)
	ErrTokenExpired       = NewError(ErrCodeAuthToken, "La sesión expiró", StatusUnauthorized, nil)
	ErrTokenInvalid       = NewError(ErrCodeAuthToken, "Token inválido", StatusUnauthorized, nil)
	ErrTokenMissing       = NewError(ErrCodeAuthToken, "Falta el token de autenticación", StatusUnauthorized, nil)
	ErrUserNotFound       = NewError(ErrCodeAuthCredentials, "No se encontró el usuario", StatusNotFound, nil)

	// Errores de validación
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Datos de entrada inválidos", StatusBadRequest, nil)
	ErrInvalidEmail  = NewError(ErrCodeValidationInput, "El email no tiene un formato válido", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Formato de datos inválido", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Falta información obligatoria", StatusBadRequest, nil)

	// Errores de base de datos
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "No se encontraron datos", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseQuery, "El dato ya existe", StatusConflict, nil)
	ErrConstraint = NewError(ErrCodeDatabaseQuery, "Violación de restricción de datos", StatusBadRequest, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Error de conexión a la base de datos", StatusServiceUnavailable, nil)

	// Errores de lógica de negocio
	ErrInvalidState     = NewError(ErrCodeBusinessState, "Estado inválido", StatusBadRequest, nil)
	ErrInvalidOperation = NewError(ErrCodeBusinessOperation, "Operación inválida", StatusBadRequest, nil)
	// ErrPagoExcedente se devuelve cuando un abono haría que la suma de pagos supere el total del pedido.
	ErrPagoExcedente = NewError(ErrCodeBusinessOperation, "El abono supera el saldo pendiente del pedido", StatusBadRequest, nil)
	// ErrLimiteEtiquetas se devuelve al intentar asociar más de 4 etiquetas a un producto.
	ErrLimiteEtiquetas = NewError(ErrCodeBusinessOperation, "Un producto admite como máximo 4 etiquetas", StatusBadRequest, nil)
)

// Errores específicos de MongoDB
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, "Error de conexión a MongoDB", StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseConnection, "Error de red al conectar con MongoDB", StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, "La conexión a MongoDB excedió el tiempo de espera", StatusServiceUnavailable, nil)
	ErrMongoAuth       = NewError(ErrCodeAuth, "Error de autenticación con MongoDB", StatusUnauthorized, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, "Error de consulta en MongoDB", StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, "Error al escribir datos en MongoDB", StatusInternalServerError, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, "Dato duplicado en MongoDB", StatusConflict, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, "Error de sistema de MongoDB", StatusInternalServerError, nil)
)

// ConvertMongoError convierte un error de MongoDB a un error del sistema
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// ErrNotFound no se convierte; se propaga tal cual para que los handlers lo distingan
	if errors.Is(err, ErrNotFound) {
		return err
	}
	if mongo.ErrNoDocuments == err || errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// Errores de comando MongoDB agrupados por rango de código
	var mongoErr mongo.CommandError
	if errors.As(err, &mongoErr) {
		switch {
		case mongoErr.Code >= 100 && mongoErr.Code < 200:
			return ErrMongoConnection
		case mongoErr.Code >= 200 && mongoErr.Code < 300:
			return ErrMongoAuth
		case mongoErr.Code >= 300 && mongoErr.Code < 400:
			return ErrMongoQuery
		case mongoErr.Code >= 400 && mongoErr.Code < 500:
			return ErrMongoWrite
		case mongoErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	return NewError(ErrCodeDatabase, MsgDatabaseError, StatusInternalServerError, err)
}
