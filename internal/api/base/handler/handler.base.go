package basehdl

// Package basehdl contiene los handlers base para las rutas HTTP.
// Provee las operaciones CRUD genéricas y las utilidades para procesar request/response.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"

	basesvc "gestion_ventas/internal/api/base/service"
	"gestion_ventas/internal/common"
	"gestion_ventas/internal/global"
	"gestion_ventas/internal/utility"
)

// FilterOptions configura la validación de filtros
type FilterOptions struct {
	DeniedFields     []string // Campos prohibidos en el filtro
	AllowedOperators []string // Operadores MongoDB permitidos
	MaxFields        int      // Cantidad máxima de campos en un filtro
}

// BaseHandler es el handler base de Fiber, provee las operaciones CRUD genéricas.
// Usa Generic Types para reutilizarse con cualquier model.
//
// Type parameters:
// - T: Tipo de dato del model
// - CreateInput: Tipo de dato del input al crear
// - UpdateInput: Tipo de dato del input al actualizar
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService   basesvc.BaseServiceMongo[T] // Service con la lógica de negocio sobre MongoDB
	filterOptions FilterOptions               // Configuración de validación de filtros
}

// NewBaseHandler crea un BaseHandler nuevo con el BaseService provisto
func NewBaseHandler[T any, CreateInput any, UpdateInput any](baseService basesvc.BaseServiceMongo[T]) *BaseHandler[T, CreateInput, UpdateInput] {
	return &BaseHandler[T, CreateInput, UpdateInput]{
		BaseService: baseService,
		filterOptions: FilterOptions{
			DeniedFields: []string{
				"password",
				"token",
				"salt",
			},
			AllowedOperators: []string{
				"$eq",
				"$gt",
				"$gte",
				"$lt",
				"$lte",
				"$in",
				"$nin",
				"$exists",
				"$regex",
			},
			MaxFields: 10,
		},
	}
}

// ====================================
// HELPERS DE PROPIEDAD (ownerUserId)
// ====================================

// hasOwnerUserIDField verifica si el model tiene el campo OwnerUserID (usa reflection).
// Este campo determina a qué cuenta de negocio pertenecen los datos.
func (h *BaseHandler[T, CreateInput, UpdateInput]) hasOwnerUserIDField() bool {
	var zero T
	val := reflect.ValueOf(zero)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return false
	}
	field := val.FieldByName("OwnerUserID")
	return field.IsValid()
}

// GetOwnerUserIDFromContext obtiene el user id del token (seteado por el middleware de auth)
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetOwnerUserIDFromContext(c fiber.Ctx) *primitive.ObjectID {
	userIDStr, ok := c.Locals("user_id").(string)
	if !ok || userIDStr == "" {
		return nil
	}
	userID, err := primitive.ObjectIDFromHex(userIDStr)
	if err != nil {
		return nil
	}
	return &userID
}

// setOwnerUserID asigna el ownerUserId al model (usa reflection).
// Siempre sobreescribe: el dueño sale del token, nunca del request body.
func (h *BaseHandler[T, CreateInput, UpdateInput]) setOwnerUserID(model interface{}, userID primitive.ObjectID) {
	if !h.hasOwnerUserIDField() || userID.IsZero() {
		return
	}

	val := reflect.ValueOf(model)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	field := val.FieldByName("OwnerUserID")
	if !field.IsValid() || !field.CanSet() {
		return
	}
	if _, ok := field.Interface().(primitive.ObjectID); ok {
		field.Set(reflect.ValueOf(userID))
	}
}

// applyOwnerFilter agrega el filtro ownerUserId automáticamente.
// SOLO aplica si el model tiene el campo OwnerUserID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) applyOwnerFilter(c fiber.Ctx, baseFilter map[string]interface{}) map[string]interface{} {
	if !h.hasOwnerUserIDField() {
		return baseFilter
	}

	userID := h.GetOwnerUserIDFromContext(c)
	if userID == nil {
		return baseFilter
	}

	if baseFilter == nil {
		baseFilter = make(map[string]interface{})
	}
	baseFilter["ownerUserId"] = *userID
	return baseFilter
}

// validateOwnerAccess verifica que el documento pertenezca al usuario del token.
// SOLO valida si el model tiene el campo OwnerUserID.
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateOwnerAccess(c fiber.Ctx, documentID string) error {
	if !h.hasOwnerUserIDField() {
		return nil
	}

	id, err := primitive.ObjectIDFromHex(documentID)
	if err != nil {
		return common.NewError(common.ErrCodeValidationInput, "ID no válido", common.StatusBadRequest, err)
	}

	doc, err := h.BaseService.FindOneById(c.Context(), id)
	if err != nil {
		return err
	}

	docOwner := getOwnerUserIDFromValue(doc)
	if docOwner.IsZero() {
		return nil
	}

	userID := h.GetOwnerUserIDFromContext(c)
	if userID == nil || *userID != docOwner {
		return common.NewError(common.ErrCodeAuth, "No tiene acceso a este registro", common.StatusForbidden, nil)
	}
	return nil
}

// getOwnerUserIDFromValue obtiene el OwnerUserID de un valor (usa reflection)
func getOwnerUserIDFromValue(model interface{}) primitive.ObjectID {
	val := reflect.ValueOf(model)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return primitive.NilObjectID
		}
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return primitive.NilObjectID
	}
	field := val.FieldByName("OwnerUserID")
	if !field.IsValid() || !field.CanInterface() {
		return primitive.NilObjectID
	}
	if id, ok := field.Interface().(primitive.ObjectID); ok {
		return id
	}
	return primitive.NilObjectID
}

// ====================================
// PARSE Y VALIDACIÓN DE REQUEST
// ====================================

// validateInput valida en detalle los datos de entrada
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateInput(input interface{}) error {
	// Validar con el validator global
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	// Chequeos extra por struct tag
	val := reflect.ValueOf(input)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)
		fieldType := typ.Field(i)

		// Longitud máxima de strings (tag maxLength)
		if field.Kind() == reflect.String {
			if maxTag := fieldType.Tag.Get("maxLength"); maxTag != "" {
				maxLen, err := strconv.Atoi(maxTag)
				if err == nil && len(field.String()) > maxLen {
					return common.NewError(
						common.ErrCodeValidationInput,
						fmt.Sprintf("El campo %s supera la longitud permitida (%d caracteres)", fieldType.Name, maxLen),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}

	return nil
}

// ValidateInput expone la validación de inputs para los handlers de dominio
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	return h.validateInput(input)
}

// ParseRequestBody parsea y valida los datos del request body.
// Usa json.Decoder con UseNumber() para manejar los números con precisión.
//
// Parameters:
// - c: Fiber context
// - input: Puntero al struct que recibe los datos parseados
//
// Returns:
// - error: Error de parseo o validación si lo hubo
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	reader := bytes.NewReader(body)
	decoder := json.NewDecoder(reader)
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ParseRequestParams parsea y valida los parámetros de la URI.
//
// Parameters:
// - c: Fiber context
// - input: Puntero al struct que recibe los datos parseados
//
// Returns:
// - error: Error de parseo o validación si lo hubo
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestParams(c fiber.Ctx, input interface{}) error {
	if err := c.Bind().URI(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}
	if err := global.Validate.Struct(input); err != nil {
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}

// ProcessFilter procesa y valida el filtro del request
func (h *BaseHandler[T, CreateInput, UpdateInput]) ProcessFilter(c fiber.Ctx) (map[string]interface{}, error) {
	var filter map[string]interface{}

	filterStr := c.Query("filter", "{}")
	if err := json.Unmarshal([]byte(filterStr), &filter); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("El filtro no es JSON válido. Detalle: %v. Valor recibido: %s", err, filterStr),
			common.StatusBadRequest,
			err,
		)
	}

	// Normalizar: convertir strings con formato ObjectId en ObjectID
	filter = h.normalizeFilter(filter)

	if err := h.validateFilter(filter); err != nil {
		return nil, err
	}

	return filter, nil
}

// normalizeFilter convierte los strings con formato ObjectId en ObjectID dentro del filtro.
// Aplica a los campos cuyo nombre termina en "Id" o "ID".
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilter(filter map[string]interface{}) map[string]interface{} {
	if filter == nil {
		return filter
	}

	normalized := make(map[string]interface{})
	for field, value := range filter {
		fieldLower := strings.ToLower(field)
		isIDField := strings.HasSuffix(fieldLower, "id") && len(fieldLower) > 2

		normalized[field] = h.normalizeFilterValue(value, isIDField)
	}

	return normalized
}

// normalizeFilterValue convierte un valor del filtro, soporta estructuras anidadas
func (h *BaseHandler[T, CreateInput, UpdateInput]) normalizeFilterValue(value interface{}, isIDField bool) interface{} {
	if value == nil {
		return value
	}

	// Soporta MongoDB Extended JSON: {"$oid": "..."}
	if mapValue, ok := value.(map[string]interface{}); ok {
		if oidValue, hasOid := mapValue["$oid"]; hasOid {
			if oidStr, ok := oidValue.(string); ok && primitive.IsValidObjectID(oidStr) {
				if objID, err := primitive.ObjectIDFromHex(oidStr); err == nil {
					return objID
				}
			}
			return value
		}
	}

	// String en un campo *Id → intentar convertir a ObjectID
	if strValue, ok := value.(string); ok && isIDField {
		if primitive.IsValidObjectID(strValue) {
			if objID, err := primitive.ObjectIDFromHex(strValue); err == nil {
				return objID
			}
		}
		return strValue
	}

	// Arrays: procesar cada elemento
	if arrValue, ok := value.([]interface{}); ok {
		normalizedArr := make([]interface{}, len(arrValue))
		for i, item := range arrValue {
			normalizedArr[i] = h.normalizeFilterValue(item, isIDField)
		}
		return normalizedArr
	}

	// Maps (operadores como $in, $nin, $eq): procesar recursivo
	if mapValue, ok := value.(map[string]interface{}); ok {
		normalizedMap := make(map[string]interface{})
		for key, val := range mapValue {
			normalizedMap[key] = h.normalizeFilterValue(val, isIDField)
		}
		return normalizedMap
	}

	return value
}

// validateFilter verifica que el filtro sea válido
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateFilter(filter map[string]interface{}) error {
	deniedFields := h.filterOptions.DeniedFields
	allowedOperators := h.filterOptions.AllowedOperators
	maxFields := h.filterOptions.MaxFields
	if maxFields == 0 {
		maxFields = 10
	}

	if len(filter) > maxFields {
		return common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("El filtro supera la cantidad de campos permitida. Máximo %d campos, hay %d.", maxFields, len(filter)),
			common.StatusBadRequest,
			nil,
		)
	}

	for field, value := range filter {
		if utility.Contains(deniedFields, field) {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("El campo '%s' no se puede usar en el filtro por motivos de seguridad.", field),
				common.StatusBadRequest,
				nil,
			)
		}

		if mapValue, ok := value.(map[string]interface{}); ok {
			for op := range mapValue {
				if strings.HasPrefix(op, "$") && !utility.Contains(allowedOperators, op) {
					return common.NewError(
						common.ErrCodeValidationFormat,
						fmt.Sprintf("El operador MongoDB '%s' no está permitido. Operadores permitidos: %v", op, allowedOperators),
						common.StatusBadRequest,
						nil,
					)
				}
			}
		}
	}

	return nil
}

// processMongoOptions procesa las options del query string y las convierte en options de MongoDB
func (h *BaseHandler[T, CreateInput, UpdateInput]) processMongoOptions(c fiber.Ctx, isFindOne bool) (interface{}, error) {
	var rawOptions map[string]interface{}

	optionsStr := c.Query("options", "{}")
	if err := json.Unmarshal([]byte(optionsStr), &rawOptions); err != nil {
		return nil, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Las options no son JSON válido. Detalle: %v. Valor recibido: %s", err, optionsStr),
			common.StatusBadRequest,
			err,
		)
	}

	if err := h.validateMongoOptions(rawOptions); err != nil {
		return nil, err
	}

	parseSortMap := func(sortMap map[string]interface{}) bson.D {
		sortBson := bson.D{}
		for field, value := range sortMap {
			var sortValue int
			if v, ok := value.(float64); ok {
				sortValue = int(v)
			} else if v, ok := value.(int); ok {
				sortValue = v
			} else {
				continue
			}
			if sortValue != 1 && sortValue != -1 {
				continue
			}
			sortBson = append(sortBson, bson.E{Key: field, Value: sortValue})
		}
		return sortBson
	}

	if isFindOne {
		opts := mongoopts.FindOne()
		if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
			opts.SetProjection(projection)
		}
		if sort, ok := rawOptions["sort"].(map[string]interface{}); ok {
			opts.SetSort(parseSortMap(sort))
		}
		return opts, nil
	}

	opts := mongoopts.Find()
	if projection, ok := rawOptions["projection"].(map[string]interface{}); ok {
		opts.SetProjection(projection)
	}
	if sort, ok := rawOptions["sort"].(map[string]interface{}); ok {
		opts.SetSort(parseSortMap(sort))
	}
	if limit, ok := rawOptions["limit"].(float64); ok {
		opts.SetLimit(int64(limit))
	}
	if skip, ok := rawOptions["skip"].(float64); ok {
		opts.SetSkip(int64(skip))
	}
	return opts, nil
}

// validateMongoOptions verifica que las options sean válidas
func (h *BaseHandler[T, CreateInput, UpdateInput]) validateMongoOptions(options map[string]interface{}) error {
	deniedFields := h.filterOptions.DeniedFields

	allowedOptions := map[string]bool{
		"projection": true,
		"sort":       true,
		"limit":      true,
		"skip":       true,
	}

	for key := range options {
		if !allowedOptions[key] {
			return common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("La option '%s' no está soportada. Options permitidas: projection, sort, limit, skip", key),
				common.StatusBadRequest,
				nil,
			)
		}
	}

	if projection, ok := options["projection"].(map[string]interface{}); ok {
		for field := range projection {
			if utility.Contains(deniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("El campo '%s' no se puede usar en projection por motivos de seguridad", field),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if sort, ok := options["sort"].(map[string]interface{}); ok {
		for field, value := range sort {
			if utility.Contains(deniedFields, field) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("El campo '%s' no se puede usar en sort por motivos de seguridad", field),
					common.StatusBadRequest,
					nil,
				)
			}
			if v, ok := value.(float64); !ok || (v != 1 && v != -1) {
				return common.NewError(
					common.ErrCodeValidationFormat,
					fmt.Sprintf("El valor de sort para el campo '%s' debe ser 1 (ascendente) o -1 (descendente), valor actual: %v", field, value),
					common.StatusBadRequest,
					nil,
				)
			}
		}
	}

	if limit, ok := options["limit"].(float64); ok {
		if limit <= 0 {
			return common.NewError(common.ErrCodeValidationFormat, "El valor de limit debe ser mayor que 0", common.StatusBadRequest, nil)
		}
		if limit > 1000 {
			return common.NewError(common.ErrCodeValidationFormat, "El valor de limit no puede superar 1000 por rendimiento", common.StatusBadRequest, nil)
		}
	}

	if skip, ok := options["skip"].(float64); ok {
		if skip < 0 {
			return common.NewError(common.ErrCodeValidationFormat, "El valor de skip no puede ser negativo", common.StatusBadRequest, nil)
		}
	}

	return nil
}

// ParsePagination parsea la información de paginación del request.
// Parámetros soportados:
// - page: Número de página (default: 1)
// - limit: Cantidad de elementos por página (default: 10)
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - page: Número de página
// - limit: Cantidad de elementos por página
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParsePagination(c fiber.Ctx) (int64, int64) {
	page := utility.P2Int64(c.Query("page", "1"))
	if page <= 0 {
		page = 1
	}

	limit := utility.P2Int64(c.Query("limit", "10"))
	if limit <= 0 {
		limit = 10
	}

	return page, limit
}

// GetIDFromContext obtiene el ID de los params de la URI.
//
// Parameters:
// - c: Fiber context
//
// Returns:
// - string: ID de los params
func (h *BaseHandler[T, CreateInput, UpdateInput]) GetIDFromContext(c fiber.Ctx) string {
	return c.Params("id")
}

// ====================================
// TRANSFORMACIÓN DTO → MODEL
// ====================================

// transformInputToModel convierte un DTO en el Model T copiando los campos con el mismo nombre.
// Los strings con formato ObjectId se convierten automáticamente cuando el campo
// destino es primitive.ObjectID (o []primitive.ObjectID para slices de string).
func transformInputToModel[T any](input interface{}) (*T, error) {
	model := new(T)

	inputVal := reflect.ValueOf(input)
	if inputVal.Kind() == reflect.Ptr {
		inputVal = inputVal.Elem()
	}
	if inputVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("el input debe ser un struct o puntero a struct")
	}

	modelVal := reflect.ValueOf(model).Elem()
	if modelVal.Kind() != reflect.Struct {
		return nil, fmt.Errorf("el model debe ser un struct")
	}

	inputType := inputVal.Type()
	modelType := modelVal.Type()

	objectIDType := reflect.TypeOf(primitive.ObjectID{})
	objectIDSliceType := reflect.TypeOf([]primitive.ObjectID{})

	for i := 0; i < inputVal.NumField(); i++ {
		inputField := inputVal.Field(i)
		inputFieldType := inputType.Field(i)

		if !inputField.CanInterface() {
			continue
		}

		targetName := inputFieldType.Name
		if _, found := modelType.FieldByName(targetName); !found {
			continue
		}
		modelField := modelVal.FieldByName(targetName)
		if !modelField.IsValid() || !modelField.CanSet() {
			continue
		}

		// string → ObjectID
		if inputField.Kind() == reflect.String && modelField.Type() == objectIDType {
			strVal := inputField.String()
			if strVal == "" {
				continue
			}
			objID, err := primitive.ObjectIDFromHex(strVal)
			if err != nil {
				return nil, fmt.Errorf("el campo %s no es un ObjectId válido: %w", targetName, err)
			}
			modelField.Set(reflect.ValueOf(objID))
			continue
		}

		// []string → []ObjectID
		if inputField.Type() == reflect.TypeOf([]string{}) && modelField.Type() == objectIDSliceType {
			strs := inputField.Interface().([]string)
			ids := make([]primitive.ObjectID, 0, len(strs))
			for _, s := range strs {
				objID, err := primitive.ObjectIDFromHex(s)
				if err != nil {
					return nil, fmt.Errorf("el campo %s contiene un ObjectId no válido '%s'", targetName, s)
				}
				ids = append(ids, objID)
			}
			modelField.Set(reflect.ValueOf(ids))
			continue
		}

		// Copia directa si los tipos son compatibles
		if inputField.Type().AssignableTo(modelField.Type()) {
			modelField.Set(inputField)
		} else if inputField.Type().ConvertibleTo(modelField.Type()) {
			modelField.Set(inputField.Convert(modelField.Type()))
		}
	}

	return model, nil
}

// TransformCreateInputToModel convierte un CreateInput (DTO) en el Model T
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformCreateInputToModel(input *CreateInput) (*T, error) {
	return transformInputToModel[T](input)
}

// TransformUpdateInputToModel convierte un UpdateInput (DTO) en el Model T
func (h *BaseHandler[T, CreateInput, UpdateInput]) TransformUpdateInputToModel(input *UpdateInput) (*T, error) {
	return transformInputToModel[T](input)
}
