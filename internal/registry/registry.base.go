// Package registry implementa el patrón registry con tipos genéricos.
// Permite administrar instancias singleton de la aplicación de forma thread-safe.
// El tipo genérico hace que sea reutilizable para distintos tipos de objetos.
package registry

import (
	"fmt"
	"sync"

	"gestion_ventas/internal/common"
)

// Registry es una implementación thread-safe del patrón registry con genéricos.
// El type parameter T permite administrar cualquier tipo de objeto.
// La concurrencia se protege con sync.RWMutex.
//
// Example:
//
//	reg := NewRegistry[string]()
//	reg.Register("clave", "valor")
//	if v, existe := reg.Get("clave"); existe {
//	    fmt.Println(v)
//	}
type Registry[T any] struct {
	items map[string]T // Items almacenados por clave
	mu    sync.RWMutex // Mutex para thread-safety
}

// NewRegistry crea y devuelve un registry nuevo.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// ====================================
// MÉTODOS DEL REGISTRY
// ====================================

// Register registra un item nuevo en el registry.
// Si ya existe un item con ese nombre, se sobrescribe.
//
// Returns:
//   - isNew: true si es un item nuevo, false si sobrescribió uno existente
//   - err: error si el nombre está vacío
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("el nombre no puede estar vacío: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get devuelve el item registrado bajo name, junto con un booleano de existencia.
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// GetOrCreate devuelve el item con ese nombre; si no existe lo crea con creator.
func (r *Registry[T]) GetOrCreate(name string, creator func() (T, error)) (item T, err error) {
	if name == "" {
		return item, fmt.Errorf("el nombre no puede estar vacío: %w", common.ErrRequiredField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existingItem, exists := r.items[name]; exists {
		return existingItem, nil
	}

	newItem, err := creator()
	if err != nil {
		return item, fmt.Errorf("error al crear el item: %w", err)
	}

	r.items[name] = newItem
	return newItem, nil
}

// Update actualiza un item de forma thread-safe aplicando la función updater.
func (r *Registry[T]) Update(name string, updater func(T) (T, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.items[name]
	if !exists {
		return fmt.Errorf("item no encontrado: %s: %w", name, common.ErrNotFound)
	}

	updated, err := updater(current)
	if err != nil {
		return fmt.Errorf("error al actualizar el item: %w", err)
	}

	r.items[name] = updated
	return nil
}

// Clear elimina un item del registry.
// Si se proporciona cleanup, se invoca antes de eliminar para liberar recursos.
//
// Returns:
//   - deleted: true si el item fue eliminado, false si no existía
//   - err: error ocurrido durante cleanup
func (r *Registry[T]) Clear(name string, cleanup func(T) error) (deleted bool, err error) {
	if name == "" {
		return false, fmt.Errorf("el nombre no puede estar vacío: %w", common.ErrRequiredField)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	item, exists := r.items[name]
	if !exists {
		return false, nil
	}

	if cleanup != nil {
		if err := cleanup(item); err != nil {
			return false, fmt.Errorf("error al liberar el item %s: %w", name, err)
		}
	}

	delete(r.items, name)
	return true, nil
}

// ClearAll elimina todos los items del registry.
// Si se proporciona cleanup, se invoca por cada item antes de eliminarlo.
func (r *Registry[T]) ClearAll(cleanup func(T) error) (count int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count = len(r.items)
	if count == 0 {
		return 0, nil
	}

	if cleanup != nil {
		var errs []error
		for name, item := range r.items {
			if err := cleanup(item); err != nil {
				errs = append(errs, fmt.Errorf("error al liberar %s: %w", name, err))
			}
		}
		if len(errs) > 0 {
			return 0, fmt.Errorf("ocurrieron errores de limpieza: %v", errs)
		}
	}

	r.items = make(map[string]T)
	return count, nil
}
