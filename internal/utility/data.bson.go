package utility

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// ToMap convierte un struct (o cualquier valor serializable en BSON) en un map.
// Se usa para agregar campos (timestamps, owner) antes de insertar en MongoDB.
func ToMap(s interface{}) (map[string]interface{}, error) {
	var stringInterfaceMap map[string]interface{}
	raw, err := bson.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("falló bson.Marshal: %w", err)
	}
	err = bson.Unmarshal(raw, &stringInterfaceMap)
	if err != nil {
		return nil, fmt.Errorf("falló bson.Unmarshal: %w", err)
	}
	return stringInterfaceMap, nil
}
