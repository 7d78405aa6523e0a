package utility

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// String2ObjectID convierte una cadena hex en ObjectID.
// Devuelve NilObjectID si la cadena no es válida.
func String2ObjectID(id string) primitive.ObjectID {
	objectId, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID
	}
	return objectId
}

// ObjectID2String convierte un ObjectID en su representación hex.
func ObjectID2String(id primitive.ObjectID) string {
	return id.Hex()
}

// StringArray2ObjectIDArray convierte un slice de cadenas hex en ObjectIDs.
func StringArray2ObjectIDArray(ids []string) []primitive.ObjectID {
	var objectIDs []primitive.ObjectID
	for _, id := range ids {
		objectIDs = append(objectIDs, String2ObjectID(id))
	}
	return objectIDs
}
