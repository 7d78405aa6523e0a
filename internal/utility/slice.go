package utility

import "strconv"

// Contains verifica si un slice de strings contiene un valor dado
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// P2Int64 convierte una cadena en int64, devuelve 0 si no es válida
func P2Int64(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
