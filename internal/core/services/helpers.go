package services

import "github.com/google/uuid"

// isUUID reports whether id can reference a stored row. Other ids never match.
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
