package common

import (
	"github.com/google/uuid"
)

// GenerateUUID returns a fresh request identifier.
func GenerateUUID() string {
	return uuid.New().String()
}
