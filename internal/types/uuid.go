package types

import (
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateRequestID returns a random correlation identifier for one request
func GenerateRequestID() string {
	return uuid.New().String()
}
