package invoice

import (
	"context"
)

// Repository defines the interface for invoice persistence operations
type Repository interface {
	// Create inserts the invoice and populates its id and timestamps
	Create(ctx context.Context, invoice *Invoice) error

	// List retrieves every invoice, newest first
	List(ctx context.Context) ([]*Invoice, error)
}
