package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ledgerline/invoice-service/internal/domain/invoice"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[int64, *invoice.Invoice]

	mu      sync.Mutex
	nextID  int64
	now     func() time.Time
	failure error
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[int64, *invoice.Invoice](),
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// SetClock replaces the source of creation timestamps
func (s *InMemoryInvoiceStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// FailWith makes every following call return err until it is called with nil
func (s *InMemoryInvoiceStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = err
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failure != nil {
		return s.failure
	}

	s.nextID++
	now := s.now()
	inv.ID = s.nextID
	inv.CreatedAt = now
	inv.UpdatedAt = now

	return s.InMemoryStore.Create(ctx, inv.ID, copyInvoice(inv))
}

func (s *InMemoryInvoiceStore) List(ctx context.Context) ([]*invoice.Invoice, error) {
	s.mu.Lock()
	failure := s.failure
	s.mu.Unlock()

	if failure != nil {
		return nil, failure
	}

	items, err := s.InMemoryStore.List(ctx, newestFirst)
	if err != nil {
		return nil, err
	}

	result := make([]*invoice.Invoice, len(items))
	for i, item := range items {
		result[i] = copyInvoice(item)
	}
	return result, nil
}

func newestFirst(a, b *invoice.Invoice) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	c := *inv
	return &c
}
