package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/candell/typed-content/pkg/typedcontent/annotation"
)

// Repository implements annotation.Repository using in-memory storage
type Repository struct {
	mu           sync.RWMutex
	records      map[uuid.UUID]*annotation.Record
	byIdentifier map[string][]uuid.UUID // identifier -> record IDs in save order
}

// New creates a new in-memory annotation repository
func New() annotation.Repository {
	return &Repository{
		records:      make(map[uuid.UUID]*annotation.Record),
		byIdentifier: make(map[string][]uuid.UUID),
	}
}

func (r *Repository) Save(ctx context.Context, record *annotation.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.ID]; exists {
		return fmt.Errorf("annotation %s already exists", record.ID)
	}
	if record.ParentID != nil {
		if _, exists := r.records[*record.ParentID]; !exists {
			return fmt.Errorf("parent annotation %s: %w", record.ParentID, annotation.ErrRecordNotFound)
		}
	}

	// Store a copy to avoid external modifications
	recordCopy := *record
	r.records[record.ID] = &recordCopy
	r.byIdentifier[record.Identifier] = append(r.byIdentifier[record.Identifier], record.ID)

	return nil
}

func (r *Repository) Get(ctx context.Context, id uuid.UUID) (*annotation.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[id]
	if !exists {
		return nil, annotation.ErrRecordNotFound
	}

	// Return a copy to prevent external modifications
	recordCopy := *record
	return &recordCopy, nil
}

func (r *Repository) ListByIdentifier(ctx context.Context, identifier string) ([]*annotation.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byIdentifier[identifier]
	result := make([]*annotation.Record, 0, len(ids))
	for _, id := range ids {
		recordCopy := *r.records[id]
		result = append(result, &recordCopy)
	}

	return result, nil
}
