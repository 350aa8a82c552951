package pais

import (
	"context"
	"sort"
	"sync"
)

// DrawRepository is the persistent store collaborator. Implementations own
// record validation at the boundary; the engine only reads ordered history.
type DrawRepository interface {
	// FetchAll returns the full draw history ascending by draw number
	FetchAll(ctx context.Context) ([]DrawRecord, error)

	// Append stores a new record. It fails with ErrDuplicateDraw if the
	// draw number already exists and ErrValidation if the record violates
	// the domain invariants.
	Append(ctx context.Context, record DrawRecord) error
}

// InMemoryDrawRepository is a process-local DrawRepository, used by examples
// and deterministic tests
type InMemoryDrawRepository struct {
	mu      sync.RWMutex
	records map[int]DrawRecord
}

// NewInMemoryDrawRepository creates an empty in-memory repository
func NewInMemoryDrawRepository() *InMemoryDrawRepository {
	return &InMemoryDrawRepository{records: make(map[int]DrawRecord)}
}

// FetchAll returns all records ascending by draw number
func (r *InMemoryDrawRepository) FetchAll(ctx context.Context) ([]DrawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]DrawRecord, 0, len(r.records))
	for _, record := range r.records {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].DrawNumber < records[j].DrawNumber
	})
	return records, nil
}

// Append stores a new record after validation
func (r *InMemoryDrawRepository) Append(ctx context.Context, record DrawRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := record.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[record.DrawNumber]; exists {
		return ErrDuplicateDraw.WithMetadata("draw_number", record.DrawNumber)
	}

	// Copy the slice so the stored record stays immutable
	stored := record
	stored.MainNumbers = append([]int(nil), record.MainNumbers...)
	r.records[record.DrawNumber] = stored
	return nil
}

// Len returns the number of stored records
func (r *InMemoryDrawRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
