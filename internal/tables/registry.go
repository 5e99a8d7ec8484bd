// Package tables tracks the restaurant's tables and the one the operator is
// currently serving.
package tables

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Axalon174/coffee-shop-manager/internal/domain"
	"github.com/Axalon174/coffee-shop-manager/internal/repository"
)

const NoTableLabel = "No table selected"

var ErrTableNotFound = errors.New("table not found")

type Registry struct {
	store repository.TableRepository

	mu      sync.RWMutex
	tables  []domain.Table
	current *domain.Table
}

func NewRegistry(store repository.TableRepository) *Registry {
	return &Registry{store: store}
}

// Load replaces the known tables with the store's list.
func (r *Registry) Load(ctx context.Context) error {
	list, err := r.store.ListTables(ctx)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}

	r.mu.Lock()
	r.tables = list
	if r.current != nil {
		r.current = r.find(r.current.ID)
	}
	r.mu.Unlock()
	return nil
}

func (r *Registry) Tables() []domain.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Table(nil), r.tables...)
}

func (r *Registry) Available() []domain.Table {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Table
	for _, t := range r.tables {
		if t.Status == domain.TableAvailable {
			out = append(out, t)
		}
	}
	return out
}

func (r *Registry) Current() (domain.Table, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return domain.Table{}, false
	}
	return *r.current, true
}

func (r *Registry) CurrentLabel() string {
	if t, ok := r.Current(); ok && t.Label != "" {
		return t.Label
	}
	return NoTableLabel
}

func (r *Registry) Select(t domain.Table) {
	r.mu.Lock()
	r.current = &t
	r.mu.Unlock()
}

func (r *Registry) SelectByID(id uint64) (domain.Table, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.find(id)
	if t == nil {
		return domain.Table{}, fmt.Errorf("%w: %d", ErrTableNotFound, id)
	}
	r.current = t
	return *t, nil
}

func (r *Registry) Clear() {
	r.mu.Lock()
	r.current = nil
	r.mu.Unlock()
}

// UpdateStatus writes the status through the store and, on success, patches
// the local list and the current selection.
func (r *Registry) UpdateStatus(ctx context.Context, tableID uint64, status domain.TableStatus) error {
	if err := r.store.UpdateTableStatus(ctx, tableID, status); err != nil {
		return fmt.Errorf("update table %d status: %w", tableID, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.tables {
		if r.tables[i].ID == tableID {
			r.tables[i].Status = status
		}
	}
	if r.current != nil && r.current.ID == tableID {
		r.current.Status = status
	}
	return nil
}

// find returns a copy of the table with id. Caller holds the lock.
func (r *Registry) find(id uint64) *domain.Table {
	for _, t := range r.tables {
		if t.ID == id {
			t := t
			return &t
		}
	}
	return nil
}
