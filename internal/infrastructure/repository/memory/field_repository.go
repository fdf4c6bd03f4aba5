package memory

import (
	"context"
	"fmt"

	"github.com/tochoprime/league-console/internal/domain/field"
)

type FieldRepository struct {
	store *Store
}

func (r *FieldRepository) List(_ context.Context) ([]field.Field, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.fields.filter(nil, cloneField), nil
}

func (r *FieldRepository) GetByID(_ context.Context, fieldID string) (field.Field, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	item, ok := r.store.fields.get(fieldID)
	return cloneField(item), ok, nil
}

func (r *FieldRepository) Create(_ context.Context, item field.Field) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.fields.insert(item.ID, cloneField(item))
}

func (r *FieldRepository) Update(_ context.Context, item field.Field) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.fields.replace(item.ID, cloneField(item))
}

func (r *FieldRepository) UpdateStatus(_ context.Context, fieldID string, status field.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	item, ok := r.store.fields.get(fieldID)
	if !ok {
		return fmt.Errorf("field %s not found", fieldID)
	}
	item.Status = status
	return r.store.fields.replace(fieldID, item)
}

func (r *FieldRepository) Delete(_ context.Context, fieldID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.store.fields.remove(fieldID)
}
