package resource

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Entity is the minimal surface every managed record exposes: an immutable
// storage-assigned identifier and a soft-removal flag.
type Entity interface {
	EntityID() uuid.UUID
	MarkRemoved()
	IsRemoved() bool
}

// Repository is the persistence capability a Manager depends on. Any storage
// backend implementing these five operations can back a resource.
type Repository[T any] interface {
	Insert(ctx context.Context, entity *T) error
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	FindAll(ctx context.Context) ([]T, error)
	Save(ctx context.Context, entity *T) error
	DeleteAll(ctx context.Context) error
}

// GormRepository implements Repository on a GORM connection
type GormRepository[T any] struct {
	db *gorm.DB
}

// NewGormRepository creates a GORM-backed repository for T
func NewGormRepository[T any](db *gorm.DB) *GormRepository[T] {
	return &GormRepository[T]{db: db}
}

// Insert persists a new entity
func (r *GormRepository[T]) Insert(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Create(entity).Error
}

// FindByID looks up a single entity by identifier. Soft-removed records are
// still resolvable here; filtering is the Manager's concern.
func (r *GormRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// FindAll returns every stored entity in storage default order
func (r *GormRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// Save persists changes to an existing entity
func (r *GormRepository[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// DeleteAll physically deletes the whole collection
func (r *GormRepository[T]) DeleteAll(ctx context.Context) error {
	var entity T
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entity).Error
}
