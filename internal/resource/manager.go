package resource

import (
	"context"
	"fmt"

	"github.com/clinova/odonto-api/internal/events"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager mediates between the request boundary and a Repository for one
// entity type. T is the entity struct, PT its pointer type implementing
// Entity.
//
// Removal is soft: Remove marks the record and keeps it stored; only
// PurgeAll physically deletes. A soft-removed record stays resolvable by id
// but is hidden from default listings. There is no transition back from
// removed to active.
type Manager[T any, PT interface {
	*T
	Entity
}] struct {
	name   string
	repo   Repository[T]
	pub    events.Publisher
	logger *zap.Logger
}

// NewManager creates a Manager for the named entity. The name is used in
// client-facing messages and log context.
func NewManager[T any, PT interface {
	*T
	Entity
}](name string, repo Repository[T], pub events.Publisher, logger *zap.Logger) *Manager[T, PT] {
	return &Manager[T, PT]{
		name:   name,
		repo:   repo,
		pub:    pub,
		logger: logger,
	}
}

// Name returns the entity name the manager was built for
func (m *Manager[T, PT]) Name() string { return m.name }

// Create persists a new entity and returns it with its assigned identifier.
// Uniqueness beyond what the storage layer enforces is not checked here.
func (m *Manager[T, PT]) Create(ctx context.Context, entity *T) (*T, error) {
	if err := m.repo.Insert(ctx, entity); err != nil {
		return nil, translateError(m.logger, "create", m.name, err)
	}
	m.emit(ctx, events.ActionCreated, PT(entity).EntityID().String())
	return entity, nil
}

// List returns every stored entity. An empty collection is a valid state and
// yields an empty slice, never an error. Soft-removed records are excluded
// unless includeRemoved is set.
func (m *Manager[T, PT]) List(ctx context.Context, includeRemoved bool) ([]T, error) {
	all, err := m.repo.FindAll(ctx)
	if err != nil {
		return nil, translateError(m.logger, "list", m.name, err)
	}
	if includeRemoved {
		return all, nil
	}
	active := make([]T, 0, len(all))
	for i := range all {
		if !PT(&all[i]).IsRemoved() {
			active = append(active, all[i])
		}
	}
	return active, nil
}

// Get looks up a single entity by identifier, removed or not. NotFound when
// no entity with that identifier exists.
func (m *Manager[T, PT]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	entity, err := m.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateError(m.logger, "get", m.name, err)
	}
	return entity, nil
}

// Update loads the entity, lets apply merge the partial input onto it and
// persists the result. Attributes the caller did not supply are preserved by
// the apply callback leaving them untouched.
func (m *Manager[T, PT]) Update(ctx context.Context, id uuid.UUID, apply func(PT)) (*T, error) {
	entity, err := m.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	apply(PT(entity))
	if err := m.repo.Save(ctx, entity); err != nil {
		return nil, translateError(m.logger, "update", m.name, err)
	}
	m.emit(ctx, events.ActionUpdated, id.String())
	return entity, nil
}

// Remove soft-deletes the entity: the removed flag is set and the record
// stays stored. Returns a confirmation message.
func (m *Manager[T, PT]) Remove(ctx context.Context, id uuid.UUID) (string, error) {
	entity, err := m.Get(ctx, id)
	if err != nil {
		return "", err
	}
	PT(entity).MarkRemoved()
	if err := m.repo.Save(ctx, entity); err != nil {
		return "", translateError(m.logger, "remove", m.name, err)
	}
	m.emit(ctx, events.ActionRemoved, id.String())
	return fmt.Sprintf("El registro de %s con id %s ha sido eliminado", m.name, id), nil
}

// PurgeAll unconditionally deletes the whole collection. Destructive and
// irreversible; the route layer restricts it to admins.
func (m *Manager[T, PT]) PurgeAll(ctx context.Context) (string, error) {
	if err := m.repo.DeleteAll(ctx); err != nil {
		return "", translateError(m.logger, "purge", m.name, err)
	}
	m.emit(ctx, events.ActionPurged, "")
	return fmt.Sprintf("Todos los registros de %s han sido eliminados", m.name), nil
}

// emit publishes a lifecycle event. Publishing is best effort and never fails
// the request.
func (m *Manager[T, PT]) emit(ctx context.Context, action, id string) {
	evt := events.Event{Entity: m.name, Action: action, EntityID: id}
	if err := m.pub.Publish(ctx, evt); err != nil {
		m.logger.Warn("failed to publish lifecycle event",
			zap.String("entity", m.name),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
