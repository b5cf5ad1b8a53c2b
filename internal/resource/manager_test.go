package resource_test

import (
	"context"
	"testing"

	apierrors "github.com/clinova/odonto-api/common/errors"
	"github.com/clinova/odonto-api/internal/events"
	"github.com/clinova/odonto-api/internal/resource"
	"github.com/clinova/odonto-api/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type capturePublisher struct {
	events []events.Event
}

func (p *capturePublisher) Publish(ctx context.Context, evt events.Event) error {
	p.events = append(p.events, evt)
	return nil
}

func (p *capturePublisher) Close() error { return nil }

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Dentist{}))
	return db
}

func newManager(t *testing.T, pub events.Publisher) *resource.Manager[models.Dentist, *models.Dentist] {
	db := setupTestDB(t)
	repo := resource.NewGormRepository[models.Dentist](db)
	return resource.NewManager[models.Dentist, *models.Dentist]("dentista", repo, pub, zap.NewNop())
}

func TestCreateAssignsFreshIdentifier(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())
	ctx := context.Background()

	first, err := mgr.Create(ctx, &models.Dentist{FirstName: "Ana", LastName: "Gómez", License: "LIC-001"})
	require.NoError(t, err)
	second, err := mgr.Create(ctx, &models.Dentist{FirstName: "Luis", LastName: "Pérez", License: "LIC-002"})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.NotEqual(t, uuid.Nil, second.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, "Ana", first.FirstName)
	assert.Equal(t, "LIC-001", first.License)
	assert.False(t, first.Removed)
}

func TestGetAfterCreate(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())
	ctx := context.Background()

	created, err := mgr.Create(ctx, &models.Dentist{FirstName: "Ana", LastName: "Gómez", License: "LIC-001", Specialty: "ortodoncia"})
	require.NoError(t, err)

	got, err := mgr.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.FirstName, got.FirstName)
	assert.Equal(t, created.LastName, got.LastName)
	assert.Equal(t, created.License, got.License)
	assert.Equal(t, created.Specialty, got.Specialty)
}

func TestGetUnknownIsNotFound(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())

	got, err := mgr.Get(context.Background(), uuid.New())
	assert.Nil(t, got)
	assert.True(t, apierrors.IsNotFound(err))
}

func TestListEmptyCollectionIsSuccess(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())

	all, err := mgr.List(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestListExcludesRemovedByDefault(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())
	ctx := context.Background()

	kept, err := mgr.Create(ctx, &models.Dentist{FirstName: "Ana", LastName: "Gómez", License: "LIC-001"})
	require.NoError(t, err)
	gone, err := mgr.Create(ctx, &models.Dentist{FirstName: "Luis", LastName: "Pérez", License: "LIC-002"})
	require.NoError(t, err)

	_, err = mgr.Remove(ctx, gone.ID)
	require.NoError(t, err)

	active, err := mgr.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, kept.ID, active[0].ID)

	everything, err := mgr.List(ctx, true)
	require.NoError(t, err)
	assert.Len(t, everything, 2)
}

func TestUpdatePreservesUnsetAttributes(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())
	ctx := context.Background()

	created, err := mgr.Create(ctx, &models.Dentist{FirstName: "Ana", LastName: "Gómez", License: "LIC-001", Specialty: "ortodoncia"})
	require.NoError(t, err)

	updated, err := mgr.Update(ctx, created.ID, func(d *models.Dentist) {
		d.FirstName = "Anabel"
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Anabel", updated.FirstName)
	assert.Equal(t, "Gómez", updated.LastName)
	assert.Equal(t, "LIC-001", updated.License)
	assert.Equal(t, "ortodoncia", updated.Specialty)
}

func TestUpdateUnknownIsNotFound(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())

	_, err := mgr.Update(context.Background(), uuid.New(), func(d *models.Dentist) {})
	assert.True(t, apierrors.IsNotFound(err))
}

func TestRemoveIsSoft(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())
	ctx := context.Background()

	created, err := mgr.Create(ctx, &models.Dentist{FirstName: "Ana", LastName: "Gómez", License: "LIC-001"})
	require.NoError(t, err)

	msg, err := mgr.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "eliminado")

	// The record stays stored and resolvable by id
	got, err := mgr.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Removed)
}

func TestRemoveUnknownIsNotFound(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())

	_, err := mgr.Remove(context.Background(), uuid.New())
	assert.True(t, apierrors.IsNotFound(err))
}

func TestPurgeAllClearsCollection(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())
	ctx := context.Background()

	_, err := mgr.Create(ctx, &models.Dentist{FirstName: "Ana", LastName: "Gómez", License: "LIC-001"})
	require.NoError(t, err)
	_, err = mgr.Create(ctx, &models.Dentist{FirstName: "Luis", LastName: "Pérez", License: "LIC-002"})
	require.NoError(t, err)

	msg, err := mgr.PurgeAll(ctx)
	require.NoError(t, err)
	assert.Contains(t, msg, "eliminados")

	all, err := mgr.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDuplicateLicenseIsConflict(t *testing.T) {
	mgr := newManager(t, events.NewNopPublisher())
	ctx := context.Background()

	_, err := mgr.Create(ctx, &models.Dentist{FirstName: "Ana", LastName: "Gómez", License: "LIC-001"})
	require.NoError(t, err)

	_, err = mgr.Create(ctx, &models.Dentist{FirstName: "Luis", LastName: "Pérez", License: "LIC-001"})
	assert.True(t, apierrors.IsConflict(err))
}

func TestLifecycleScenario(t *testing.T) {
	pub := &capturePublisher{}
	mgr := newManager(t, pub)
	ctx := context.Background()

	created, err := mgr.Create(ctx, &models.Dentist{FirstName: "Ana", LastName: "Gómez", License: "LIC-001"})
	require.NoError(t, err)

	updated, err := mgr.Update(ctx, created.ID, func(d *models.Dentist) {
		d.FirstName = "Beatriz"
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Beatriz", updated.FirstName)

	msg, err := mgr.Remove(ctx, created.ID)
	require.NoError(t, err)
	assert.Contains(t, msg, "eliminado")

	got, err := mgr.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.Removed)

	_, err = mgr.PurgeAll(ctx)
	require.NoError(t, err)

	all, err := mgr.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, all)

	var actions []string
	for _, evt := range pub.events {
		assert.Equal(t, "dentista", evt.Entity)
		actions = append(actions, evt.Action)
	}
	assert.Equal(t, []string{
		events.ActionCreated,
		events.ActionUpdated,
		events.ActionRemoved,
		events.ActionPurged,
	}, actions)
}
