package main

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"plugshop/internal/domain/storage"
	"plugshop/internal/kv"
)

func newTestContainer(t *testing.T) *storage.Container {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return storage.NewContainer(kv.NewRedis(client))
}

func TestDefaultFixtureApplies(t *testing.T) {
	ctx := context.Background()
	store := newTestContainer(t)

	f, err := parseFixture(defaultFixture)
	require.NoError(t, err)

	counts, err := apply(ctx, store, f, zap.NewNop().Sugar())
	require.NoError(t, err)
	assert.Equal(t, 3, counts["products"])
	assert.Equal(t, 1, counts["admins"])

	p, err := store.Catalog.GetProduct(ctx, "lemon-haze")
	require.NoError(t, err)
	v, ok := p.Variant("5g")
	require.True(t, ok)
	assert.Equal(t, 45.0, v.Price)

	enabled, err := store.Promos.ListEnabled(ctx)
	require.NoError(t, err)
	assert.Len(t, enabled, 2)

	welcome, err := store.Promos.Get(ctx, "welcome")
	require.NoError(t, err)
	assert.Equal(t, "WELCOME10", welcome.Code)

	xmas, err := store.Events.Get(ctx, "christmas")
	require.NoError(t, err)
	assert.True(t, xmas.ActiveAt(time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)))

	cs, err := store.CartSettings.Get(ctx)
	require.NoError(t, err)
	meetup, ok := cs.Service("meetup")
	require.True(t, ok)
	assert.False(t, meetup.NeedsAddress())
	delivery, ok := cs.Service("delivery")
	require.True(t, ok)
	assert.True(t, delivery.NeedsAddress())

	admin, err := store.Users.GetByEmail(ctx, "admin@plugshop.local")
	require.NoError(t, err)
	assert.NoError(t, admin.Password.Compare("change-me-now"))
}

func TestApplyTwiceKeepsExistingAdmin(t *testing.T) {
	ctx := context.Background()
	store := newTestContainer(t)
	f, err := parseFixture(defaultFixture)
	require.NoError(t, err)

	_, err = apply(ctx, store, f, zap.NewNop().Sugar())
	require.NoError(t, err)
	_, err = apply(ctx, store, f, zap.NewNop().Sugar())
	require.NoError(t, err)

	admins, err := store.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestPurgeKeepsAdmins(t *testing.T) {
	ctx := context.Background()
	store := newTestContainer(t)
	f, err := parseFixture(defaultFixture)
	require.NoError(t, err)
	_, err = apply(ctx, store, f, zap.NewNop().Sugar())
	require.NoError(t, err)

	n, err := store.Purge(ctx, purgePrefixes...)
	require.NoError(t, err)
	assert.Greater(t, n, 0)

	products, err := store.Catalog.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)

	admins, err := store.Users.List(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestEventWindowChecked(t *testing.T) {
	f, err := parseFixture([]byte(`
events:
  - name: backwards
    enabled: true
    startDate: "2026-12-31T00:00:00Z"
    endDate: "2026-12-01T00:00:00Z"
`))
	require.NoError(t, err)

	_, err = apply(context.Background(), newTestContainer(t), f, zap.NewNop().Sugar())
	assert.ErrorContains(t, err, "ends before it starts")
}

func TestInvalidRoleRejected(t *testing.T) {
	f, err := parseFixture([]byte(`
admins:
  - email: x@y.z
    password: secret123
    role: owner
`))
	require.NoError(t, err)

	_, err = apply(context.Background(), newTestContainer(t), f, zap.NewNop().Sugar())
	assert.ErrorContains(t, err, "invalid role")
}
