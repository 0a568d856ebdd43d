package promos

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugshop/internal/kv"
)

func TestListEnabledAndCanonicalCode(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	repo := NewRepository(kv.NewRedis(client))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &Promo{ID: "1", Code: " noel10 ", Type: TypePercent, Value: 10, Enabled: true}))
	require.NoError(t, repo.Save(ctx, &Promo{ID: "2", Code: "OFF", Type: TypeFixed, Value: 5, Enabled: false}))

	enabled, err := repo.ListEnabled(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "NOEL10", enabled[0].Code)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.ErrorIs(t, repo.Delete(ctx, "3"), ErrNotFound)
}
