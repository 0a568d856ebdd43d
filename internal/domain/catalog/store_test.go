package catalog

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugshop/internal/kv"
)

func newTestRepo(t *testing.T) Store {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRepository(kv.NewRedis(client))
}

func TestProductRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &Product{ID: "p1", Name: "Lemon Haze", Category: "c1", Farm: "f1",
		Variants: []ProductVariant{{Name: "1g", Grammage: 1, Unit: "g", Price: 10}}}
	require.NoError(t, repo.SaveProduct(ctx, p))

	got, err := repo.GetProduct(ctx, "p1")
	require.NoError(t, err)
	v, ok := got.Variant("1g")
	require.True(t, ok)
	assert.Equal(t, 10.0, v.Price)

	require.NoError(t, repo.DeleteProduct(ctx, "p1"))
	_, err = repo.GetProduct(ctx, "p1")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, repo.DeleteProduct(ctx, "p1"), ErrProductNotFound)
}

func TestListFarmsOnlyEnabled(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveFarm(ctx, &Farm{ID: "f1", Name: "On", Enabled: true}))
	require.NoError(t, repo.SaveFarm(ctx, &Farm{ID: "f2", Name: "Off", Enabled: false}))

	all, err := repo.ListFarms(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	enabled, err := repo.ListFarms(ctx, true)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "f1", enabled[0].ID)
}

func TestThumbnailFallback(t *testing.T) {
	assert.Equal(t, "img", (&Product{Image: "img", Photo: "ph"}).Thumbnail())
	assert.Equal(t, "ph", (&Product{Photo: "ph"}).Thumbnail())
	assert.Equal(t, "m", (&Product{Medias: []string{"m"}}).Thumbnail())
	assert.Equal(t, "", (&Product{}).Thumbnail())
}
