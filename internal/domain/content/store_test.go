package content

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plugshop/internal/kv"
)

func newTestRepo(t *testing.T) (Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRepository(kv.NewRedis(client)), mr
}

func TestShopSettingsDefaults(t *testing.T) {
	repo, _ := newTestRepo(t)

	s, err := repo.ShopSettings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultShopName, s.ShopName)
	assert.NotNil(t, s.Sections)
}

func TestUpdateSettingsPerKey(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	name := "My Shop"
	require.NoError(t, repo.UpdateSettings(ctx, SettingsUpdate{
		ShopName: &name,
		Sections: []HomeSection{{Icon: "🌿", Title: "Qualité", Content: "..."}},
	}))

	assert.True(t, mr.Exists("settings:shopName"))
	assert.False(t, mr.Exists("settings:heroTitle"))

	s, err := repo.ShopSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "My Shop", s.ShopName)
	require.Len(t, s.Sections, 1)
	assert.Equal(t, "Qualité", s.Sections[0].Title)

	raw, err := repo.Setting(ctx, SettingShopName)
	require.NoError(t, err)
	assert.JSONEq(t, `"My Shop"`, string(raw))
}

func TestSettingMissingIsNil(t *testing.T) {
	repo, _ := newTestRepo(t)
	raw, err := repo.Setting(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Nil(t, raw)
}

func TestColorThemeMergedOverDefaults(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpdateSettings(ctx, SettingsUpdate{
		ColorTheme: &ColorTheme{AccentColor: "#ff00ff"},
	}))

	raw, err := repo.Setting(ctx, SettingColorTheme)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"accentColor":"#ff00ff"`)
	assert.Contains(t, string(raw), `"borderColor":"#e5e5e5"`)
}

func TestReviewCRUD(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveReview(ctx, &Review{ID: "r1", CustomerName: "Léa", Rating: 5, Comment: "top"}))
	list, err := repo.ListReviews(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, repo.DeleteReview(ctx, "r1"))
	assert.ErrorIs(t, repo.DeleteReview(ctx, "r1"), ErrReviewNotFound)
	_, err = repo.GetSocial(ctx, "nope")
	assert.ErrorIs(t, err, ErrSocialNotFound)
}
