package cartsettings

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

func TestGetReturnsDefaults(t *testing.T) {
	repo := newTestRepo(t)

	s, err := repo.Get(context.Background())
	require.NoError(t, err)
	assert.True(t, s.PromoEnabled)
	assert.Empty(t, s.Services)
	assert.Equal(t, "#ff0000", s.ButtonColors.ClearCart)
	assert.Equal(t, "#cccccc", s.ButtonColors.UnselectedSlot)
}

func TestUpdateKeepsUnspecifiedLists(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, Update{
		Services: []Service{{Name: "delivery", Label: "Livraison", Fee: 10, Enabled: true,
			TimeSlots: []TimeSlot{{Label: "18h-20h", Value: "18-20"}}}},
		PaymentMethods: []PaymentMethod{{Label: "Espèces", Enabled: true}},
	})
	require.NoError(t, err)

	off := false
	updated, err := repo.Update(ctx, Update{PromoEnabled: &off})
	require.NoError(t, err)

	assert.False(t, updated.PromoEnabled)
	require.Len(t, updated.Services, 1)
	assert.NotEmpty(t, updated.Services[0].ID)
	require.Len(t, updated.PaymentMethods, 1)
	assert.NotEmpty(t, updated.PaymentMethods[0].ID)

	stored, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, updated.Services[0].ID, stored.Services[0].ID)
}

func TestUpdateReplacesProvidedList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Update(ctx, Update{Services: []Service{
		{ID: "a", Name: "a", Label: "A", Enabled: true},
		{ID: "b", Name: "b", Label: "B", Enabled: false},
	}})
	require.NoError(t, err)

	enabled, err := repo.EnabledServices(ctx)
	require.NoError(t, err)
	require.Len(t, enabled, 1)
	assert.Equal(t, "a", enabled[0].ID)

	s, err := repo.Update(ctx, Update{Services: []Service{}})
	require.NoError(t, err)
	assert.Empty(t, s.Services)
}

func TestServiceNeedsAddress(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		name string
		flag *bool
		want bool
	}{
		{"absent", nil, true},
		{"true", &yes, true},
		{"false", &no, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Service{RequiresAddress: tt.flag}.NeedsAddress())
		})
	}
}
