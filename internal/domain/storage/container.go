package storage

import (
	"context"

	"plugshop/internal/domain/cartsettings"
	"plugshop/internal/domain/catalog"
	"plugshop/internal/domain/content"
	"plugshop/internal/domain/events"
	"plugshop/internal/domain/promos"
	"plugshop/internal/domain/users"
	"plugshop/internal/kv"
)

type Container struct {
	kv           kv.Store
	Catalog      catalog.Store
	Promos       promos.Store
	Content      content.Store
	Events       events.Store
	CartSettings cartsettings.Store
	Users        users.Store
}

func NewContainer(s kv.Store) *Container {
	return &Container{
		kv:           s,
		Catalog:      catalog.NewRepository(s),
		Promos:       promos.NewRepository(s),
		Content:      content.NewRepository(s),
		Events:       events.NewRepository(s),
		CartSettings: cartsettings.NewRepository(s),
		Users:        users.NewRepository(s),
	}
}

// Ping checks the backing store is reachable.
func (c *Container) Ping(ctx context.Context) error {
	return c.kv.Ping(ctx)
}

// Purge deletes every key under the given prefixes. Used by the seed tool.
func (c *Container) Purge(ctx context.Context, prefixes ...string) (int, error) {
	n := 0
	for _, p := range prefixes {
		keys, err := c.kv.Keys(ctx, p)
		if err != nil {
			return n, err
		}
		if err := c.kv.Del(ctx, keys...); err != nil {
			return n, err
		}
		n += len(keys)
	}
	return n, nil
}
