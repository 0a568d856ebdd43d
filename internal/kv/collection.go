package kv

import (
	"context"
	"errors"
	"fmt"
)

// Collection is a set of JSON records of one type sharing a key prefix,
// e.g. "product:<id>".
type Collection[T any] struct {
	store  Store
	prefix string
}

func NewCollection[T any](store Store, prefix string) *Collection[T] {
	return &Collection[T]{store: store, prefix: prefix}
}

func (c *Collection[T]) Key(id string) string {
	return c.prefix + id
}

// List returns every record under the prefix. Entries that disappear between
// the scan and the read, or fail to decode, are skipped.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	keys, err := c.store.Keys(ctx, c.prefix)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", c.prefix, err)
	}

	out := make([]T, 0, len(keys))
	for _, key := range keys {
		var v T
		if err := GetJSON(ctx, c.store, key, &v); err != nil {
			if errors.Is(err, ErrNotFound) {
				continue
			}
			var decodeErr *DecodeError
			if errors.As(err, &decodeErr) {
				continue
			}
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (*T, error) {
	var v T
	if err := GetJSON(ctx, c.store, c.Key(id), &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *Collection[T]) Put(ctx context.Context, id string, v *T) error {
	return SetJSON(ctx, c.store, c.Key(id), v)
}

func (c *Collection[T]) Exists(ctx context.Context, id string) (bool, error) {
	return c.store.Exists(ctx, c.Key(id))
}

func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.store.Del(ctx, c.Key(id))
}

// Remove deletes the record, reporting ErrNotFound when it was never there.
func (c *Collection[T]) Remove(ctx context.Context, id string) error {
	ok, err := c.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	return c.Delete(ctx, id)
}
