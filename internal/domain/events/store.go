package events

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"plugshop/internal/kv"
)

type Store interface {
	List(ctx context.Context) ([]Theme, error)
	Get(ctx context.Context, id string) (*Theme, error)
	Save(ctx context.Context, t *Theme) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	themes *kv.Collection[Theme]
}

func NewRepository(s kv.Store) Store {
	return &Repository{themes: kv.NewCollection[Theme](s, kv.PrefixEventTheme)}
}

// List returns themes ordered by descending priority, then id.
func (r *Repository) List(ctx context.Context) ([]Theme, error) {
	themes, err := r.themes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event themes: %w", err)
	}
	sort.SliceStable(themes, func(i, j int) bool {
		if themes[i].Priority != themes[j].Priority {
			return themes[i].Priority > themes[j].Priority
		}
		return themes[i].ID < themes[j].ID
	})
	return themes, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Theme, error) {
	t, err := r.themes.Get(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrNotFound
	}
	return t, err
}

func (r *Repository) Save(ctx context.Context, t *Theme) error {
	return r.themes.Put(ctx, t.ID, t)
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	err := r.themes.Remove(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
