package promos

import (
	"context"
	"errors"
	"fmt"

	"plugshop/internal/kv"
)

type Store interface {
	List(ctx context.Context) ([]Promo, error)
	ListEnabled(ctx context.Context) ([]Promo, error)
	Get(ctx context.Context, id string) (*Promo, error)
	Save(ctx context.Context, p *Promo) error
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	promos *kv.Collection[Promo]
}

func NewRepository(s kv.Store) Store {
	return &Repository{promos: kv.NewCollection[Promo](s, kv.PrefixPromo)}
}

func (r *Repository) List(ctx context.Context) ([]Promo, error) {
	return r.promos.List(ctx)
}

// ListEnabled backs the public endpoint the storefront validates codes against.
func (r *Repository) ListEnabled(ctx context.Context) ([]Promo, error) {
	all, err := r.promos.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Promo, 0, len(all))
	for _, p := range all {
		if p.Enabled {
			out = append(out, p.Public())
		}
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, id string) (*Promo, error) {
	p, err := r.promos.Get(ctx, id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get promo: %w", err)
	}
	return p, nil
}

// Save canonicalises the code before writing.
func (r *Repository) Save(ctx context.Context, p *Promo) error {
	p.Code = CanonicalCode(p.Code)
	if err := r.promos.Put(ctx, p.ID, p); err != nil {
		return fmt.Errorf("save promo: %w", err)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.promos.Remove(ctx, id); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
