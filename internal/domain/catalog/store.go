package catalog

import (
	"context"
	"errors"
	"fmt"

	"plugshop/internal/kv"
)

// Store is the data access abstraction for products, categories and farms.
type Store interface {
	// Products
	ListProducts(ctx context.Context) ([]Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	SaveProduct(ctx context.Context, p *Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Categories
	ListCategories(ctx context.Context) ([]Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	SaveCategory(ctx context.Context, c *Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Farms
	ListFarms(ctx context.Context, onlyEnabled bool) ([]Farm, error)
	GetFarm(ctx context.Context, id string) (*Farm, error)
	SaveFarm(ctx context.Context, f *Farm) error
	DeleteFarm(ctx context.Context, id string) error
}

type Repository struct {
	products   *kv.Collection[Product]
	categories *kv.Collection[Category]
	farms      *kv.Collection[Farm]
}

func NewRepository(s kv.Store) Store {
	return &Repository{
		products:   kv.NewCollection[Product](s, kv.PrefixProduct),
		categories: kv.NewCollection[Category](s, kv.PrefixCategory),
		farms:      kv.NewCollection[Farm](s, kv.PrefixFarm),
	}
}

// ------------------------------------
// Products
// ------------------------------------
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	return r.products.List(ctx)
}

func (r *Repository) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := r.products.Get(ctx, id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *Repository) SaveProduct(ctx context.Context, p *Product) error {
	if err := r.products.Put(ctx, p.ID, p); err != nil {
		return fmt.Errorf("save product: %w", err)
	}
	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	return deleteExisting(ctx, r.products, id, ErrProductNotFound)
}

// ------------------------------------
// Categories
// ------------------------------------
func (r *Repository) ListCategories(ctx context.Context) ([]Category, error) {
	return r.categories.List(ctx)
}

func (r *Repository) GetCategory(ctx context.Context, id string) (*Category, error) {
	c, err := r.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *Repository) SaveCategory(ctx context.Context, c *Category) error {
	if err := r.categories.Put(ctx, c.ID, c); err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	return deleteExisting(ctx, r.categories, id, ErrCategoryNotFound)
}

// ------------------------------------
// Farms
// ------------------------------------

// ListFarms returns all farms; the public listing passes onlyEnabled.
func (r *Repository) ListFarms(ctx context.Context, onlyEnabled bool) ([]Farm, error) {
	farms, err := r.farms.List(ctx)
	if err != nil {
		return nil, err
	}
	if !onlyEnabled {
		return farms, nil
	}
	out := farms[:0]
	for _, f := range farms {
		if f.Enabled {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *Repository) GetFarm(ctx context.Context, id string) (*Farm, error) {
	f, err := r.farms.Get(ctx, id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrFarmNotFound
		}
		return nil, fmt.Errorf("get farm: %w", err)
	}
	return f, nil
}

func (r *Repository) SaveFarm(ctx context.Context, f *Farm) error {
	if err := r.farms.Put(ctx, f.ID, f); err != nil {
		return fmt.Errorf("save farm: %w", err)
	}
	return nil
}

func (r *Repository) DeleteFarm(ctx context.Context, id string) error {
	return deleteExisting(ctx, r.farms, id, ErrFarmNotFound)
}

func deleteExisting[T any](ctx context.Context, c *kv.Collection[T], id string, notFound error) error {
	err := c.Remove(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return notFound
	}
	return err
}
