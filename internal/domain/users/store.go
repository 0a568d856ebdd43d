package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"plugshop/internal/kv"
)

type Store interface {
	List(ctx context.Context) ([]AdminUser, error)
	GetByID(ctx context.Context, id string) (*AdminUser, error)
	// GetByEmail also loads the password hash so the caller can Compare.
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
	Create(ctx context.Context, user *AdminUser) error
	Update(ctx context.Context, user *AdminUser) error
	Delete(ctx context.Context, id string) error
}

// Repository keeps the user record and its password hash under separate keys
// so listing users never touches a hash.
type Repository struct {
	kv    kv.Store
	users *kv.Collection[AdminUser]
	now   func() time.Time
}

func NewRepository(s kv.Store) Store {
	return &Repository{
		kv:    s,
		users: kv.NewCollection[AdminUser](s, kv.PrefixAdminUser),
		now:   time.Now,
	}
}

func (r *Repository) List(ctx context.Context) ([]AdminUser, error) {
	list, err := r.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	return list, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*AdminUser, error) {
	u, err := r.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	u, err := r.findByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}

	var hash string
	if err := kv.GetJSON(ctx, r.kv, r.passwordKey(u.ID), &hash); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return u, nil
		}
		return nil, fmt.Errorf("read password hash: %w", err)
	}
	u.Password.hash = []byte(hash)
	return u, nil
}

func (r *Repository) Create(ctx context.Context, user *AdminUser) error {
	if !user.Password.IsSet() {
		return ErrPasswordMissing
	}
	user.Email = NormalizeEmail(user.Email)

	existing, err := r.findByEmail(ctx, user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateEmail
	}

	now := r.now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = &now

	if err := r.users.Put(ctx, user.ID, user); err != nil {
		return fmt.Errorf("save admin user: %w", err)
	}
	return r.savePassword(ctx, user)
}

// Update rewrites the record, and the hash only when a new password was Set.
func (r *Repository) Update(ctx context.Context, user *AdminUser) error {
	current, err := r.GetByID(ctx, user.ID)
	if err != nil {
		return err
	}

	user.Email = NormalizeEmail(user.Email)
	if user.Email != current.Email {
		other, err := r.findByEmail(ctx, user.Email)
		if err != nil {
			return err
		}
		if other != nil && other.ID != user.ID {
			return ErrDuplicateEmail
		}
	}

	now := r.now().UTC()
	user.CreatedAt = current.CreatedAt
	user.UpdatedAt = &now

	if err := r.users.Put(ctx, user.ID, user); err != nil {
		return fmt.Errorf("save admin user: %w", err)
	}
	if user.Password.IsSet() {
		return r.savePassword(ctx, user)
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.users.Remove(ctx, id); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return r.kv.Del(ctx, r.passwordKey(id))
}

func (r *Repository) findByEmail(ctx context.Context, email string) (*AdminUser, error) {
	email = NormalizeEmail(email)
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if NormalizeEmail(list[i].Email) == email {
			return &list[i], nil
		}
	}
	return nil, nil
}

func (r *Repository) savePassword(ctx context.Context, user *AdminUser) error {
	if err := kv.SetJSON(ctx, r.kv, r.passwordKey(user.ID), string(user.Password.hash)); err != nil {
		return fmt.Errorf("save password hash: %w", err)
	}
	user.Password.text = nil
	return nil
}

func (r *Repository) passwordKey(id string) string {
	return kv.PrefixAdminPassword + id
}
