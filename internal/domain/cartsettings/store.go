package cartsettings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"plugshop/internal/kv"
)

type Store interface {
	Get(ctx context.Context) (*Settings, error)
	Update(ctx context.Context, u Update) (*Settings, error)
	EnabledServices(ctx context.Context) ([]Service, error)
}

type Repository struct {
	kv  kv.Store
	now func() time.Time
}

func NewRepository(s kv.Store) Store {
	return &Repository{kv: s, now: time.Now}
}

// Get returns the stored settings, or the defaults when none were saved.
func (r *Repository) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := kv.GetJSON(ctx, r.kv, kv.KeyCartSettings, &s); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return Default(), nil
		}
		return nil, fmt.Errorf("get cart settings: %w", err)
	}
	normalize(&s)
	return &s, nil
}

func (r *Repository) Update(ctx context.Context, u Update) (*Settings, error) {
	existing, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}

	updated := existing.Merge(u)
	r.assignIDs(updated)

	if err := kv.SetJSON(ctx, r.kv, kv.KeyCartSettings, updated); err != nil {
		return nil, fmt.Errorf("save cart settings: %w", err)
	}
	return updated, nil
}

func (r *Repository) EnabledServices(ctx context.Context) ([]Service, error) {
	s, err := r.Get(ctx)
	if err != nil {
		return nil, err
	}
	return s.EnabledServices(), nil
}

// assignIDs gives new list entries a stable id so the storefront can
// reference them in the checkout state.
func (r *Repository) assignIDs(s *Settings) {
	now := r.now().UTC()
	for i := range s.Services {
		if s.Services[i].ID == "" {
			s.Services[i].ID = uuid.NewString()
			s.Services[i].CreatedAt = &now
		}
		if s.Services[i].TimeSlots == nil {
			s.Services[i].TimeSlots = []TimeSlot{}
		}
	}
	for i := range s.PaymentMethods {
		if s.PaymentMethods[i].ID == "" {
			s.PaymentMethods[i].ID = uuid.NewString()
			s.PaymentMethods[i].CreatedAt = &now
		}
	}
	for i := range s.ContactLinks {
		if s.ContactLinks[i].ID == "" {
			s.ContactLinks[i].ID = uuid.NewString()
		}
	}
}

func normalize(s *Settings) {
	if s.Services == nil {
		s.Services = []Service{}
	}
	if s.PaymentMethods == nil {
		s.PaymentMethods = []PaymentMethod{}
	}
	if s.ContactLinks == nil {
		s.ContactLinks = []ContactLink{}
	}
	if s.ButtonColors == (ButtonColors{}) {
		s.ButtonColors = DefaultButtonColors()
	}
}
