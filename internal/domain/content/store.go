package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"plugshop/internal/kv"
)

type Store interface {
	// Reviews
	ListReviews(ctx context.Context) ([]Review, error)
	GetReview(ctx context.Context, id string) (*Review, error)
	SaveReview(ctx context.Context, r *Review) error
	DeleteReview(ctx context.Context, id string) error

	// Socials
	ListSocials(ctx context.Context) ([]SocialLink, error)
	GetSocial(ctx context.Context, id string) (*SocialLink, error)
	SaveSocial(ctx context.Context, s *SocialLink) error
	DeleteSocial(ctx context.Context, id string) error

	// Settings
	ShopSettings(ctx context.Context) (*ShopSettings, error)
	Setting(ctx context.Context, key string) (json.RawMessage, error)
	UpdateSettings(ctx context.Context, in SettingsUpdate) error
}

type Repository struct {
	kv      kv.Store
	reviews *kv.Collection[Review]
	socials *kv.Collection[SocialLink]
}

func NewRepository(s kv.Store) Store {
	return &Repository{
		kv:      s,
		reviews: kv.NewCollection[Review](s, kv.PrefixReview),
		socials: kv.NewCollection[SocialLink](s, kv.PrefixSocial),
	}
}

// ------------------------------------
// Reviews
// ------------------------------------
func (r *Repository) ListReviews(ctx context.Context) ([]Review, error) {
	return r.reviews.List(ctx)
}

func (r *Repository) GetReview(ctx context.Context, id string) (*Review, error) {
	rv, err := r.reviews.Get(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrReviewNotFound
	}
	return rv, err
}

func (r *Repository) SaveReview(ctx context.Context, rv *Review) error {
	return r.reviews.Put(ctx, rv.ID, rv)
}

func (r *Repository) DeleteReview(ctx context.Context, id string) error {
	err := r.reviews.Remove(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return ErrReviewNotFound
	}
	return err
}

// ------------------------------------
// Socials
// ------------------------------------
func (r *Repository) ListSocials(ctx context.Context) ([]SocialLink, error) {
	return r.socials.List(ctx)
}

func (r *Repository) GetSocial(ctx context.Context, id string) (*SocialLink, error) {
	s, err := r.socials.Get(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, ErrSocialNotFound
	}
	return s, err
}

func (r *Repository) SaveSocial(ctx context.Context, s *SocialLink) error {
	return r.socials.Put(ctx, s.ID, s)
}

func (r *Repository) DeleteSocial(ctx context.Context, id string) error {
	err := r.socials.Remove(ctx, id)
	if errors.Is(err, kv.ErrNotFound) {
		return ErrSocialNotFound
	}
	return err
}

// ------------------------------------
// Settings
// ------------------------------------

// ShopSettings assembles the home page settings from their individual keys.
func (r *Repository) ShopSettings(ctx context.Context) (*ShopSettings, error) {
	s := &ShopSettings{Sections: []HomeSection{}}

	fields := []struct {
		key string
		dst any
	}{
		{SettingShopName, &s.ShopName},
		{SettingHeroTitle, &s.HeroTitle},
		{SettingHeroSubtitle, &s.HeroSubtitle},
		{SettingBackgroundImage, &s.BackgroundImage},
		{SettingSections, &s.Sections},
	}
	for _, f := range fields {
		err := kv.GetJSON(ctx, r.kv, kv.PrefixSettings+f.key, f.dst)
		if err != nil && !errors.Is(err, kv.ErrNotFound) {
			return nil, fmt.Errorf("read setting %s: %w", f.key, err)
		}
	}

	if s.ShopName == "" {
		s.ShopName = DefaultShopName
	}
	if s.Sections == nil {
		s.Sections = []HomeSection{}
	}
	return s, nil
}

// Setting returns the raw stored value, or nil when the key was never set.
func (r *Repository) Setting(ctx context.Context, key string) (json.RawMessage, error) {
	raw, err := r.kv.Get(ctx, kv.PrefixSettings+key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !json.Valid(raw) {
		// Plain strings written by other tools are served as JSON strings.
		quoted, _ := json.Marshal(string(raw))
		return quoted, nil
	}
	return raw, nil
}

func (r *Repository) UpdateSettings(ctx context.Context, in SettingsUpdate) error {
	writes := map[string]any{}
	if in.ShopName != nil {
		writes[SettingShopName] = *in.ShopName
	}
	if in.HeroTitle != nil {
		writes[SettingHeroTitle] = *in.HeroTitle
	}
	if in.HeroSubtitle != nil {
		writes[SettingHeroSubtitle] = *in.HeroSubtitle
	}
	if in.BackgroundImage != nil {
		writes[SettingBackgroundImage] = *in.BackgroundImage
	}
	if in.Sections != nil {
		writes[SettingSections] = in.Sections
	}
	if in.ColorTheme != nil {
		writes[SettingColorTheme] = DefaultColorTheme().Merge(*in.ColorTheme)
	}
	if in.Typography != nil {
		writes[SettingTypography] = in.Typography
	}
	if in.LoadingScreen != nil {
		writes[SettingLoadingScreen] = in.LoadingScreen
	}

	for key, v := range writes {
		if err := kv.SetJSON(ctx, r.kv, kv.PrefixSettings+key, v); err != nil {
			return fmt.Errorf("write setting %s: %w", key, err)
		}
	}
	return nil
}
