package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"plugshop/internal/domain/cartsettings"
	"plugshop/internal/domain/catalog"
	"plugshop/internal/domain/content"
	"plugshop/internal/domain/events"
	"plugshop/internal/domain/promos"
	"plugshop/internal/domain/storage"
	"plugshop/internal/domain/users"
	"plugshop/internal/kv"
)

//go:embed fixture.yaml
var defaultFixture []byte

// fixture mirrors the API's JSON shapes; records are decoded generically and
// then re-read through their JSON tags so the YAML keys match the API.
type fixture struct {
	Categories   []map[string]any `yaml:"categories"`
	Farms        []map[string]any `yaml:"farms"`
	Products     []map[string]any `yaml:"products"`
	Promos       []map[string]any `yaml:"promos"`
	Reviews      []map[string]any `yaml:"reviews"`
	Socials      []map[string]any `yaml:"socials"`
	Events       []map[string]any `yaml:"events"`
	Settings     map[string]any   `yaml:"settings"`
	CartSettings map[string]any   `yaml:"cartSettings"`
	Admins       []adminFixture   `yaml:"admins"`
}

type adminFixture struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
	Role     string `yaml:"role"`
}

// purgePrefixes is everything -reset wipes. Admin users are kept so a reset
// never locks the back office out.
var purgePrefixes = []string{
	kv.PrefixProduct,
	kv.PrefixCategory,
	kv.PrefixFarm,
	kv.PrefixPromo,
	kv.PrefixReview,
	kv.PrefixSocial,
	kv.PrefixEventTheme,
	kv.PrefixSettings,
	kv.KeyCartSettings,
}

func parseFixture(data []byte) (*fixture, error) {
	var f fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

func convert[T any](in any) (*T, error) {
	raw, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func convertAll[T any](in []map[string]any, kind string) ([]*T, error) {
	out := make([]*T, 0, len(in))
	for i, rec := range in {
		v, err := convert[T](rec)
		if err != nil {
			return nil, fmt.Errorf("%s #%d: %w", kind, i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func idOr(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

type seedCounts map[string]int

// apply writes every record of f through the domain stores.
func apply(ctx context.Context, store *storage.Container, f *fixture, logger *zap.SugaredLogger) (seedCounts, error) {
	now := time.Now().UTC()
	counts := seedCounts{}

	categories, err := convertAll[catalog.Category](f.Categories, "category")
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		c.ID = idOr(c.ID)
		c.CreatedAt = &now
		if err := store.Catalog.SaveCategory(ctx, c); err != nil {
			return nil, err
		}
	}
	counts["categories"] = len(categories)

	farms, err := convertAll[catalog.Farm](f.Farms, "farm")
	if err != nil {
		return nil, err
	}
	for _, fm := range farms {
		fm.ID = idOr(fm.ID)
		fm.CreatedAt = &now
		if err := store.Catalog.SaveFarm(ctx, fm); err != nil {
			return nil, err
		}
	}
	counts["farms"] = len(farms)

	products, err := convertAll[catalog.Product](f.Products, "product")
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		p.ID = idOr(p.ID)
		p.CreatedAt = now
		if err := store.Catalog.SaveProduct(ctx, p); err != nil {
			return nil, err
		}
	}
	counts["products"] = len(products)

	promoList, err := convertAll[promos.Promo](f.Promos, "promo")
	if err != nil {
		return nil, err
	}
	for _, p := range promoList {
		p.ID = idOr(p.ID)
		p.CreatedAt = &now
		if err := store.Promos.Save(ctx, p); err != nil {
			return nil, err
		}
	}
	counts["promos"] = len(promoList)

	reviews, err := convertAll[content.Review](f.Reviews, "review")
	if err != nil {
		return nil, err
	}
	for _, rv := range reviews {
		rv.ID = idOr(rv.ID)
		rv.CreatedAt = &now
		if err := store.Content.SaveReview(ctx, rv); err != nil {
			return nil, err
		}
	}
	counts["reviews"] = len(reviews)

	socials, err := convertAll[content.SocialLink](f.Socials, "social")
	if err != nil {
		return nil, err
	}
	for _, s := range socials {
		s.ID = idOr(s.ID)
		s.CreatedAt = &now
		if err := store.Content.SaveSocial(ctx, s); err != nil {
			return nil, err
		}
	}
	counts["socials"] = len(socials)

	themes, err := convertAll[events.Theme](f.Events, "event")
	if err != nil {
		return nil, err
	}
	for _, th := range themes {
		if th.EndDate.Before(th.StartDate) {
			return nil, fmt.Errorf("event %q ends before it starts", th.Name)
		}
		th.ID = idOr(th.ID)
		th.CreatedAt = &now
		if err := store.Events.Save(ctx, th); err != nil {
			return nil, err
		}
	}
	counts["events"] = len(themes)

	if f.Settings != nil {
		in, err := convert[settingsFixture](f.Settings)
		if err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}
		if err := store.Content.UpdateSettings(ctx, in.update()); err != nil {
			return nil, err
		}
		counts["settings"] = 1
	}

	if f.CartSettings != nil {
		u, err := convert[cartsettings.Update](f.CartSettings)
		if err != nil {
			return nil, fmt.Errorf("cart settings: %w", err)
		}
		if _, err := store.CartSettings.Update(ctx, *u); err != nil {
			return nil, err
		}
		counts["cartSettings"] = 1
	}

	for _, a := range f.Admins {
		if err := seedAdmin(ctx, store, a); err != nil {
			return nil, err
		}
		counts["admins"]++
	}

	logger.Infow("fixture applied", "counts", counts)
	return counts, nil
}

type settingsFixture struct {
	ShopName        *string                `json:"shopName"`
	HeroTitle       *string                `json:"heroTitle"`
	HeroSubtitle    *string                `json:"heroSubtitle"`
	BackgroundImage *string                `json:"backgroundImage"`
	Sections        []content.HomeSection  `json:"sections"`
	ColorTheme      *content.ColorTheme    `json:"colorTheme"`
	Typography      *content.Typography    `json:"typography"`
	LoadingScreen   *content.LoadingScreen `json:"loadingScreen"`
}

func (s settingsFixture) update() content.SettingsUpdate {
	return content.SettingsUpdate{
		ShopName:        s.ShopName,
		HeroTitle:       s.HeroTitle,
		HeroSubtitle:    s.HeroSubtitle,
		BackgroundImage: s.BackgroundImage,
		Sections:        s.Sections,
		ColorTheme:      s.ColorTheme,
		Typography:      s.Typography,
		LoadingScreen:   s.LoadingScreen,
	}
}

// seedAdmin creates the account, or leaves an existing one with the same
// email untouched.
func seedAdmin(ctx context.Context, store *storage.Container, a adminFixture) error {
	role := users.Role(a.Role)
	if role == "" {
		role = users.RoleAdmin
	}
	if !role.Valid() {
		return fmt.Errorf("admin %s: invalid role %q", a.Email, a.Role)
	}

	user := &users.AdminUser{Email: a.Email, Role: role}
	if err := user.Password.Set(a.Password); err != nil {
		return fmt.Errorf("admin %s: %w", a.Email, err)
	}
	err := store.Users.Create(ctx, user)
	if errors.Is(err, users.ErrDuplicateEmail) {
		return nil
	}
	return err
}
