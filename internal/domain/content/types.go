package content

import (
	"errors"
	"time"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrSocialNotFound = errors.New("social link not found")
)

const DefaultShopName = "PLUG CERTIFIÉ"

// Settings keys stored under "settings:<key>".
const (
	SettingShopName        = "shopName"
	SettingHeroTitle       = "heroTitle"
	SettingHeroSubtitle    = "heroSubtitle"
	SettingBackgroundImage = "backgroundImage"
	SettingSections        = "sections"
	SettingColorTheme      = "colorTheme"
	SettingTypography      = "typography"
	SettingLoadingScreen   = "loadingScreen"
)

type Review struct {
	ID           string     `json:"id"`
	CustomerName string     `json:"customerName"`
	Rating       int        `json:"rating"`
	Comment      string     `json:"comment"`
	CreatedAt    *time.Time `json:"createdAt,omitempty"`
	UpdatedAt    *time.Time `json:"updatedAt,omitempty"`
}

type SocialLink struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Icon      string     `json:"icon"`
	URL       string     `json:"url"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type HomeSection struct {
	Icon    string `json:"icon"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ShopSettings struct {
	ShopName        string        `json:"shopName"`
	HeroTitle       string        `json:"heroTitle"`
	HeroSubtitle    string        `json:"heroSubtitle"`
	BackgroundImage string        `json:"backgroundImage,omitempty"`
	Sections        []HomeSection `json:"sections"`
}

// SettingsUpdate carries only the fields an admin sent; nil means unchanged.
type SettingsUpdate struct {
	ShopName        *string
	HeroTitle       *string
	HeroSubtitle    *string
	BackgroundImage *string
	Sections        []HomeSection
	ColorTheme      *ColorTheme
	Typography      *Typography
	LoadingScreen   *LoadingScreen
}

type ColorTheme struct {
	TextPrimary      string `json:"textPrimary"`
	TextSecondary    string `json:"textSecondary"`
	TextHeading      string `json:"textHeading"`
	BackgroundColor  string `json:"backgroundColor"`
	CardBackground   string `json:"cardBackground"`
	BorderColor      string `json:"borderColor"`
	ButtonText       string `json:"buttonText"`
	ButtonBackground string `json:"buttonBackground"`
	LinkColor        string `json:"linkColor"`
	AccentColor      string `json:"accentColor"`
}

func DefaultColorTheme() ColorTheme {
	return ColorTheme{
		TextPrimary:      "#000000",
		TextSecondary:    "#666666",
		TextHeading:      "#000000",
		BackgroundColor:  "#ffffff",
		CardBackground:   "#ffffff",
		BorderColor:      "#e5e5e5",
		ButtonText:       "#ffffff",
		ButtonBackground: "#000000",
		LinkColor:        "#0000ff",
		AccentColor:      "#000000",
	}
}

// Merge overlays the non-empty fields of o on top of c.
func (c ColorTheme) Merge(o ColorTheme) ColorTheme {
	pick := func(base, over string) string {
		if over != "" {
			return over
		}
		return base
	}
	return ColorTheme{
		TextPrimary:      pick(c.TextPrimary, o.TextPrimary),
		TextSecondary:    pick(c.TextSecondary, o.TextSecondary),
		TextHeading:      pick(c.TextHeading, o.TextHeading),
		BackgroundColor:  pick(c.BackgroundColor, o.BackgroundColor),
		CardBackground:   pick(c.CardBackground, o.CardBackground),
		BorderColor:      pick(c.BorderColor, o.BorderColor),
		ButtonText:       pick(c.ButtonText, o.ButtonText),
		ButtonBackground: pick(c.ButtonBackground, o.ButtonBackground),
		LinkColor:        pick(c.LinkColor, o.LinkColor),
		AccentColor:      pick(c.AccentColor, o.AccentColor),
	}
}

type Typography struct {
	TitleFont    string `json:"titleFont"`
	SubtitleFont string `json:"subtitleFont"`
	BodyFont     string `json:"bodyFont"`
}

type LoadingScreen struct {
	Text           string `json:"text"`
	AnimationStyle string `json:"animationStyle"`
	Logo           string `json:"logo,omitempty"`
}
