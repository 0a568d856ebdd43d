package catalog

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrFarmNotFound     = errors.New("farm not found")
)

// ProductVariant is one purchasable size of a product, e.g. "1g".
type ProductVariant struct {
	Name     string  `json:"name"`
	Grammage float64 `json:"grammage"`
	Unit     string  `json:"unit"`
	Price    float64 `json:"price"`
}

// Product references its category and farm by id; the references are not
// checked on write.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	Farm        string           `json:"farm"`
	Photo       string           `json:"photo,omitempty"`
	Image       string           `json:"image,omitempty"`
	Video       string           `json:"video,omitempty"`
	Medias      []string         `json:"medias,omitempty"`
	Variants    []ProductVariant `json:"variants"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   *time.Time       `json:"updatedAt,omitempty"`
}

// Variant looks a variant up by name.
func (p *Product) Variant(name string) (ProductVariant, bool) {
	for _, v := range p.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return ProductVariant{}, false
}

// Thumbnail picks the image the cart shows next to a line.
func (p *Product) Thumbnail() string {
	switch {
	case p.Image != "":
		return p.Image
	case p.Photo != "":
		return p.Photo
	case len(p.Medias) > 0:
		return p.Medias[0]
	}
	return ""
}

type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Icon      string     `json:"icon"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

type Farm struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Enabled   bool       `json:"enabled"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}
