// Package catalogclient is a typed reader for the public shop API.
package catalogclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"plugshop/internal/domain/cartsettings"
	"plugshop/internal/domain/catalog"
	"plugshop/internal/domain/content"
	"plugshop/internal/domain/events"
	"plugshop/internal/domain/promos"
)

const tracerName = "plugshop/catalogclient"

// APIError is returned when the server answers with a non-2xx status or an
// envelope whose success flag is false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return fmt.Sprintf("api: status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err is an APIError carrying a 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) { c.logger = l }
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.SugaredLogger
	tracer  trace.Tracer
}

// New builds a client for baseURL, which may or may not end in "/api".
func New(baseURL string, opts ...Option) *Client {
	base := strings.TrimRight(baseURL, "/")
	if !strings.HasSuffix(base, "/api") {
		base += "/api"
	}
	c := &Client{
		baseURL: base,
		http:    &http.Client{Timeout: 15 * time.Second},
		logger:  zap.NewNop().Sugar(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	ctx, span := c.tracer.Start(ctx, "catalogclient.GET "+path, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	endpoint := c.baseURL + path
	span.SetAttributes(
		attribute.String("http.method", http.MethodGet),
		attribute.String("http.url", endpoint),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Warnw("catalog request failed", "path", path, "error", err)
		return err
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return err
	}

	var env envelope
	decodeErr := json.Unmarshal(body, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if decodeErr == nil {
			apiErr.Message = firstNonEmpty(env.Error, env.Message)
		}
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}
	if decodeErr != nil {
		span.RecordError(decodeErr)
		return fmt.Errorf("decode %s: %w", path, decodeErr)
	}
	if !env.Success {
		apiErr := &APIError{Status: resp.StatusCode, Message: firstNonEmpty(env.Error, env.Message)}
		span.SetStatus(codes.Error, apiErr.Error())
		return apiErr
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		span.RecordError(err)
		return fmt.Errorf("decode %s data: %w", path, err)
	}
	return nil
}

// list decodes a collection endpoint. A null data field becomes an empty slice.
func list[T any](ctx context.Context, c *Client, path string) ([]T, error) {
	var out []T
	if err := c.get(ctx, path, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if v != "" {
			return v
		}
	}
	return ""
}

func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	return list[catalog.Product](ctx, c, "/products")
}

func (c *Client) Product(ctx context.Context, id string) (*catalog.Product, error) {
	var out catalog.Product
	if err := c.get(ctx, "/products/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Categories(ctx context.Context) ([]catalog.Category, error) {
	return list[catalog.Category](ctx, c, "/categories")
}

func (c *Client) Category(ctx context.Context, id string) (*catalog.Category, error) {
	var out catalog.Category
	if err := c.get(ctx, "/categories/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Farms(ctx context.Context) ([]catalog.Farm, error) {
	return list[catalog.Farm](ctx, c, "/farms")
}

func (c *Client) Farm(ctx context.Context, id string) (*catalog.Farm, error) {
	var out catalog.Farm
	if err := c.get(ctx, "/farms/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Promos lists the enabled promo codes. Every call goes to the server.
func (c *Client) Promos(ctx context.Context) ([]promos.Promo, error) {
	return list[promos.Promo](ctx, c, "/promos")
}

func (c *Client) Reviews(ctx context.Context) ([]content.Review, error) {
	return list[content.Review](ctx, c, "/reviews")
}

func (c *Client) Settings(ctx context.Context) (*content.ShopSettings, error) {
	var out content.ShopSettings
	if err := c.get(ctx, "/settings", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Setting returns the raw JSON stored for key, or nil if it was never set.
func (c *Client) Setting(ctx context.Context, key string) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.get(ctx, "/settings/"+url.PathEscape(key), &out); err != nil {
		return nil, err
	}
	if string(out) == "null" {
		return nil, nil
	}
	return out, nil
}

// ColorTheme reads the colorTheme setting merged over the defaults.
func (c *Client) ColorTheme(ctx context.Context) (content.ColorTheme, error) {
	raw, err := c.Setting(ctx, content.SettingColorTheme)
	if err != nil {
		return content.DefaultColorTheme(), err
	}
	if raw == nil {
		return content.DefaultColorTheme(), nil
	}
	var stored content.ColorTheme
	if err := json.Unmarshal(raw, &stored); err != nil {
		return content.DefaultColorTheme(), fmt.Errorf("decode colorTheme: %w", err)
	}
	return content.DefaultColorTheme().Merge(stored), nil
}

func (c *Client) Socials(ctx context.Context) ([]content.SocialLink, error) {
	return list[content.SocialLink](ctx, c, "/socials")
}

func (c *Client) Events(ctx context.Context) ([]events.Theme, error) {
	return list[events.Theme](ctx, c, "/events")
}

// CartServices lists the enabled checkout services.
func (c *Client) CartServices(ctx context.Context) ([]cartsettings.Service, error) {
	return list[cartsettings.Service](ctx, c, "/cart_services")
}

func (c *Client) CartSettings(ctx context.Context) (*cartsettings.Settings, error) {
	var out cartsettings.Settings
	if err := c.get(ctx, "/cart-settings", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProductDetail is a product with its category and farm resolved.
type ProductDetail struct {
	Product  *catalog.Product
	Category *catalog.Category
	Farm     *catalog.Farm
}

// ProductDetail loads the product, then its category, then its farm. A
// dangling category or farm reference is left nil rather than failing the
// whole lookup.
func (c *Client) ProductDetail(ctx context.Context, id string) (*ProductDetail, error) {
	ctx, span := c.tracer.Start(ctx, "catalogclient.ProductDetail")
	defer span.End()
	span.SetAttributes(attribute.String("product.id", id))

	p, err := c.Product(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &ProductDetail{Product: p}

	if p.Category != "" {
		cat, err := c.Category(ctx, p.Category)
		switch {
		case err == nil:
			detail.Category = cat
		case !IsNotFound(err):
			return nil, err
		}
	}
	if p.Farm != "" {
		farm, err := c.Farm(ctx, p.Farm)
		switch {
		case err == nil:
			detail.Farm = farm
		case !IsNotFound(err):
			return nil, err
		}
	}
	return detail, nil
}
