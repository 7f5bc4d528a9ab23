package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker/v2"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
)

// WooConfig holds the commerce platform connection settings.
type WooConfig struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	Version        string
	Timeout        time.Duration
}

// WooClient talks to a WooCommerce-style REST API using query-string
// authentication. Every request goes through a shared circuit breaker so a
// misbehaving platform fails fast instead of tying up pipelines.
type WooClient struct {
	cfg     WooConfig
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  zerolog.Logger
}

func NewWooClient(cfg WooConfig, logger zerolog.Logger) *WooClient {
	if cfg.Version == "" {
		cfg.Version = "wc/v3"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	breaker := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "commerce-platform",
		MaxRequests: 10,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
	})

	return &WooClient{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		breaker: breaker,
		logger:  logger.With().Str("component", "platform").Logger(),
	}
}

func (c *WooClient) GetOrder(ctx context.Context, id int64) (*Order, error) {
	var out Order
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("orders/%d", id), nil, nil, &out)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("order %d: %w", id, domainErrors.ErrOrderNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (c *WooClient) CreateOrder(ctx context.Context, in *OrderInput) (*Order, error) {
	var out Order
	if err := c.do(ctx, http.MethodPost, "orders", nil, in, &out); err != nil {
		return nil, err
	}
	c.logger.Info().Int64("order_id", out.ID).Str("status", out.Status).Msg("order created")
	return &out, nil
}

func (c *WooClient) UpdateOrder(ctx context.Context, id int64, patch *OrderPatch) (*Order, error) {
	var out Order
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("orders/%d", id), nil, patch, &out)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("order %d: %w", id, domainErrors.ErrOrderNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (c *WooClient) FindOrdersByMeta(ctx context.Context, key, value string) ([]Order, error) {
	q := url.Values{
		"orderby":    {"date"},
		"order":      {"desc"},
		"per_page":   {"100"},
		"meta_key":   {key},
		"meta_value": {value},
	}
	var out []Order
	if err := c.do(ctx, http.MethodGet, "orders", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *WooClient) GetProduct(ctx context.Context, id int64) (*Product, error) {
	var out Product
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("products/%d", id), nil, nil, &out)
	if err != nil {
		if IsNotFound(err) {
			return nil, fmt.Errorf("product %d: %w", id, domainErrors.ErrProductNotFound)
		}
		return nil, err
	}
	return &out, nil
}

func (c *WooClient) FindProductBySKU(ctx context.Context, sku string) (*Product, error) {
	q := url.Values{"sku": {sku}}
	var out []Product
	if err := c.do(ctx, http.MethodGet, "products", q, nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("sku %s: %w", sku, domainErrors.ErrProductNotFound)
	}
	return &out[0], nil
}

func (c *WooClient) CreateProduct(ctx context.Context, in *ProductInput) (*Product, error) {
	var out Product
	if err := c.do(ctx, http.MethodPost, "products", nil, in, &out); err != nil {
		return nil, err
	}
	c.logger.Info().Int64("product_id", out.ID).Str("sku", out.SKU).Msg("product created")
	return &out, nil
}

func (c *WooClient) ListProducts(ctx context.Context, filter ProductFilter) ([]Product, error) {
	if filter.PerPage <= 0 {
		filter.PerPage = 100
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	q := url.Values{
		"per_page": {strconv.Itoa(filter.PerPage)},
		"page":     {strconv.Itoa(filter.Page)},
	}
	if filter.Status != "" {
		q.Set("status", filter.Status)
	}
	if filter.StockStatus != "" {
		q.Set("stock_status", filter.StockStatus)
	}
	if filter.CategoryID != "" {
		q.Set("category", filter.CategoryID)
	}
	var out []Product
	if err := c.do(ctx, http.MethodGet, "products", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ping verifies connectivity without touching order state.
func (c *WooClient) Ping(ctx context.Context) error {
	var out []Product
	q := url.Values{"per_page": {"1"}}
	return c.do(ctx, http.MethodGet, "products", q, nil, &out)
}

func (c *WooClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u, err := url.Parse(fmt.Sprintf("%s/wp-json/%s/%s", c.cfg.BaseURL, c.cfg.Version, path))
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}
	if query == nil {
		query = url.Values{}
	}
	query.Set("consumer_key", c.cfg.ConsumerKey)
	query.Set("consumer_secret", c.cfg.ConsumerSecret)
	u.RawQuery = query.Encode()

	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	data, err := c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				return nil, fmt.Errorf("%s %s: %w", method, path, domainErrors.ErrPlatformTimeout)
			}
			return nil, err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(respBody), 512)}
		}
		return respBody, nil
	})
	if err != nil {
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("platform call failed")
		return err
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
