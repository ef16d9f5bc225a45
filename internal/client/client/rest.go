package client

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
	"strings"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/dmitrijs2005/toursite/internal/models"
)

const defaultBackoff = 200 * time.Millisecond

// APIClient is a REST client for the admin API.
type APIClient struct {
	baseURL string
	http    *http.Client
	retries uint64
	backoff time.Duration
}

func NewAPIClient(baseURL string, timeout time.Duration, retries int) *APIClient {
	if retries < 0 {
		retries = 0
	}
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		retries: uint64(retries),
		backoff: defaultBackoff,
	}
}

// get retries while the server is unavailable.
func (c *APIClient) get(ctx context.Context, path string, query url.Values, out any) error {
	b := retry.WithMaxRetries(c.retries, retry.NewExponential(c.backoff))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		err := c.do(ctx, http.MethodGet, path, query, nil, out)
		if errors.Is(err, ErrUnavailable) {
			return retry.RetryableError(err)
		}
		return err
	})
}

func (c *APIClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

type swapBody struct {
	IDA string `json:"id_a"`
	IDB string `json:"id_b"`
}

// -------- tours --------

// Tours returns every tour in display order.
func (c *APIClient) Tours(ctx context.Context) ([]*models.Tour, error) {
	var out []*models.Tour
	if err := c.get(ctx, "/api/admin/tours", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) CreateTour(ctx context.Context, t *models.Tour) (*models.Tour, error) {
	var out models.Tour
	if err := c.do(ctx, http.MethodPost, "/api/admin/tours", nil, t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeleteTour(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/tours/"+url.PathEscape(id), nil, nil, nil)
}

func (c *APIClient) SwapTours(ctx context.Context, idA, idB string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/tours/swap", nil, swapBody{IDA: idA, IDB: idB}, nil)
}

// -------- promotions --------

func (c *APIClient) Promotions(ctx context.Context) ([]*models.Promotion, error) {
	var out []*models.Promotion
	if err := c.get(ctx, "/api/admin/promotions", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) DeletePromotion(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/promotions/"+url.PathEscape(id), nil, nil, nil)
}

func (c *APIClient) SwapPromotions(ctx context.Context, idA, idB string) error {
	return c.do(ctx, http.MethodPost, "/api/admin/promotions/swap", nil, swapBody{IDA: idA, IDB: idB}, nil)
}

// -------- posts --------

// Posts returns one page of posts, drafts included, for the navigation
// context q.
func (c *APIClient) Posts(ctx context.Context, q models.ListQuery) (models.Page[*models.Post], error) {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	var out models.Page[*models.Post]
	if err := c.get(ctx, "/api/admin/posts", v, &out); err != nil {
		return models.Page[*models.Post]{}, err
	}
	return out, nil
}

func (c *APIClient) CreatePost(ctx context.Context, p *models.Post) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPost, "/api/admin/posts", nil, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *APIClient) DeletePost(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/admin/posts/"+url.PathEscape(id), nil, nil, nil)
}

// -------- bookings --------

func (c *APIClient) Bookings(ctx context.Context) ([]*models.BookingInquiry, error) {
	var out []*models.BookingInquiry
	if err := c.get(ctx, "/api/admin/bookings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
