// Package apiclient is a Go client for the POS admin API. It mirrors the
// behavior of the browser app's HTTP wrapper: it carries the current access
// token on every call, keeps the refresh cookie in a jar, and on an
// authentication failure refreshes the token and replays the original request
// exactly once.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/minipos/minipos/internal/models"
	"github.com/minipos/minipos/internal/transport"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
}

type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
			Jar:     jar,
		},
	}, nil
}

func (c *Client) token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

func (c *Client) setToken(t string) {
	c.mu.Lock()
	c.accessToken = t
	c.mu.Unlock()
}

// do performs one request. retried reports whether this call is already the
// replay after a refresh; a second authentication failure is returned as is,
// never retried again.
func (c *Client) do(ctx context.Context, method, path string, body, out any, retried bool) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t := c.token(); t != "" {
		req.Header.Set("Authorization", "Bearer "+t)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && !retried {
		if refreshErr := c.RefreshToken(ctx); refreshErr == nil {
			return c.do(ctx, method, path, body, out, true)
		}
		return apiError(resp)
	}

	if resp.StatusCode >= 400 {
		return apiError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func apiError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	if body.Message == "" {
		body.Message = resp.Status
	}
	return &APIError{Status: resp.StatusCode, Message: body.Message}
}

func (c *Client) Signup(ctx context.Context, name, email, password string) error {
	req := transport.SignupRequest{Name: name, Email: email, Password: password}
	return c.do(ctx, http.MethodPost, "/api/auth/signup", req, nil, false)
}

// Login stores the returned access token for subsequent calls; the refresh
// cookie lands in the jar.
func (c *Client) Login(ctx context.Context, email, password string) (*transport.LoginResponse, error) {
	req := transport.LoginRequest{Email: email, Password: password}
	var res transport.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &res, false); err != nil {
		return nil, err
	}
	c.setToken(res.AccessToken)
	return &res, nil
}

func (c *Client) RefreshToken(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/auth/refresh-token", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	var res transport.RefreshResponse
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	c.setToken(res.AccessToken)
	return nil
}

func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, false); err != nil {
		return err
	}
	c.setToken("")
	return nil
}

func (c *Client) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	err := c.do(ctx, http.MethodGet, "/api/customers", nil, &out, false)
	return out, err
}

func (c *Client) CreateCustomer(ctx context.Context, req transport.CustomerRequest) (*models.Customer, error) {
	var out models.Customer
	if err := c.do(ctx, http.MethodPost, "/api/customers", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListItems(ctx context.Context) ([]models.Item, error) {
	var out []models.Item
	err := c.do(ctx, http.MethodGet, "/api/items", nil, &out, false)
	return out, err
}

func (c *Client) CreateItem(ctx context.Context, req transport.ItemRequest) (*models.Item, error) {
	var out models.Item
	if err := c.do(ctx, http.MethodPost, "/api/items", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	err := c.do(ctx, http.MethodGet, "/api/orders", nil, &out, false)
	return out, err
}

func (c *Client) CreateOrder(ctx context.Context, req transport.CreateOrderRequest) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", req, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+id, nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}
