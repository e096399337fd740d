// Package api implements the storefront backend HTTP contract.
//
// All writes are credentials-bearing form-encoded POSTs, reads are
// plain GETs, and every response body is JSON. A non-success status
// plus an "error" field is the failure contract.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joss/sweetshop/internal/shop"
)

// Client talks to the storefront backend.
type Client struct {
	base       string
	httpClient *http.Client
	clientID   string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (for testing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithClientID sets the stable per-install ID sent as X-Client-ID.
func WithClientID(id string) Option {
	return func(c *Client) { c.clientID = id }
}

// New creates a client for the given base URL. The session cookie the
// backend issues at login is held in an in-process jar and attached to
// every subsequent call.
func New(base string, opts ...Option) *Client {
	base = strings.TrimRight(base, "/")

	jar, _ := cookiejar.New(nil)
	c := &Client{
		base: base,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Base returns the resolved backend base URL.
func (c *Client) Base() string {
	return c.base
}

type userResponse struct {
	User *shop.User `json:"user"`
}

type productsResponse struct {
	OK       bool           `json:"ok"`
	Products []shop.Product `json:"products"`
}

type cartResponse struct {
	OK   bool            `json:"ok"`
	Cart []shop.CartLine `json:"cart"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type checkoutResponse struct {
	OrderTotal int `json:"order_total"`
}

// Login authenticates and returns the user record the backend issued.
func (c *Client) Login(ctx context.Context, username, password string) (*shop.User, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp userResponse
	if err := c.postForm(ctx, "/login.php", form, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("login: %w", ErrNotOK)
	}
	return resp.User, nil
}

// Register creates an account and returns the new user record.
func (c *Client) Register(ctx context.Context, username, password string) (*shop.User, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var resp userResponse
	if err := c.postForm(ctx, "/register.php", form, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, fmt.Errorf("register: %w", ErrNotOK)
	}
	return resp.User, nil
}

// Logout ends the server session. The response body is ignored.
func (c *Client) Logout(ctx context.Context) error {
	return c.postForm(ctx, "/logout.php", url.Values{}, nil)
}

// Products fetches the full catalog.
func (c *Client) Products(ctx context.Context) ([]shop.Product, error) {
	var resp productsResponse
	if err := c.get(ctx, "/api_products.php", &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("products: %w", ErrNotOK)
	}
	return resp.Products, nil
}

// AddToCart submits a product and quantity to the server-held cart.
func (c *Client) AddToCart(ctx context.Context, productID string, qty int) error {
	form := url.Values{}
	form.Set("product_id", productID)
	form.Set("qty", strconv.Itoa(qty))

	var resp okResponse
	if err := c.postForm(ctx, "/add_to_cart.php", form, &resp); err != nil {
		return err
	}
	if !resp.OK {
		return fmt.Errorf("add to cart: %w", ErrNotOK)
	}
	return nil
}

// Cart fetches the authoritative server-held cart.
func (c *Client) Cart(ctx context.Context) ([]shop.CartLine, error) {
	var resp cartResponse
	if err := c.get(ctx, "/get_cart.php", &resp); err != nil {
		return nil, err
	}
	if !resp.OK {
		return nil, fmt.Errorf("cart: %w", ErrNotOK)
	}
	return resp.Cart, nil
}

// Checkout submits the order and returns the server-computed total in
// minor units. The server total is authoritative; prices may have
// changed since the client rendered its preview.
func (c *Client) Checkout(ctx context.Context, name string) (int, error) {
	form := url.Values{}
	form.Set("name", name)

	var resp checkoutResponse
	if err := c.postForm(ctx, "/checkout.php", form, &resp); err != nil {
		return 0, err
	}
	return resp.OrderTotal, nil
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.clientID != "" {
		req.Header.Set("X-Client-ID", c.clientID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var fail struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(body, &fail)
		return &Error{Status: resp.StatusCode, Message: fail.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
