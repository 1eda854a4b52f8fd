// Package storecore is the HTTP client for the storefront core API, the
// authoritative owner of the signed-in user's cart, wishlist, wallet, and
// orders. All calls carry the user's session token; outbound requests are
// traced and guarded by a circuit breaker so a struggling core cannot pile
// up goroutines here.
package storecore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/config"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
}

func NewClient(cfg *config.CoreAPI) *Client {

	settings := gobreaker.Settings{
		Name:    "storefront-core",
		Timeout: cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

type apiError struct {
	Message string `json:"message"`
}

type createCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type createWishlistItemRequest struct {
	ProductID int64 `json:"productId"`
}

type walletResponse struct {
	Balance int64 `json:"balance"`
}

type ValidateRedemptionRequest struct {
	Amount     float64  `json:"amount"`
	CoinsToUse int64    `json:"coinsToUse"`
	Categories []string `json:"categories"`
}

type ValidateRedemptionResponse struct {
	Valid           bool    `json:"valid"`
	CoinsApplicable int64   `json:"coinsApplicable"`
	Discount        float64 `json:"discount"`
	Message         string  `json:"message"`
}

type RedeemRequest struct {
	Amount        float64 `json:"amount"`
	ReferenceType string  `json:"referenceType"`
	ReferenceID   string  `json:"referenceId"`
	Description   string  `json:"description"`
}

type CreateOrderRequest struct {
	Amount    float64 `json:"amount"`
	Discount  float64 `json:"discount"`
	CoinsUsed int64   `json:"coinsUsed"`
}

type Order struct {
	ID       int64   `json:"id"`
	Status   string  `json:"status"`
	Amount   float64 `json:"amount"`
	Discount float64 `json:"discount"`
}

func (c *Client) do(ctx context.Context, method, path, token string, payload, out any) error {

	var body io.Reader

	if payload != nil {

		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal request for %s %s: %w", method, path, err)
		}

		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request for %s %s: %w", method, path, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	respBody, err := c.breaker.Execute(func() ([]byte, error) {

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("core api request failed: %w", err)
		}

		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read core api response: %w", err)
		}

		if resp.StatusCode >= http.StatusBadRequest {

			var apiErr apiError
			if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
				return nil, fmt.Errorf("core api %s %s: %s (status %d)", method, path, apiErr.Message, resp.StatusCode)
			}

			return nil, fmt.Errorf("core api %s %s: status %d", method, path, resp.StatusCode)
		}

		return data, nil
	})
	if err != nil {
		return err
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("failed to decode core api response for %s %s: %w", method, path, err)
		}
	}

	return nil
}

func (c *Client) GetCart(ctx context.Context, token string) ([]models.RemoteCartItem, error) {

	var items []models.RemoteCartItem

	if err := c.do(ctx, http.MethodGet, "/cart", token, nil, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (c *Client) CreateCartItem(ctx context.Context, token string, productID int64, quantity int) (*models.RemoteCartItem, error) {

	var item models.RemoteCartItem

	req := createCartItemRequest{ProductID: productID, Quantity: quantity}

	if err := c.do(ctx, http.MethodPost, "/cart", token, req, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (c *Client) UpdateCartItem(ctx context.Context, token string, id int64, quantity int) (*models.RemoteCartItem, error) {

	var item models.RemoteCartItem

	req := updateCartItemRequest{Quantity: quantity}

	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/cart/%d", id), token, req, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (c *Client) GetWishlist(ctx context.Context, token string) ([]models.RemoteWishlistItem, error) {

	var items []models.RemoteWishlistItem

	if err := c.do(ctx, http.MethodGet, "/wishlist", token, nil, &items); err != nil {
		return nil, err
	}

	return items, nil
}

func (c *Client) CreateWishlistItem(ctx context.Context, token string, productID int64) (*models.RemoteWishlistItem, error) {

	var item models.RemoteWishlistItem

	req := createWishlistItemRequest{ProductID: productID}

	if err := c.do(ctx, http.MethodPost, "/wishlist", token, req, &item); err != nil {
		return nil, err
	}

	return &item, nil
}

func (c *Client) GetWalletBalance(ctx context.Context, token string) (int64, error) {

	var wallet walletResponse

	if err := c.do(ctx, http.MethodGet, "/wallet", token, nil, &wallet); err != nil {
		return 0, err
	}

	return wallet.Balance, nil
}

func (c *Client) GetWalletPolicy(ctx context.Context, token string) (models.WalletPolicyPayload, error) {

	var payload models.WalletPolicyPayload

	if err := c.do(ctx, http.MethodGet, "/wallet/settings", token, nil, &payload); err != nil {
		return models.WalletPolicyPayload{}, err
	}

	return payload, nil
}

func (c *Client) ValidateRedemption(ctx context.Context, token string, req ValidateRedemptionRequest) (*ValidateRedemptionResponse, error) {

	var resp ValidateRedemptionResponse

	if err := c.do(ctx, http.MethodPost, "/wallet/validate-redemption", token, req, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// Redeem posts the wallet ledger entry for a placed order. The response
// body carries nothing useful; only the status matters.
func (c *Client) Redeem(ctx context.Context, token string, req RedeemRequest) error {
	return c.do(ctx, http.MethodPost, "/wallet/redeem", token, req, nil)
}

func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*Order, error) {

	var order Order

	if err := c.do(ctx, http.MethodPost, "/orders", token, req, &order); err != nil {
		return nil, err
	}

	return &order, nil
}
