package storecore_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/config"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/pkg/storecore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) (*storecore.Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := storecore.NewClient(&config.CoreAPI{
		BaseURL:         server.URL,
		Timeout:         5 * time.Second,
		BreakerFailures: 3,
		BreakerCooldown: time.Minute,
	})

	return client, server
}

func TestGetCart(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":101,"userId":7,"product":{"id":5,"name":"Mug","price":99,"mrp":120,"image":""},"quantity":2}]`))
	}))

	items, err := client.GetCart(t.Context(), "session-token")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(101), items[0].ID)
	assert.Equal(t, int64(5), items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCreateCartItem(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cart", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(9), body["productId"])
		assert.Equal(t, float64(2), body["quantity"])

		w.Write([]byte(`{"id":202,"userId":7,"product":{"id":9},"quantity":2}`))
	}))

	item, err := client.CreateCartItem(t.Context(), "session-token", 9, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(202), item.ID)
	assert.False(t, item.Pending())
}

func TestUpdateCartItem(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/cart/101", r.URL.Path)

		w.Write([]byte(`{"id":101,"userId":7,"product":{"id":5},"quantity":4}`))
	}))

	item, err := client.UpdateCartItem(t.Context(), "session-token", 101, 4)

	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)
}

func TestGetWalletBalance(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet", r.URL.Path)
		w.Write([]byte(`{"balance":750}`))
	}))

	balance, err := client.GetWalletBalance(t.Context(), "session-token")

	require.NoError(t, err)
	assert.Equal(t, int64(750), balance)
}

func TestGetWalletPolicy(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/settings", r.URL.Path)
		w.Write([]byte(`{"minCartValue":"200","coinToCurrencyRatio":"0.5","maxRedeemableCoins":"300","maxUsagePercentage":"20"}`))
	}))

	payload, err := client.GetWalletPolicy(t.Context(), "session-token")

	require.NoError(t, err)
	assert.Equal(t, "0.5", payload.CoinToCurrencyRatio)
	assert.Equal(t, "300", payload.MaxRedeemableCoins)
}

func TestValidateRedemption(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/validate-redemption", r.URL.Path)
		w.Write([]byte(`{"valid":false,"coinsApplicable":0,"discount":0,"message":"policy changed"}`))
	}))

	resp, err := client.ValidateRedemption(t.Context(), "session-token", storecore.ValidateRedemptionRequest{
		Amount:     500,
		CoinsToUse: 200,
	})

	require.NoError(t, err)
	assert.False(t, resp.Valid)
	assert.Equal(t, "policy changed", resp.Message)
}

func TestRedeem(t *testing.T) {
	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/wallet/redeem", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ORDER", body["referenceType"])

		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.Redeem(t.Context(), "session-token", storecore.RedeemRequest{
		Amount:        100,
		ReferenceType: "ORDER",
		ReferenceID:   "9001",
		Description:   "Order #9001",
	})

	assert.NoError(t, err)
}

func TestErrorResponses(t *testing.T) {

	t.Run("API Error Message Surfaced", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message":"item out of stock"}`))
		}))

		_, err := client.CreateCartItem(t.Context(), "session-token", 9, 2)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "item out of stock")
	})

	t.Run("Breaker Opens After Consecutive Failures", func(t *testing.T) {
		client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))

		for range 3 {
			_, err := client.GetCart(t.Context(), "session-token")
			require.Error(t, err)
		}

		_, err := client.GetCart(t.Context(), "session-token")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "circuit breaker is open")
	})
}
