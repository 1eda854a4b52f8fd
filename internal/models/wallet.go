package models

import "github.com/shopspring/decimal"

// WalletPolicy is the parsed, read-only rule set bounding coin redemption.
// It is fetched from the storefront core and never mutated here.
type WalletPolicy struct {
	MinCartValue        decimal.Decimal `json:"min_cart_value"`
	CoinToCurrencyRatio decimal.Decimal `json:"coin_to_currency_ratio"`
	MaxRedeemableCoins  int64           `json:"max_redeemable_coins"`
	MaxUsagePercentage  decimal.Decimal `json:"max_usage_percentage"`
}

// WalletPolicyPayload is the wire shape of GET /wallet/settings: every
// field arrives as a decimal-bearing string and must be parsed before use.
type WalletPolicyPayload struct {
	MinCartValue        string `json:"minCartValue"`
	CoinToCurrencyRatio string `json:"coinToCurrencyRatio"`
	MaxRedeemableCoins  string `json:"maxRedeemableCoins"`
	MaxUsagePercentage  string `json:"maxUsagePercentage"`
}

// RedemptionResult is derived, never persisted; it is recomputed on every
// subtotal, balance, or policy change. Invariant: Discount equals
// CoinsToUse * CoinToCurrencyRatio rounded to 2 decimals.
type RedemptionResult struct {
	CoinsToUse int64           `json:"coins_to_use"`
	Discount   decimal.Decimal `json:"discount"`
	Applicable bool            `json:"applicable"`
}

// RedemptionPreview is what the checkout screen renders: the local
// calculator's result, optionally overruled by the core's validation.
type RedemptionPreview struct {
	Result  RedemptionResult `json:"result"`
	Balance int64            `json:"balance"`
	Message string           `json:"message,omitempty"`
}

type RedemptionPreviewRequest struct {
	Subtotal       float64  `json:"subtotal" validate:"required,gt=0"`
	RequestedCoins *int64   `json:"requested_coins" validate:"omitempty,min=0"`
	ServerValidate bool     `json:"server_validate"`
	Categories     []string `json:"categories"`
}

// PlaceOrderRequest carries the same redemption inputs the preview used.
// RequestedCoins must match the previewed amount, or the frozen redemption
// would differ from the number the user saw.
type PlaceOrderRequest struct {
	Subtotal       float64 `json:"subtotal" validate:"required,gt=0"`
	UseWallet      bool    `json:"use_wallet"`
	RequestedCoins *int64  `json:"requested_coins" validate:"omitempty,min=0"`
}

// OrderConfirmation freezes the redemption values that were applied to
// the order at submission time.
type OrderConfirmation struct {
	OrderID    int64           `json:"order_id"`
	Amount     decimal.Decimal `json:"amount"`
	Discount   decimal.Decimal `json:"discount"`
	CoinsUsed  int64           `json:"coins_used"`
	WalletUsed bool            `json:"wallet_used"`
}
