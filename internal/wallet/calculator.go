// Package wallet computes how many loyalty coins may be applied to a cart
// and what discount they yield. The calculator is pure: checkout previews
// and final order submission call the exact same function, so the number
// the user saw is the number frozen into the order.
package wallet

import (
	"fmt"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// ParsePolicy converts the core API's decimal-bearing strings into a usable
// policy. A payload that does not parse, or violates the policy bounds
// (ratio > 0, usage percentage within [0,100], non-negative coin cap), is
// rejected; callers treat that as "no policy, redemption not applicable".
func ParsePolicy(payload models.WalletPolicyPayload) (*models.WalletPolicy, error) {

	minCartValue, err := decimal.NewFromString(payload.MinCartValue)
	if err != nil {
		return nil, fmt.Errorf("invalid minCartValue %q: %w", payload.MinCartValue, err)
	}

	ratio, err := decimal.NewFromString(payload.CoinToCurrencyRatio)
	if err != nil {
		return nil, fmt.Errorf("invalid coinToCurrencyRatio %q: %w", payload.CoinToCurrencyRatio, err)
	}

	maxCoins, err := decimal.NewFromString(payload.MaxRedeemableCoins)
	if err != nil {
		return nil, fmt.Errorf("invalid maxRedeemableCoins %q: %w", payload.MaxRedeemableCoins, err)
	}

	maxPct, err := decimal.NewFromString(payload.MaxUsagePercentage)
	if err != nil {
		return nil, fmt.Errorf("invalid maxUsagePercentage %q: %w", payload.MaxUsagePercentage, err)
	}

	policy := &models.WalletPolicy{
		MinCartValue:        minCartValue,
		CoinToCurrencyRatio: ratio,
		MaxRedeemableCoins:  maxCoins.IntPart(),
		MaxUsagePercentage:  maxPct,
	}

	if !validPolicy(policy) {
		return nil, fmt.Errorf("policy out of bounds: ratio=%s pct=%s maxCoins=%d",
			ratio, maxPct, policy.MaxRedeemableCoins)
	}

	return policy, nil
}

func validPolicy(policy *models.WalletPolicy) bool {
	return policy.CoinToCurrencyRatio.IsPositive() &&
		!policy.MaxUsagePercentage.IsNegative() &&
		policy.MaxUsagePercentage.LessThanOrEqual(oneHundred) &&
		policy.MaxRedeemableCoins >= 0
}

// ComputeRedemption returns the coins applicable to the given subtotal and
// the resulting discount. It never errors: inputs that rule redemption out
// (no balance, empty cart, subtotal below the policy minimum, absent or
// invalid policy) produce a zero, non-applicable result.
func ComputeRedemption(subtotal decimal.Decimal, balance int64, policy *models.WalletPolicy) models.RedemptionResult {

	notApplicable := models.RedemptionResult{CoinsToUse: 0, Discount: decimal.Zero, Applicable: false}

	if balance <= 0 || !subtotal.IsPositive() || policy == nil {
		return notApplicable
	}

	if subtotal.LessThan(policy.MinCartValue) {
		return notApplicable
	}

	if !validPolicy(policy) {
		return notApplicable
	}

	maxDiscountByPercentage := subtotal.Mul(policy.MaxUsagePercentage).Div(oneHundred)

	maxCoinsByPercentage := maxDiscountByPercentage.Div(policy.CoinToCurrencyRatio).Floor().IntPart()
	if maxCoinsByPercentage < 0 {
		maxCoinsByPercentage = 0
	}

	coinsToUse := min(balance, policy.MaxRedeemableCoins, maxCoinsByPercentage)
	if coinsToUse < 0 {
		coinsToUse = 0
	}

	discount := decimal.NewFromInt(coinsToUse).Mul(policy.CoinToCurrencyRatio).Round(2)

	return models.RedemptionResult{
		CoinsToUse: coinsToUse,
		Discount:   discount,
		Applicable: coinsToUse > 0 && discount.IsPositive(),
	}
}
