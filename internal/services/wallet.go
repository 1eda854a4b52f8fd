package service

import (
	"context"
	"log/slog"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/errors"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/metrics"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/wallet"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/pkg/storecore"
	"github.com/shopspring/decimal"
)

type WalletService struct {
	core CoreClient
}

// capBalance bounds the calculator's balance input by a user-requested coin
// amount. Preview and order placement both apply it, so a capped preview and
// the order it leads to freeze the same redemption.
func capBalance(balance int64, requested *int64) int64 {
	if requested != nil && *requested < balance {
		return *requested
	}

	return balance
}

func NewWalletService(core CoreClient) *WalletService {
	return &WalletService{core: core}
}

func (s *WalletService) Balance(ctx context.Context, token string) (int64, error) {

	balance, err := s.core.GetWalletBalance(ctx, token)
	if err != nil {
		return 0, errors.UpstreamError("Failed to fetch wallet balance").WithError(err)
	}

	return balance, nil
}

// Policy fetches and parses the wallet settings. A payload that does not
// parse is logged and returned as a nil policy, which the calculator treats
// as "redemption not applicable"; a broken settings endpoint must not take
// checkout down.
func (s *WalletService) Policy(ctx context.Context, token string) (*models.WalletPolicy, error) {

	payload, err := s.core.GetWalletPolicy(ctx, token)
	if err != nil {
		return nil, errors.UpstreamError("Failed to fetch wallet settings").WithError(err)
	}

	policy, err := wallet.ParsePolicy(payload)
	if err != nil {
		slog.Warn("Unusable wallet policy, redemption disabled", slog.String("error", err.Error()))
		return nil, nil
	}

	return policy, nil
}

// Preview computes the redemption for the current subtotal. When the user
// has typed a coin amount below the computed maximum, the balance is capped
// at that amount and the same calculator re-run; preview and submission
// must never diverge by using different arithmetic.
//
// With ServerValidate set, the core's verdict overrules the local result:
// policy data may have changed server-side since it was fetched.
func (s *WalletService) Preview(ctx context.Context, token string, req *models.RedemptionPreviewRequest) (*models.RedemptionPreview, error) {

	balance, err := s.Balance(ctx, token)
	if err != nil {
		return nil, err
	}

	policy, err := s.Policy(ctx, token)
	if err != nil {
		return nil, err
	}

	result := wallet.ComputeRedemption(decimal.NewFromFloat(req.Subtotal), capBalance(balance, req.RequestedCoins), policy)
	metrics.ObserveRedemption(result.Applicable)

	preview := &models.RedemptionPreview{
		Result:  result,
		Balance: balance,
	}

	if !req.ServerValidate || !result.Applicable {
		return preview, nil
	}

	validation, err := s.core.ValidateRedemption(ctx, token, storecore.ValidateRedemptionRequest{
		Amount:     req.Subtotal,
		CoinsToUse: result.CoinsToUse,
		Categories: req.Categories,
	})
	if err != nil {
		return nil, errors.UpstreamError("Failed to validate redemption").WithError(err)
	}

	if !validation.Valid {
		preview.Result = models.RedemptionResult{CoinsToUse: 0, Discount: decimal.Zero, Applicable: false}
		preview.Message = validation.Message
	}

	return preview, nil
}
