package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/errors"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/metrics"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/wallet"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/pkg/storecore"
	"github.com/shopspring/decimal"
)

type CheckoutService struct {
	core   CoreClient
	wallet *WalletService
}

func NewCheckoutService(core CoreClient, walletService *WalletService) *CheckoutService {
	return &CheckoutService{core: core, wallet: walletService}
}

// PlaceOrder creates the order on the core, freezing the redemption values
// with the same calculator the preview used. The wallet ledger entry is
// posted afterwards on a best-effort basis: a failed redeem call is logged
// and the order stands; order success takes priority over wallet
// bookkeeping.
func (s *CheckoutService) PlaceOrder(ctx context.Context, token string, req *models.PlaceOrderRequest) (*models.OrderConfirmation, error) {

	subtotal := decimal.NewFromFloat(req.Subtotal)
	result := models.RedemptionResult{Discount: decimal.Zero}

	if req.UseWallet {

		balance, err := s.wallet.Balance(ctx, token)
		if err != nil {
			return nil, err
		}

		policy, err := s.wallet.Policy(ctx, token)
		if err != nil {
			return nil, err
		}

		result = wallet.ComputeRedemption(subtotal, capBalance(balance, req.RequestedCoins), policy)
		metrics.ObserveRedemption(result.Applicable)
	}

	order, err := s.core.CreateOrder(ctx, token, storecore.CreateOrderRequest{
		Amount:    req.Subtotal,
		Discount:  result.Discount.InexactFloat64(),
		CoinsUsed: result.CoinsToUse,
	})
	if err != nil {
		return nil, errors.UpstreamError("Failed to place order").WithError(err)
	}

	if result.Applicable {

		redeemErr := s.core.Redeem(ctx, token, storecore.RedeemRequest{
			Amount:        result.Discount.InexactFloat64(),
			ReferenceType: "ORDER",
			ReferenceID:   strconv.FormatInt(order.ID, 10),
			Description:   fmt.Sprintf("Coins redeemed against order #%d", order.ID),
		})
		if redeemErr != nil {
			// the order already exists; only the wallet ledger is behind
			slog.Warn("Wallet redeem failed after order placement, order stands",
				slog.Int64("order_id", order.ID),
				slog.String("error", redeemErr.Error()))
		}
	}

	return &models.OrderConfirmation{
		OrderID:    order.ID,
		Amount:     subtotal,
		Discount:   result.Discount,
		CoinsUsed:  result.CoinsToUse,
		WalletUsed: result.Applicable,
	}, nil
}
