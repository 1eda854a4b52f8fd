package service

import (
	"context"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/pkg/storecore"
)

// CoreClient is the slice of the storefront core API this service layer
// consumes. *storecore.Client satisfies it; tests substitute a mock.
type CoreClient interface {
	GetCart(ctx context.Context, token string) ([]models.RemoteCartItem, error)
	CreateCartItem(ctx context.Context, token string, productID int64, quantity int) (*models.RemoteCartItem, error)
	UpdateCartItem(ctx context.Context, token string, id int64, quantity int) (*models.RemoteCartItem, error)
	GetWishlist(ctx context.Context, token string) ([]models.RemoteWishlistItem, error)
	CreateWishlistItem(ctx context.Context, token string, productID int64) (*models.RemoteWishlistItem, error)
	GetWalletBalance(ctx context.Context, token string) (int64, error)
	GetWalletPolicy(ctx context.Context, token string) (models.WalletPolicyPayload, error)
	ValidateRedemption(ctx context.Context, token string, req storecore.ValidateRedemptionRequest) (*storecore.ValidateRedemptionResponse, error)
	Redeem(ctx context.Context, token string, req storecore.RedeemRequest) error
	CreateOrder(ctx context.Context, token string, req storecore.CreateOrderRequest) (*storecore.Order, error)
}
