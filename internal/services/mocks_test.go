package service_test

import (
	"context"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/pkg/storecore"
	"github.com/stretchr/testify/mock"
)

type MockCoreClient struct {
	mock.Mock
}

func (m *MockCoreClient) GetCart(ctx context.Context, token string) ([]models.RemoteCartItem, error) {
	args := m.Called(ctx, token)

	if v := args.Get(0); v != nil {
		return v.([]models.RemoteCartItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCoreClient) CreateCartItem(ctx context.Context, token string, productID int64, quantity int) (*models.RemoteCartItem, error) {
	args := m.Called(ctx, token, productID, quantity)

	if v := args.Get(0); v != nil {
		return v.(*models.RemoteCartItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCoreClient) UpdateCartItem(ctx context.Context, token string, id int64, quantity int) (*models.RemoteCartItem, error) {
	args := m.Called(ctx, token, id, quantity)

	if v := args.Get(0); v != nil {
		return v.(*models.RemoteCartItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCoreClient) GetWishlist(ctx context.Context, token string) ([]models.RemoteWishlistItem, error) {
	args := m.Called(ctx, token)

	if v := args.Get(0); v != nil {
		return v.([]models.RemoteWishlistItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCoreClient) CreateWishlistItem(ctx context.Context, token string, productID int64) (*models.RemoteWishlistItem, error) {
	args := m.Called(ctx, token, productID)

	if v := args.Get(0); v != nil {
		return v.(*models.RemoteWishlistItem), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCoreClient) GetWalletBalance(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)

	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCoreClient) GetWalletPolicy(ctx context.Context, token string) (models.WalletPolicyPayload, error) {
	args := m.Called(ctx, token)

	return args.Get(0).(models.WalletPolicyPayload), args.Error(1)
}

func (m *MockCoreClient) ValidateRedemption(ctx context.Context, token string, req storecore.ValidateRedemptionRequest) (*storecore.ValidateRedemptionResponse, error) {
	args := m.Called(ctx, token, req)

	if v := args.Get(0); v != nil {
		return v.(*storecore.ValidateRedemptionResponse), args.Error(1)
	}

	return nil, args.Error(1)
}

func (m *MockCoreClient) Redeem(ctx context.Context, token string, req storecore.RedeemRequest) error {
	args := m.Called(ctx, token, req)

	return args.Error(0)
}

func (m *MockCoreClient) CreateOrder(ctx context.Context, token string, req storecore.CreateOrderRequest) (*storecore.Order, error) {
	args := m.Called(ctx, token, req)

	if v := args.Get(0); v != nil {
		return v.(*storecore.Order), args.Error(1)
	}

	return nil, args.Error(1)
}

type MockGuestStore struct {
	mock.Mock
}

func (m *MockGuestStore) GetCartItems(ctx context.Context, deviceID string) []models.LocalCartEntry {
	args := m.Called(ctx, deviceID)

	if v := args.Get(0); v != nil {
		return v.([]models.LocalCartEntry)
	}

	return nil
}

func (m *MockGuestStore) AddCartItem(ctx context.Context, deviceID string, product models.ProductSnapshot, quantity int) []models.LocalCartEntry {
	args := m.Called(ctx, deviceID, product, quantity)

	if v := args.Get(0); v != nil {
		return v.([]models.LocalCartEntry)
	}

	return nil
}

func (m *MockGuestStore) UpdateCartQuantity(ctx context.Context, deviceID string, productID int64, quantity int) []models.LocalCartEntry {
	args := m.Called(ctx, deviceID, productID, quantity)

	if v := args.Get(0); v != nil {
		return v.([]models.LocalCartEntry)
	}

	return nil
}

func (m *MockGuestStore) RemoveCartItem(ctx context.Context, deviceID string, productID int64) []models.LocalCartEntry {
	args := m.Called(ctx, deviceID, productID)

	if v := args.Get(0); v != nil {
		return v.([]models.LocalCartEntry)
	}

	return nil
}

func (m *MockGuestStore) ClearCart(ctx context.Context, deviceID string) {
	m.Called(ctx, deviceID)
}

func (m *MockGuestStore) GetWishlistItems(ctx context.Context, deviceID string) []models.LocalWishlistEntry {
	args := m.Called(ctx, deviceID)

	if v := args.Get(0); v != nil {
		return v.([]models.LocalWishlistEntry)
	}

	return nil
}

func (m *MockGuestStore) AddWishlistItem(ctx context.Context, deviceID string, product models.ProductSnapshot) []models.LocalWishlistEntry {
	args := m.Called(ctx, deviceID, product)

	if v := args.Get(0); v != nil {
		return v.([]models.LocalWishlistEntry)
	}

	return nil
}

func (m *MockGuestStore) RemoveWishlistItem(ctx context.Context, deviceID string, productID int64) []models.LocalWishlistEntry {
	args := m.Called(ctx, deviceID, productID)

	if v := args.Get(0); v != nil {
		return v.([]models.LocalWishlistEntry)
	}

	return nil
}

func (m *MockGuestStore) ClearWishlist(ctx context.Context, deviceID string) {
	m.Called(ctx, deviceID)
}
