package service_test

import (
	"errors"
	"testing"
	"time"

	appErrors "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/errors"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	service "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testDeviceID = "device-42"
	testToken    = "session-token"
)

func snapshot(id int64) models.ProductSnapshot {
	return models.ProductSnapshot{ID: id, Name: "Product", Price: 50}
}

func TestReconciliationRun(t *testing.T) {

	t.Run("Success - Create, Update, Wishlist Dedup", func(t *testing.T) {
		// Arrange
		mockStore := &MockGuestStore{}
		mockCore := &MockCoreClient{}
		svc := service.NewReconciliationService(mockStore, mockCore)

		added := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

		mockCore.On("GetCart", mock.Anything, testToken).Return([]models.RemoteCartItem{
			{ID: 101, UserID: 7, Product: snapshot(5), Quantity: 1},
		}, nil).Once()
		mockCore.On("GetWishlist", mock.Anything, testToken).Return([]models.RemoteWishlistItem{
			{ID: 55, UserID: 7, ProductID: 7, Product: snapshot(7), DateAdded: added},
		}, nil).Once()

		mockStore.On("GetCartItems", mock.Anything, testDeviceID).Return([]models.LocalCartEntry{
			{Product: snapshot(5), Quantity: 3},
			{Product: snapshot(9), Quantity: 2},
		}).Once()
		mockStore.On("GetWishlistItems", mock.Anything, testDeviceID).Return([]models.LocalWishlistEntry{
			{ProductID: 7, Product: snapshot(7), DateAdded: added},
			{ProductID: 8, Product: snapshot(8), DateAdded: added},
		}).Once()
		mockStore.On("ClearCart", mock.Anything, testDeviceID).Once()
		mockStore.On("ClearWishlist", mock.Anything, testDeviceID).Once()

		mockCore.On("UpdateCartItem", mock.Anything, testToken, int64(101), 3).
			Return(&models.RemoteCartItem{ID: 101, Quantity: 3}, nil).Once()
		mockCore.On("CreateCartItem", mock.Anything, testToken, int64(9), 2).
			Return(&models.RemoteCartItem{ID: 202, Quantity: 2}, nil).Once()
		mockCore.On("CreateWishlistItem", mock.Anything, testToken, int64(8)).
			Return(&models.RemoteWishlistItem{ID: 66, ProductID: 8}, nil).Once()

		// Act
		summary, err := svc.Run(t.Context(), testDeviceID, testToken)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 1, summary.CartCreated)
		assert.Equal(t, 1, summary.CartUpdated)
		assert.Equal(t, 1, summary.WishlistCreated)
		assert.Equal(t, 0, summary.Failed)
		mockStore.AssertExpectations(t)
		mockCore.AssertExpectations(t)
	})

	t.Run("No Push When Server Quantity Already Higher", func(t *testing.T) {
		mockStore := &MockGuestStore{}
		mockCore := &MockCoreClient{}
		svc := service.NewReconciliationService(mockStore, mockCore)

		mockCore.On("GetCart", mock.Anything, testToken).Return([]models.RemoteCartItem{
			{ID: 101, UserID: 7, Product: snapshot(5), Quantity: 6},
		}, nil).Once()
		mockCore.On("GetWishlist", mock.Anything, testToken).Return([]models.RemoteWishlistItem{}, nil).Once()

		mockStore.On("GetCartItems", mock.Anything, testDeviceID).Return([]models.LocalCartEntry{
			{Product: snapshot(5), Quantity: 2},
		}).Once()
		mockStore.On("GetWishlistItems", mock.Anything, testDeviceID).Return([]models.LocalWishlistEntry{}).Once()
		mockStore.On("ClearCart", mock.Anything, testDeviceID).Once()
		mockStore.On("ClearWishlist", mock.Anything, testDeviceID).Once()

		summary, err := svc.Run(t.Context(), testDeviceID, testToken)

		require.NoError(t, err)
		assert.Equal(t, 0, summary.CartCreated)
		assert.Equal(t, 0, summary.CartUpdated)
		mockCore.AssertNotCalled(t, "UpdateCartItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		mockCore.AssertNotCalled(t, "CreateCartItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fetch Failure Leaves Guest Store Untouched", func(t *testing.T) {
		mockStore := &MockGuestStore{}
		mockCore := &MockCoreClient{}
		svc := service.NewReconciliationService(mockStore, mockCore)

		fetchErr := errors.New("core api unreachable")
		mockCore.On("GetCart", mock.Anything, testToken).Return(nil, fetchErr).Once()
		mockCore.On("GetWishlist", mock.Anything, testToken).Return([]models.RemoteWishlistItem{}, nil).Once()

		summary, err := svc.Run(t.Context(), testDeviceID, testToken)

		require.Error(t, err)
		assert.Nil(t, summary)

		appErr, ok := appErrors.IsAppError(err)
		require.True(t, ok)
		assert.Equal(t, appErrors.ErrCodeUpstream, appErr.Code)
		assert.ErrorIs(t, err, fetchErr)
		mockStore.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)
		mockStore.AssertNotCalled(t, "GetCartItems", mock.Anything, mock.Anything)
	})

	t.Run("Single Push Failure Does Not Block Siblings", func(t *testing.T) {
		mockStore := &MockGuestStore{}
		mockCore := &MockCoreClient{}
		svc := service.NewReconciliationService(mockStore, mockCore)

		mockCore.On("GetCart", mock.Anything, testToken).Return([]models.RemoteCartItem{}, nil).Once()
		mockCore.On("GetWishlist", mock.Anything, testToken).Return([]models.RemoteWishlistItem{}, nil).Once()

		mockStore.On("GetCartItems", mock.Anything, testDeviceID).Return([]models.LocalCartEntry{
			{Product: snapshot(5), Quantity: 1},
			{Product: snapshot(9), Quantity: 2},
		}).Once()
		mockStore.On("GetWishlistItems", mock.Anything, testDeviceID).Return([]models.LocalWishlistEntry{}).Once()
		mockStore.On("ClearCart", mock.Anything, testDeviceID).Once()
		mockStore.On("ClearWishlist", mock.Anything, testDeviceID).Once()

		mockCore.On("CreateCartItem", mock.Anything, testToken, int64(5), 1).
			Return(nil, errors.New("out of stock")).Once()
		mockCore.On("CreateCartItem", mock.Anything, testToken, int64(9), 2).
			Return(&models.RemoteCartItem{ID: 202}, nil).Once()

		summary, err := svc.Run(t.Context(), testDeviceID, testToken)

		// the run itself succeeds; the loss is recorded, and the guest
		// store was already cleared before the failed push
		require.NoError(t, err)
		assert.Equal(t, 1, summary.CartCreated)
		assert.Equal(t, 1, summary.Failed)
		mockStore.AssertCalled(t, "ClearCart", mock.Anything, testDeviceID)
		mockCore.AssertExpectations(t)
	})
}
