package service_test

import (
	"testing"

	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/appstate"
	"github.com/aryanmalhotraofficial/storefront-sync-platform/internal/models"
	service "github.com/aryanmalhotraofficial/storefront-sync-platform/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestCartServiceAddItem(t *testing.T) {

	t.Run("Sanitizes Product Name And Defaults Quantity", func(t *testing.T) {
		mockStore := &MockGuestStore{}
		state := appstate.New()
		svc := service.NewCartService(mockStore, state)

		clean := models.ProductSnapshot{ID: 5, Name: "Mug", Price: 99}
		mockStore.On("AddCartItem", mock.Anything, testDeviceID, clean, 1).
			Return([]models.LocalCartEntry{{Product: clean, Quantity: 1}}).Once()

		items := svc.AddItem(t.Context(), testDeviceID, &models.AddCartItemRequest{
			Product: models.ProductSnapshot{ID: 5, Name: "<b>Mug</b>", Price: 99},
		})

		assert.Len(t, items, 1)
		assert.Equal(t, "Mug", items[0].Product.Name)
		mockStore.AssertExpectations(t)
	})

	t.Run("Updates Cart Badge Count", func(t *testing.T) {
		mockStore := &MockGuestStore{}
		state := appstate.New()
		svc := service.NewCartService(mockStore, state)

		product := models.ProductSnapshot{ID: 5, Name: "Mug"}
		mockStore.On("AddCartItem", mock.Anything, testDeviceID, product, 2).
			Return([]models.LocalCartEntry{
				{Product: product, Quantity: 2},
				{Product: models.ProductSnapshot{ID: 9}, Quantity: 1},
			}).Once()

		svc.AddItem(t.Context(), testDeviceID, &models.AddCartItemRequest{Product: product, Quantity: 2})

		assert.Equal(t, 2, state.Snapshot().CartCount)
	})
}

func TestCartServiceRemoveItem(t *testing.T) {
	mockStore := &MockGuestStore{}
	state := appstate.New()
	svc := service.NewCartService(mockStore, state)

	state.SetCartCount(2)

	mockStore.On("RemoveCartItem", mock.Anything, testDeviceID, int64(5)).
		Return([]models.LocalCartEntry{{Product: models.ProductSnapshot{ID: 9}, Quantity: 1}}).Once()

	items := svc.RemoveItem(t.Context(), testDeviceID, 5)

	assert.Len(t, items, 1)
	assert.Equal(t, 1, state.Snapshot().CartCount)
}

func TestCartServiceClear(t *testing.T) {
	mockStore := &MockGuestStore{}
	state := appstate.New()
	svc := service.NewCartService(mockStore, state)

	state.SetCartCount(3)
	mockStore.On("ClearCart", mock.Anything, testDeviceID).Once()

	svc.Clear(t.Context(), testDeviceID)

	assert.Equal(t, 0, state.Snapshot().CartCount)
	mockStore.AssertExpectations(t)
}
