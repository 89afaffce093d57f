package checkout_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/helmcraft/storefront/core/checkout"
)

// mockAPI implements checkout.API for testing.
type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Get(ctx context.Context, path string, result any) error {
	args := m.Called(ctx, path, result)
	return args.Error(0)
}

func (m *mockAPI) Post(ctx context.Context, path string, body, result any) error {
	args := m.Called(ctx, path, body, result)
	return args.Error(0)
}

func (m *mockAPI) Put(ctx context.Context, path string, body, result any) error {
	args := m.Called(ctx, path, body, result)
	return args.Error(0)
}

func TestNewService(t *testing.T) {
	t.Parallel()

	_, err := checkout.NewService(nil)
	assert.ErrorIs(t, err, checkout.ErrMissingClient)
}

func TestService_PlaceOrder(t *testing.T) {
	t.Parallel()

	t.Run("returns the created order with the gateway order id", func(t *testing.T) {
		t.Parallel()

		client := &mockAPI{}
		client.On("Post", mock.Anything, "/orders", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				order := args.Get(3).(*checkout.Order)
				order.ID = "o1"
				order.GatewayOrderID = "order_R5aB2"
				order.Total = 3776
			}).
			Return(nil)

		svc, err := checkout.NewService(client)
		require.NoError(t, err)

		order, err := svc.PlaceOrder(context.Background(), checkout.PlaceOrderRequest{
			AddressLine: "12 MG Road",
			City:        "Bengaluru",
			State:       "KA",
			PostalCode:  "560001",
		})
		require.NoError(t, err)
		assert.Equal(t, "o1", order.ID)
		assert.Equal(t, "order_R5aB2", order.GatewayOrderID)
	})
}

func TestService_VerifyPayment(t *testing.T) {
	t.Parallel()

	t.Run("forwards all three correlation identifiers", func(t *testing.T) {
		t.Parallel()

		client := &mockAPI{}
		client.On("Post", mock.Anything, "/orders/verify-payment", map[string]string{
			"razorpayOrderId":   "order_R5aB2",
			"razorpayPaymentId": "pay_X1",
			"razorpaySignature": "sig==",
		}, mock.Anything).
			Run(func(args mock.Arguments) {
				order := args.Get(3).(*checkout.Order)
				order.ID = "o1"
				order.Status = checkout.OrderPaid
			}).
			Return(nil)

		svc, err := checkout.NewService(client)
		require.NoError(t, err)

		order, err := svc.VerifyPayment(context.Background(), "order_R5aB2", "pay_X1", "sig==")
		require.NoError(t, err)
		assert.Equal(t, checkout.OrderPaid, order.Status)
	})

	t.Run("propagates verification failure", func(t *testing.T) {
		t.Parallel()

		client := &mockAPI{}
		client.On("Post", mock.Anything, "/orders/verify-payment", mock.Anything, mock.Anything).
			Return(errors.New("signature mismatch"))

		svc, err := checkout.NewService(client)
		require.NoError(t, err)

		_, err = svc.VerifyPayment(context.Background(), "o", "p", "s")
		assert.Error(t, err)
	})
}

func TestService_CancelOrder(t *testing.T) {
	t.Parallel()

	client := &mockAPI{}
	client.On("Put", mock.Anything, "/orders/o1/cancel", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			order := args.Get(3).(*checkout.Order)
			order.ID = "o1"
			order.Status = checkout.OrderCancelled
		}).
		Return(nil)

	svc, err := checkout.NewService(client)
	require.NoError(t, err)

	order, err := svc.CancelOrder(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, checkout.OrderCancelled, order.Status)
}
