package order

import (
	"context"
	"errors"
	"testing"

	"arenapix-be/internal/openpix"
	"arenapix-be/internal/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateFromCart(ctx context.Context, userID uint) (*Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) SetCharge(ctx context.Context, orderID uuid.UUID, transactionID, brCode, qrCodeImage string) error {
	args := m.Called(ctx, orderID, transactionID, brCode, qrCodeImage)
	return args.Error(0)
}

func (m *MockRepository) UpdateStatusByTransactionID(ctx context.Context, transactionID, status string) error {
	args := m.Called(ctx, transactionID, status)
	return args.Error(0)
}

func (m *MockRepository) GetOrders(ctx context.Context, userID uint, filter Filter, limit, page int) ([]*Order, error) {
	args := m.Called(ctx, userID, filter, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByTransactionID(ctx context.Context, transactionID string) (*Order, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

// MockGateway is a mock implementation of payment.Gateway
type MockGateway struct {
	mock.Mock
}

var _ payment.Gateway = (*MockGateway)(nil)

func (m *MockGateway) CreateSubAccount(ctx context.Context, name, pixKey string) (*openpix.SubAccount, error) {
	args := m.Called(ctx, name, pixKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openpix.SubAccount), args.Error(1)
}

func (m *MockGateway) GetSubAccounts(ctx context.Context) ([]openpix.SubAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]openpix.SubAccount), args.Error(1)
}

func (m *MockGateway) UpdateSubAccount(ctx context.Context, pixKey, name string) (*openpix.SubAccount, error) {
	args := m.Called(ctx, pixKey, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openpix.SubAccount), args.Error(1)
}

func (m *MockGateway) DeleteSubAccount(ctx context.Context, pixKey string) error {
	args := m.Called(ctx, pixKey)
	return args.Error(0)
}

func (m *MockGateway) EnsureSubAccount(ctx context.Context, name, pixKey string) (*openpix.SubAccount, error) {
	args := m.Called(ctx, name, pixKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openpix.SubAccount), args.Error(1)
}

func (m *MockGateway) GetSubAccountBalance(ctx context.Context, pixKey string) (int64, error) {
	args := m.Called(ctx, pixKey)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockGateway) Withdraw(ctx context.Context, pixKey string, value *int64) (*openpix.Withdrawal, error) {
	args := m.Called(ctx, pixKey, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openpix.Withdrawal), args.Error(1)
}

func (m *MockGateway) CreateChargeWithSplit(ctx context.Context, input openpix.ChargeInput) (*openpix.Charge, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openpix.Charge), args.Error(1)
}

func (m *MockGateway) GetCharge(ctx context.Context, id string) (*openpix.Charge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openpix.Charge), args.Error(1)
}

func (m *MockGateway) ListTransactions(ctx context.Context, opts openpix.ListTransactionsOptions) (*openpix.TransactionPage, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*openpix.TransactionPage), args.Error(1)
}

func TestService_Checkout(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)
	orderID := uuid.New()

	freshOrder := func() *Order {
		return &Order{
			ID:     orderID,
			UserID: userID,
			Total:  10000,
			Status: "Aguardando Pagamento",
			Items: []OrderItem{
				{ProductID: 1, ProductName: "Camisa", Quantity: 2, Price: 3000, SellerPixKey: "a@pix.com"},
				{ProductID: 2, ProductName: "Meião", Quantity: 1, Price: 4000, SellerPixKey: "b@pix.com"},
			},
		}
	}

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockGw := new(MockGateway)
		svc := NewService(mockRepo, mockGw, 15)

		mockRepo.On("CreateFromCart", ctx, userID).Return(freshOrder(), nil)
		mockGw.On("CreateChargeWithSplit", ctx, mock.MatchedBy(func(input openpix.ChargeInput) bool {
			if input.Value != 10000 || input.CorrelationID != orderID.String() {
				return false
			}
			// seller a: 6000 - 15% = 5100, seller b: 4000 - 15% = 3400
			return len(input.Splits) == 2 &&
				input.Splits[0] == openpix.Split{PixKey: "a@pix.com", Value: 5100} &&
				input.Splits[1] == openpix.Split{PixKey: "b@pix.com", Value: 3400}
		})).Return(&openpix.Charge{
			TransactionID: "txid-abc",
			Status:        openpix.ChargeStatusActive,
			BrCode:        "00020126...",
			QRCodeImage:   "https://img/qr.png",
		}, nil)
		mockRepo.On("SetCharge", ctx, orderID, "txid-abc", "00020126...", "https://img/qr.png").Return(nil)

		o, err := svc.Checkout(ctx, userID)
		require.NoError(t, err)
		require.NotNil(t, o.TransactionID)
		assert.Equal(t, "txid-abc", *o.TransactionID)
		assert.Equal(t, "00020126...", o.BrCode)
		assert.Equal(t, "Aguardando Pagamento", o.Status)
		mockRepo.AssertExpectations(t)
		mockGw.AssertExpectations(t)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockGw := new(MockGateway)
		svc := NewService(mockRepo, mockGw, 15)

		mockRepo.On("CreateFromCart", ctx, userID).Return(nil, ErrCartEmpty)

		_, err := svc.Checkout(ctx, userID)
		assert.ErrorIs(t, err, ErrCartEmpty)
		mockGw.AssertNotCalled(t, "CreateChargeWithSplit", mock.Anything, mock.Anything)
	})

	t.Run("GatewayFailure", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockGw := new(MockGateway)
		svc := NewService(mockRepo, mockGw, 15)

		mockRepo.On("CreateFromCart", ctx, userID).Return(freshOrder(), nil)
		mockGw.On("CreateChargeWithSplit", ctx, mock.Anything).Return(nil, errors.New("provider down"))

		_, err := svc.Checkout(ctx, userID)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "SetCharge", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnauthenticatedUser", func(t *testing.T) {
		svc := NewService(new(MockRepository), new(MockGateway), 15)

		_, err := svc.Checkout(ctx, 0)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestService_BuildSplits(t *testing.T) {
	svc := NewService(new(MockRepository), new(MockGateway), 10).(*service)

	t.Run("GroupsBySeller", func(t *testing.T) {
		splits := svc.buildSplits([]OrderItem{
			{Quantity: 1, Price: 1000, SellerPixKey: "a@pix.com"},
			{Quantity: 2, Price: 500, SellerPixKey: "b@pix.com"},
			{Quantity: 1, Price: 2000, SellerPixKey: "a@pix.com"},
		})

		require.Len(t, splits, 2)
		assert.Equal(t, openpix.Split{PixKey: "a@pix.com", Value: 2700}, splits[0])
		assert.Equal(t, openpix.Split{PixKey: "b@pix.com", Value: 900}, splits[1])
	})

	t.Run("SplitSumNeverExceedsTotal", func(t *testing.T) {
		items := []OrderItem{
			{Quantity: 3, Price: 333, SellerPixKey: "a@pix.com"},
			{Quantity: 1, Price: 1, SellerPixKey: "b@pix.com"},
		}
		var total int64
		for _, item := range items {
			total += int64(item.Quantity) * item.Price
		}

		var sum int64
		for _, s := range svc.buildSplits(items) {
			sum += s.Value
		}
		assert.LessOrEqual(t, sum, total)
	})

	t.Run("ZeroFeeKeepsFullShare", func(t *testing.T) {
		noFee := NewService(new(MockRepository), new(MockGateway), 0).(*service)
		splits := noFee.buildSplits([]OrderItem{{Quantity: 1, Price: 5000, SellerPixKey: "a@pix.com"}})
		require.Len(t, splits, 1)
		assert.Equal(t, int64(5000), splits[0].Value)
	})
}

// Simulates the full payment flow: checkout stores the transaction id, then a
// provider callback confirms the charge through the same service.
func TestService_CheckoutThenWebhookConfirmation(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)
	orderID := uuid.New()

	mockRepo := new(MockRepository)
	mockGw := new(MockGateway)
	svc := NewService(mockRepo, mockGw, 15)

	mockRepo.On("CreateFromCart", ctx, userID).Return(&Order{
		ID:     orderID,
		UserID: userID,
		Total:  5000,
		Status: "Aguardando Pagamento",
		Items:  []OrderItem{{Quantity: 1, Price: 5000, SellerPixKey: "a@pix.com"}},
	}, nil)
	mockGw.On("CreateChargeWithSplit", ctx, mock.Anything).Return(&openpix.Charge{
		TransactionID: "txid-flow",
		BrCode:        "br",
		QRCodeImage:   "qr",
	}, nil)
	mockRepo.On("SetCharge", ctx, orderID, "txid-flow", "br", "qr").Return(nil)
	mockRepo.On("UpdateStatusByTransactionID", ctx, "txid-flow", "Pagamento Confirmado").Return(nil)

	o, err := svc.Checkout(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, o.TransactionID)

	err = svc.UpdateStatusByTransactionID(ctx, *o.TransactionID, payment.DisplayStatus("COMPLETED"))
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_SyncStatus(t *testing.T) {
	ctx := context.Background()
	userID := uint(7)
	orderID := uuid.New()
	txid := "txid-abc"

	t.Run("UpdatesWhenStatusChanged", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockGw := new(MockGateway)
		svc := NewService(mockRepo, mockGw, 15)

		mockRepo.On("GetOrderDetail", ctx, orderID).Return(&Order{
			ID: orderID, UserID: userID, Status: "Aguardando Pagamento", TransactionID: &txid,
		}, nil)
		mockGw.On("GetCharge", ctx, txid).Return(&openpix.Charge{Status: openpix.ChargeStatusCompleted}, nil)
		mockRepo.On("UpdateStatusByTransactionID", ctx, txid, "Pagamento Confirmado").Return(nil)

		o, err := svc.SyncStatus(ctx, userID, orderID)
		require.NoError(t, err)
		assert.Equal(t, "Pagamento Confirmado", o.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("NoWriteWhenUnchanged", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockGw := new(MockGateway)
		svc := NewService(mockRepo, mockGw, 15)

		mockRepo.On("GetOrderDetail", ctx, orderID).Return(&Order{
			ID: orderID, UserID: userID, Status: "Aguardando Pagamento", TransactionID: &txid,
		}, nil)
		mockGw.On("GetCharge", ctx, txid).Return(&openpix.Charge{Status: openpix.ChargeStatusActive}, nil)

		o, err := svc.SyncStatus(ctx, userID, orderID)
		require.NoError(t, err)
		assert.Equal(t, "Aguardando Pagamento", o.Status)
		mockRepo.AssertNotCalled(t, "UpdateStatusByTransactionID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NotTheOwner", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockGateway), 15)

		mockRepo.On("GetOrderDetail", ctx, orderID).Return(&Order{
			ID: orderID, UserID: 99, TransactionID: &txid,
		}, nil)

		_, err := svc.SyncStatus(ctx, userID, orderID)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("NoTransaction", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockGateway), 15)

		mockRepo.On("GetOrderDetail", ctx, orderID).Return(&Order{
			ID: orderID, UserID: userID,
		}, nil)

		_, err := svc.SyncStatus(ctx, userID, orderID)
		assert.ErrorIs(t, err, ErrNoTransaction)
	})
}

func TestService_GetOrderDetail(t *testing.T) {
	ctx := context.Background()
	orderID := uuid.New()

	t.Run("OwnerCanRead", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockGateway), 15)

		mockRepo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, UserID: 7}, nil)

		o, err := svc.GetOrderDetail(ctx, 7, orderID, false)
		require.NoError(t, err)
		assert.Equal(t, orderID, o.ID)
	})

	t.Run("StrangerIsRejected", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockGateway), 15)

		mockRepo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, UserID: 7}, nil)

		_, err := svc.GetOrderDetail(ctx, 8, orderID, false)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("AdminCanReadAny", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo, new(MockGateway), 15)

		mockRepo.On("GetOrderDetail", ctx, orderID).Return(&Order{ID: orderID, UserID: 7}, nil)

		_, err := svc.GetOrderDetail(ctx, 8, orderID, true)
		assert.NoError(t, err)
	})
}
