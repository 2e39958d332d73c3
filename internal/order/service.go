package order

import (
	"context"
	"fmt"

	"arenapix-be/internal/logger"
	"arenapix-be/internal/openpix"
	"arenapix-be/internal/payment"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Checkout(ctx context.Context, userID uint) (*Order, error)
	UpdateStatusByTransactionID(ctx context.Context, transactionID, status string) error
	GetOrders(ctx context.Context, userID uint, filter Filter, limit, page int) ([]*Order, error)
	GetOrderDetail(ctx context.Context, userID uint, orderID uuid.UUID, isAdmin bool) (*Order, error)
	SyncStatus(ctx context.Context, userID uint, orderID uuid.UUID) (*Order, error)
}

type service struct {
	repo    Repository
	gateway payment.Gateway
	feePct  int
}

// NewService wires the order flow to the payment gateway. feePct is the
// platform share of each charge, in percent.
func NewService(repo Repository, gateway payment.Gateway, feePct int) Service {
	if feePct < 0 || feePct > 100 {
		feePct = 0
	}
	return &service{repo: repo, gateway: gateway, feePct: feePct}
}

// Checkout creates an order from the user's cart and a split charge for it.
// Each seller receives their share minus the platform fee; the remainder
// settles on the platform account.
func (s *service) Checkout(ctx context.Context, userID uint) (*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}

	log := logger.FromCtx(ctx).With(
		zap.String("method", "Checkout"),
		zap.Uint("user_id", userID),
	)

	order, err := s.repo.CreateFromCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	log = log.With(zap.String("order_id", order.ID.String()), zap.Int64("total", order.Total))

	charge, err := s.gateway.CreateChargeWithSplit(ctx, openpix.ChargeInput{
		Value:         order.Total,
		CorrelationID: order.ID.String(),
		Comment:       "Pedido " + order.ID.String(),
		Splits:        s.buildSplits(order.Items),
	})
	if err != nil {
		log.Error("failed to create charge", zap.Error(err))
		return order, fmt.Errorf("failed to create payment charge: %w", err)
	}

	if err := s.repo.SetCharge(ctx, order.ID, charge.TransactionID, charge.BrCode, charge.QRCodeImage); err != nil {
		log.Error("failed to persist charge on order", zap.Error(err))
		return order, fmt.Errorf("failed to save charge: %w", err)
	}

	order.TransactionID = &charge.TransactionID
	order.BrCode = charge.BrCode
	order.QRCodeImage = charge.QRCodeImage

	log.Info("checkout completed", zap.String("transaction_id", charge.TransactionID))
	return order, nil
}

// buildSplits aggregates item totals per seller Pix key and deducts the
// platform fee from each seller share. The sum is always <= the order total.
func (s *service) buildSplits(items []OrderItem) []openpix.Split {
	perSeller := make(map[string]int64)
	var keys []string

	for _, item := range items {
		if _, seen := perSeller[item.SellerPixKey]; !seen {
			keys = append(keys, item.SellerPixKey)
		}
		perSeller[item.SellerPixKey] += int64(item.Quantity) * item.Price
	}

	splits := make([]openpix.Split, 0, len(keys))
	for _, key := range keys {
		sellerTotal := perSeller[key]
		fee := sellerTotal * int64(s.feePct) / 100
		splits = append(splits, openpix.Split{
			PixKey: key,
			Value:  sellerTotal - fee,
		})
	}
	return splits
}

func (s *service) UpdateStatusByTransactionID(ctx context.Context, transactionID, status string) error {
	return s.repo.UpdateStatusByTransactionID(ctx, transactionID, status)
}

func (s *service) GetOrders(ctx context.Context, userID uint, filter Filter, limit, page int) ([]*Order, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	return s.repo.GetOrders(ctx, userID, filter, limit, page)
}

func (s *service) GetOrderDetail(ctx context.Context, userID uint, orderID uuid.UUID, isAdmin bool) (*Order, error) {
	order, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != userID {
		return nil, ErrUnauthorized
	}
	return order, nil
}

// SyncStatus re-reads the provider charge and reflects its status on the
// order row. Used by the confirmation screen while the webhook is in flight.
func (s *service) SyncStatus(ctx context.Context, userID uint, orderID uuid.UUID) (*Order, error) {
	order, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, ErrUnauthorized
	}
	if order.TransactionID == nil || *order.TransactionID == "" {
		return nil, ErrNoTransaction
	}

	charge, err := s.gateway.GetCharge(ctx, *order.TransactionID)
	if err != nil {
		return nil, err
	}

	status := payment.DisplayStatus(charge.Status)
	if status != order.Status {
		if err := s.repo.UpdateStatusByTransactionID(ctx, *order.TransactionID, status); err != nil {
			return nil, err
		}
		order.Status = status
	}
	return order, nil
}
