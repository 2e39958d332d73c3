package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"arenapix-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	CreateFromCart(ctx context.Context, userID uint) (*Order, error)
	SetCharge(ctx context.Context, orderID uuid.UUID, transactionID, brCode, qrCodeImage string) error
	UpdateStatusByTransactionID(ctx context.Context, transactionID, status string) error
	GetOrders(ctx context.Context, userID uint, filter Filter, limit, page int) ([]*Order, error)
	GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error)
	GetByTransactionID(ctx context.Context, transactionID string) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateFromCart turns the user's cart into an order inside one transaction:
// read cart rows, insert the order and its items, clear the cart.
func (r *repository) CreateFromCart(ctx context.Context, userID uint) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "CreateFromCart"),
		zap.Uint("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT c.product_id, c.quantity, p.name, p.price, s.pix_key
		FROM carts c
		JOIN products p ON p.id = c.product_id
		JOIN users s ON s.id = p.seller_id
		WHERE c.user_id = $1
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	var total int64

	for rows.Next() {
		var item OrderItem
		var pixKey sql.NullString
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.ProductName, &item.Price, &pixKey); err != nil {
			return nil, err
		}
		if !pixKey.Valid || pixKey.String == "" {
			return nil, ErrSellerWithoutPixKey
		}
		item.SellerPixKey = pixKey.String
		items = append(items, item)
		total += int64(item.Quantity) * item.Price
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, ErrCartEmpty
	}

	orderID := uuid.New()
	now := time.Now()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
	`, orderID, userID, total, "Aguardando Pagamento", now)
	if err != nil {
		return nil, err
	}

	for i := range items {
		items[i].OrderID = orderID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price, seller_pix_key)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, orderID, items[i].ProductID, items[i].ProductName, items[i].Quantity, items[i].Price, items[i].SellerPixKey)
		if err != nil {
			return nil, err
		}
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	log.Info("order created", zap.String("order_id", orderID.String()), zap.Int64("total", total))

	return &Order{
		ID:        orderID,
		UserID:    userID,
		Total:     total,
		Status:    "Aguardando Pagamento",
		CreatedAt: now,
		UpdatedAt: now,
		Items:     items,
	}, nil
}

func (r *repository) SetCharge(ctx context.Context, orderID uuid.UUID, transactionID, brCode, qrCodeImage string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET id_transacao = $1, br_code = $2, qr_code_image = $3, updated_at = NOW()
		WHERE id = $4
	`, transactionID, brCode, qrCodeImage, orderID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// UpdateStatusByTransactionID is the webhook write path. The row is matched
// by id_transacao, not by order id.
func (r *repository) UpdateStatusByTransactionID(ctx context.Context, transactionID, status string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id_transacao = $2
	`, status, transactionID)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return fmt.Errorf("no order found with id_transacao: %s", transactionID)
	}
	return nil
}

func (r *repository) GetOrders(ctx context.Context, userID uint, filter Filter, limit, page int) ([]*Order, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	log := logger.FromCtx(ctx).With(
		zap.String("method", "GetOrders"),
		zap.Uint("user_id", userID),
		zap.Int("limit", limit),
		zap.Int("page", page),
	)

	query := `
		SELECT id, user_id, total, status, id_transacao, created_at, updated_at
		FROM orders
		WHERE user_id = $1
	`
	args := []any{userID}
	argIndex := 2

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIndex)
		args = append(args, filter.Status)
		argIndex++
	}
	if filter.DateFrom != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", argIndex)
		args = append(args, *filter.DateFrom)
		argIndex++
	}
	if filter.DateTo != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", argIndex)
		args = append(args, *filter.DateTo)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.TransactionID, &o.CreatedAt, &o.UpdatedAt); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("get orders success", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total, status, id_transacao, br_code, qr_code_image, created_at, updated_at
		FROM orders WHERE id = $1
	`, orderID).Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.TransactionID, &o.BrCode, &o.QRCodeImage, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, product_name, quantity, price, seller_pix_key
		FROM order_items
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ID, &item.ProductID, &item.ProductName, &item.Quantity, &item.Price, &item.SellerPixKey); err != nil {
			return nil, err
		}
		item.OrderID = o.ID
		o.Items = append(o.Items, item)
	}

	return &o, rows.Err()
}

func (r *repository) GetByTransactionID(ctx context.Context, transactionID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total, status, id_transacao, created_at, updated_at
		FROM orders WHERE id_transacao = $1
	`, transactionID).Scan(&o.ID, &o.UserID, &o.Total, &o.Status, &o.TransactionID, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}
