package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"arenapix-be/internal/logger"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("product not found")

type Repository interface {
	Create(ctx context.Context, params CreateParams) (*Product, error)
	GetByID(ctx context.Context, opts GetProductOptions) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Update(ctx context.Context, params UpdateParams) error
	Deactivate(ctx context.Context, productID, sellerID uint) error
	AdjustStock(ctx context.Context, productID uint, delta int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, params CreateParams) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (seller_id, name, description, price, stock, image_url, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING id, seller_id, name, description, price, stock, image_url, active, created_at, updated_at
	`, params.SellerID, params.Name, params.Description, params.Price, params.Stock, params.ImageURL).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to insert product", zap.Error(err))
		return nil, err
	}
	return &p, nil
}

func (r *repository) GetByID(ctx context.Context, opts GetProductOptions) (*Product, error) {
	query := `
		SELECT id, seller_id, name, description, price, stock, image_url, active, created_at, updated_at
		FROM products WHERE id = $1
	`
	if opts.OnlyActive {
		query += " AND active = TRUE"
	}

	var p Product
	err := r.db.QueryRowContext(ctx, query, opts.ProductID).
		Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	query := `
		SELECT id, seller_id, name, description, price, stock, image_url, active, created_at, updated_at
		FROM products
		WHERE active = TRUE
	`
	args := []any{}
	argIndex := 1

	if opts.Search != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIndex)
		args = append(args, "%"+opts.Search+"%")
		argIndex++
	}
	if opts.SellerID != 0 {
		query += fmt.Sprintf(" AND seller_id = $%d", argIndex)
		args = append(args, opts.SellerID)
		argIndex++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("db: failed to list products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.ImageURL, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}

func (r *repository) Update(ctx context.Context, params UpdateParams) error {
	query := "UPDATE products SET updated_at = NOW()"
	args := []any{}
	argIndex := 1

	if params.Name != nil {
		query += fmt.Sprintf(", name = $%d", argIndex)
		args = append(args, *params.Name)
		argIndex++
	}
	if params.Description != nil {
		query += fmt.Sprintf(", description = $%d", argIndex)
		args = append(args, *params.Description)
		argIndex++
	}
	if params.Price != nil {
		query += fmt.Sprintf(", price = $%d", argIndex)
		args = append(args, *params.Price)
		argIndex++
	}
	if params.Stock != nil {
		query += fmt.Sprintf(", stock = $%d", argIndex)
		args = append(args, *params.Stock)
		argIndex++
	}
	if params.ImageURL != nil {
		query += fmt.Sprintf(", image_url = $%d", argIndex)
		args = append(args, *params.ImageURL)
		argIndex++
	}
	if params.Active != nil {
		query += fmt.Sprintf(", active = $%d", argIndex)
		args = append(args, *params.Active)
		argIndex++
	}

	query += fmt.Sprintf(" WHERE id = $%d AND seller_id = $%d", argIndex, argIndex+1)
	args = append(args, params.ProductID, params.SellerID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Deactivate(ctx context.Context, productID, sellerID uint) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET active = FALSE, updated_at = NOW()
		WHERE id = $1 AND seller_id = $2
	`, productID, sellerID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) AdjustStock(ctx context.Context, productID uint, delta int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2 AND stock + $1 >= 0
	`, delta, productID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New("insufficient stock")
	}
	return nil
}
