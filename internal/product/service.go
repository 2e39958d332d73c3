package product

import (
	"context"
	"errors"
)

var (
	ErrInvalidName  = errors.New("product name is required")
	ErrInvalidPrice = errors.New("product price must be positive")
	ErrInvalidStock = errors.New("product stock cannot be negative")
)

type Service interface {
	Create(ctx context.Context, params CreateParams) (*Product, error)
	Get(ctx context.Context, productID uint) (*Product, error)
	List(ctx context.Context, opts ListOptions) ([]*Product, error)
	Update(ctx context.Context, params UpdateParams) error
	Deactivate(ctx context.Context, productID, sellerID uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Product, error) {
	if params.Name == "" {
		return nil, ErrInvalidName
	}
	if params.Price <= 0 {
		return nil, ErrInvalidPrice
	}
	if params.Stock < 0 {
		return nil, ErrInvalidStock
	}
	return s.repo.Create(ctx, params)
}

func (s *service) Get(ctx context.Context, productID uint) (*Product, error) {
	return s.repo.GetByID(ctx, GetProductOptions{ProductID: productID, OnlyActive: true})
}

func (s *service) List(ctx context.Context, opts ListOptions) ([]*Product, error) {
	return s.repo.List(ctx, opts)
}

func (s *service) Update(ctx context.Context, params UpdateParams) error {
	if params.Price != nil && *params.Price <= 0 {
		return ErrInvalidPrice
	}
	if params.Stock != nil && *params.Stock < 0 {
		return ErrInvalidStock
	}
	return s.repo.Update(ctx, params)
}

func (s *service) Deactivate(ctx context.Context, productID, sellerID uint) error {
	return s.repo.Deactivate(ctx, productID, sellerID)
}
