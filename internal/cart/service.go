package cart

import (
	"context"

	"arenapix-be/internal/product"
)

// Service defines the business logic for carts.
type Service interface {
	AddToCart(ctx context.Context, params AddParams) (*CartItem, error)
	GetCart(ctx context.Context, userID uint) ([]*CartItem, error)
	UpdateQuantity(ctx context.Context, params UpdateParams) error
	Remove(ctx context.Context, params RemoveParams) error
	Clear(ctx context.Context, userID uint) error
}

type service struct {
	repo        Repository
	productRepo product.Repository
}

func NewService(repo Repository, productRepo product.Repository) Service {
	return &service{repo: repo, productRepo: productRepo}
}

// AddToCart adds a product to the user's cart, merging with an existing row
// and validating stock against the final quantity.
func (s *service) AddToCart(ctx context.Context, params AddParams) (*CartItem, error) {
	if params.UserID == 0 {
		return nil, ErrUserRequired
	}
	if params.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.productRepo.GetByID(ctx, product.GetProductOptions{
		ProductID:  params.ProductID,
		OnlyActive: true,
	})
	if err != nil {
		if err == product.ErrNotFound {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	if p.Stock < finalQty {
		return nil, ErrInsufficientStock
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, params)
	}

	if err := s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty); err != nil {
		return nil, err
	}
	existing.Quantity = finalQty
	return existing, nil
}

func (s *service) GetCart(ctx context.Context, userID uint) ([]*CartItem, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	return s.repo.GetCart(ctx, userID)
}

// UpdateQuantity updates the quantity of a product in the cart; zero or a
// negative quantity removes the item.
func (s *service) UpdateQuantity(ctx context.Context, params UpdateParams) error {
	if params.UserID == 0 {
		return ErrUserRequired
	}

	if params.Quantity <= 0 {
		return s.repo.Remove(ctx, RemoveParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
		})
	}

	return s.repo.UpdateQuantity(ctx, params)
}

func (s *service) Remove(ctx context.Context, params RemoveParams) error {
	if params.UserID == 0 {
		return ErrUserRequired
	}
	return s.repo.Remove(ctx, params)
}

func (s *service) Clear(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrUserRequired
	}
	return s.repo.Clear(ctx, userID)
}
