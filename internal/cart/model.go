package cart

import (
	"time"

	"arenapix-be/internal/product"
)

type CartItem struct {
	ID        uint `json:"id"`
	UserID    uint `json:"user_id"`
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Product *product.Product `json:"product,omitempty"`
}

type AddParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

type UpdateParams struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

type RemoveParams struct {
	UserID    uint
	ProductID uint
}
