package product

import "time"

type Product struct {
	ID          uint    `json:"id"`
	SellerID    uint    `json:"seller_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Price       int64   `json:"price"` // centavos
	Stock       int     `json:"stock"`
	ImageURL    *string `json:"image_url,omitempty"`
	Active      bool    `json:"active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type GetProductOptions struct {
	ProductID  uint
	OnlyActive bool
}

type ListOptions struct {
	Search   string
	SellerID uint
	Limit    int
	Page     int
}

type CreateParams struct {
	SellerID    uint
	Name        string
	Description *string
	Price       int64
	Stock       int
	ImageURL    *string
}

type UpdateParams struct {
	ProductID   uint
	SellerID    uint
	Name        *string
	Description *string
	Price       *int64
	Stock       *int
	ImageURL    *string
	Active      *bool
}
