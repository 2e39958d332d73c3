package order

import "errors"

var (
	ErrOrderNotFound       = errors.New("order not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrNoTransaction       = errors.New("order has no transaction id")
	ErrSellerWithoutPixKey = errors.New("seller has no pix key configured")
)
