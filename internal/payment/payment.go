package payment

import (
	"context"

	"arenapix-be/internal/openpix"
)

// Gateway is the provider surface the rest of the service consumes.
// *openpix.Client satisfies it.
type Gateway interface {
	CreateSubAccount(ctx context.Context, name, pixKey string) (*openpix.SubAccount, error)
	GetSubAccounts(ctx context.Context) ([]openpix.SubAccount, error)
	UpdateSubAccount(ctx context.Context, pixKey, name string) (*openpix.SubAccount, error)
	DeleteSubAccount(ctx context.Context, pixKey string) error
	EnsureSubAccount(ctx context.Context, name, pixKey string) (*openpix.SubAccount, error)
	GetSubAccountBalance(ctx context.Context, pixKey string) (int64, error)
	Withdraw(ctx context.Context, pixKey string, value *int64) (*openpix.Withdrawal, error)
	CreateChargeWithSplit(ctx context.Context, input openpix.ChargeInput) (*openpix.Charge, error)
	GetCharge(ctx context.Context, id string) (*openpix.Charge, error)
	ListTransactions(ctx context.Context, opts openpix.ListTransactionsOptions) (*openpix.TransactionPage, error)
}
