package openpix

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"arenapix-be/internal/logger"

	"go.uber.org/zap"
)

// CreateSubAccount registers a seller ledger keyed by Pix key. The key is
// normalized only by trimming whitespace; the provider rejects duplicates.
func (c *Client) CreateSubAccount(ctx context.Context, name, pixKey string) (*SubAccount, error) {
	pixKey = strings.TrimSpace(pixKey)

	log := logger.L().With(
		zap.String("pix_key", pixKey),
		zap.String("name", name),
	)

	body, err := c.do(ctx, http.MethodPost, "/subaccount", nil, SubAccount{
		Name:   name,
		PixKey: pixKey,
	})
	if err != nil {
		return nil, err
	}

	var env subAccountEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Error("Failed decoding sub-account response", zap.Error(err))
		return nil, err
	}

	log.Info("Sub-account created")
	return &env.SubAccount, nil
}

// GetSubAccounts lists every sub-account. The provider reports "no
// sub-accounts" as an error payload; that condition yields an empty slice.
func (c *Client) GetSubAccounts(ctx context.Context) ([]SubAccount, error) {
	body, err := c.do(ctx, http.MethodGet, "/subaccount", nil, nil)
	if err != nil {
		if isNoSubAccounts(err) {
			return []SubAccount{}, nil
		}
		return nil, err
	}

	var env subAccountListEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		logger.L().Error("Failed decoding sub-account list", zap.Error(err))
		return nil, err
	}

	return env.SubAccounts, nil
}

func isNoSubAccounts(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Kind == KindNotFound {
		return true
	}
	lower := strings.ToLower(apiErr.Body)
	return strings.Contains(lower, "nenhuma subconta") ||
		strings.Contains(lower, "no subaccount") ||
		strings.Contains(lower, "subaccount not found")
}

func (c *Client) UpdateSubAccount(ctx context.Context, pixKey, name string) (*SubAccount, error) {
	pixKey = strings.TrimSpace(pixKey)

	body, err := c.do(ctx, http.MethodPut, "/subaccount/"+url.PathEscape(pixKey), nil, map[string]string{
		"name": name,
	})
	if err != nil {
		return nil, err
	}

	var env subAccountEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}
	return &env.SubAccount, nil
}

func (c *Client) DeleteSubAccount(ctx context.Context, pixKey string) error {
	pixKey = strings.TrimSpace(pixKey)

	_, err := c.do(ctx, http.MethodDelete, "/subaccount/"+url.PathEscape(pixKey), nil, nil)
	return err
}

// EnsureSubAccount is the find-or-create contract: it returns the existing
// sub-account for the key when there is one and creates it otherwise. A
// creation conflict (key registered between the list and the create) is
// resolved by re-reading.
func (c *Client) EnsureSubAccount(ctx context.Context, name, pixKey string) (*SubAccount, error) {
	pixKey = strings.TrimSpace(pixKey)

	accounts, err := c.GetSubAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].PixKey == pixKey {
			return &accounts[i], nil
		}
	}

	created, err := c.CreateSubAccount(ctx, name, pixKey)
	if err == nil {
		return created, nil
	}
	if !IsConflict(err) {
		return nil, err
	}

	accounts, listErr := c.GetSubAccounts(ctx)
	if listErr != nil {
		return nil, listErr
	}
	for i := range accounts {
		if accounts[i].PixKey == pixKey {
			return &accounts[i], nil
		}
	}
	return nil, err
}

// GetSubAccountBalance returns the sub-account balance in centavos.
func (c *Client) GetSubAccountBalance(ctx context.Context, pixKey string) (int64, error) {
	pixKey = strings.TrimSpace(pixKey)

	body, err := c.do(ctx, http.MethodGet, "/subaccount/"+url.PathEscape(pixKey), nil, nil)
	if err != nil {
		return 0, err
	}

	var env subAccountEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return 0, err
	}
	return env.SubAccount.Balance, nil
}

// Withdraw moves funds out of a sub-account. A nil value withdraws the full
// balance.
func (c *Client) Withdraw(ctx context.Context, pixKey string, value *int64) (*Withdrawal, error) {
	pixKey = strings.TrimSpace(pixKey)

	log := logger.L().With(zap.String("pix_key", pixKey))

	var payload any
	if value != nil {
		payload = map[string]int64{"value": *value}
	}

	body, err := c.do(ctx, http.MethodPost, "/subaccount/"+url.PathEscape(pixKey)+"/withdraw", nil, payload)
	if err != nil {
		return nil, err
	}

	var env withdrawEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Error("Failed decoding withdrawal response", zap.Error(err))
		return nil, err
	}

	log.Info("Withdrawal requested",
		zap.Int64("value", env.Transaction.Value),
		zap.String("transaction_id", env.Transaction.TransactionID),
	)
	return &env.Transaction, nil
}
