package openpix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"arenapix-be/internal/logger"

	"go.uber.org/zap"
)

// ListTransactions pages through the provider-side transaction ledger.
func (c *Client) ListTransactions(ctx context.Context, opts ListTransactionsOptions) (*TransactionPage, error) {
	query := url.Values{}

	if opts.Start != nil {
		query.Set("start", opts.Start.Format(time.RFC3339))
	}
	if opts.End != nil {
		query.Set("end", opts.End.Format(time.RFC3339))
	}
	if opts.Charge != "" {
		query.Set("charge", opts.Charge)
	}
	if opts.PixQrCode != "" {
		query.Set("pixQrCode", opts.PixQrCode)
	}
	if opts.Withdrawal != "" {
		query.Set("withdrawal", opts.Withdrawal)
	}
	if opts.Skip > 0 {
		query.Set("skip", strconv.Itoa(opts.Skip))
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	body, err := c.do(ctx, http.MethodGet, "/transaction", query, nil)
	if err != nil {
		return nil, err
	}

	var page TransactionPage
	if err := json.Unmarshal(body, &page); err != nil {
		logger.L().Error("Failed decoding transaction page", zap.Error(err))
		return nil, err
	}

	return &page, nil
}
