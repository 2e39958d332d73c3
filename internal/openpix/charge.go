package openpix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"arenapix-be/internal/logger"

	"go.uber.org/zap"
)

// CreateChargeWithSplit creates a charge whose value is divided between the
// listed sub-accounts at settlement time. The sum of split values must not
// exceed the charge value; the remainder stays with the platform account.
func (c *Client) CreateChargeWithSplit(ctx context.Context, input ChargeInput) (*Charge, error) {
	log := logger.L().With(
		zap.String("correlation_id", input.CorrelationID),
		zap.Int64("value", input.Value),
		zap.Int("split_count", len(input.Splits)),
	)

	var splitTotal int64
	for _, s := range input.Splits {
		splitTotal += s.Value
	}
	if splitTotal > input.Value {
		log.Warn("Rejecting charge: splits exceed total",
			zap.Int64("split_total", splitTotal),
		)
		return nil, ErrSplitExceedsTotal
	}

	body, err := c.do(ctx, http.MethodPost, "/charge", nil, input)
	if err != nil {
		return nil, err
	}

	var env chargeEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		log.Error("Failed decoding charge response", zap.Error(err))
		return nil, err
	}

	log.Info("Charge created",
		zap.String("transaction_id", env.Charge.TransactionID),
		zap.String("status", env.Charge.Status),
	)
	return &env.Charge, nil
}

// GetCharge fetches a charge by its transaction or correlation id.
func (c *Client) GetCharge(ctx context.Context, id string) (*Charge, error) {
	body, err := c.do(ctx, http.MethodGet, "/charge/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var env chargeEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		logger.L().Error("Failed decoding charge", zap.Error(err), zap.String("id", id))
		return nil, err
	}
	return &env.Charge, nil
}
