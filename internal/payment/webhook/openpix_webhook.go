package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"arenapix-be/internal/logger"
	"arenapix-be/internal/payment"

	"go.uber.org/zap"
)

// SignatureHeader carries the provider's HMAC-SHA256 of the raw body,
// base64-encoded.
const SignatureHeader = "x-openpix-signature"

// OrderUpdater is the slice of the order service the webhook needs.
type OrderUpdater interface {
	UpdateStatusByTransactionID(ctx context.Context, transactionID, status string) error
}

// Event is the payload OpenPix posts on charge lifecycle events. Some relays
// wrap it in an array; the first element is used.
type Event struct {
	Event  string         `json:"event"`
	Evento string         `json:"evento"`
	Charge *ChargePayload `json:"charge"`
	Pix    *PixPayload    `json:"pix"`
}

type ChargePayload struct {
	TransactionID string `json:"transactionID"`
	CorrelationID string `json:"correlationID"`
	Status        string `json:"status"`
}

type PixPayload struct {
	TransactionID string         `json:"transactionID"`
	Charge        *ChargePayload `json:"charge"`
}

type Handler struct {
	orders OrderUpdater
	secret string
}

// NewHandler builds the receiver. With an empty secret the signature check is
// skipped, which is only acceptable in development.
func NewHandler(orders OrderUpdater, secret string) *Handler {
	return &Handler{orders: orders, secret: secret}
}

// ServeHTTP accepts provider callbacks and reflects payment status into the
// order store. Anything that is not actionable is acknowledged with 200 so
// the provider does not retry.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	log := logger.FromCtx(r.Context())

	if h.secret != "" {
		if !validSignature(body, r.Header.Get(SignatureHeader), h.secret) {
			log.Warn("Webhook signature mismatch")
			http.Error(w, "invalid signature", http.StatusUnauthorized)
			return
		}
	}

	event, err := decodeEvent(body)
	if err != nil {
		http.Error(w, "invalid JSON payload", http.StatusBadRequest)
		return
	}
	if event == nil {
		// Empty array payload.
		fmt.Fprint(w, "ok")
		return
	}

	if isTestEvent(event) {
		log.Info("Webhook test event acknowledged")
		fmt.Fprint(w, "ok")
		return
	}

	if !isPaymentEvent(event.Event) {
		log.Debug("Ignoring webhook event", zap.String("event", event.Event))
		fmt.Fprint(w, "ok")
		return
	}

	transactionID, providerStatus := extract(event)
	if transactionID == "" || providerStatus == "" {
		log.Warn("Payment event without transaction id or status",
			zap.String("event", event.Event),
		)
		fmt.Fprint(w, "ok")
		return
	}

	status := payment.DisplayStatus(providerStatus)

	if err := h.orders.UpdateStatusByTransactionID(r.Context(), transactionID, status); err != nil {
		log.Error("Failed to update order from webhook",
			zap.String("transaction_id", transactionID),
			zap.Error(err),
		)
		http.Error(w, "failed to update order", http.StatusInternalServerError)
		return
	}

	log.Info("Order status updated from webhook",
		zap.String("transaction_id", transactionID),
		zap.String("status", status),
	)
	fmt.Fprint(w, "ok")
}

func validSignature(body []byte, header, secret string) bool {
	if header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(header))
}

// decodeEvent parses a single event object or takes the first element of an
// array payload. A nil event with nil error means there was nothing to do.
func decodeEvent(body []byte) (*Event, error) {
	trimmed := strings.TrimSpace(string(body))
	if strings.HasPrefix(trimmed, "[") {
		var events []Event
		if err := json.Unmarshal(body, &events); err != nil {
			return nil, err
		}
		if len(events) == 0 {
			return nil, nil
		}
		return &events[0], nil
	}

	var event Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func isTestEvent(e *Event) bool {
	return e.Evento == "teste_webhook" || strings.Contains(e.Event, "TEST")
}

// isPaymentEvent filters to events that indicate a completed or paid charge.
func isPaymentEvent(event string) bool {
	if strings.Contains(event, "CHARGE_COMPLETED") || strings.Contains(event, "CHARGE_PAID") {
		return true
	}
	return event == "OPENPIX:TRANSACTION_RECEIVED" || event == "woovi:TRANSACTION_RECEIVED"
}

// extract pulls the transaction id and provider status out of the payload,
// preferring the charge shape over the pix shape.
func extract(e *Event) (transactionID, status string) {
	if e.Charge != nil {
		return e.Charge.TransactionID, e.Charge.Status
	}
	if e.Pix != nil {
		transactionID = e.Pix.TransactionID
		if e.Pix.Charge != nil {
			if e.Pix.Charge.TransactionID != "" {
				transactionID = e.Pix.Charge.TransactionID
			}
			status = e.Pix.Charge.Status
		}
	}
	return transactionID, status
}
