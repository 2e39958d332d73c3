package openpix

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_CreateChargeWithSplit(t *testing.T) {
	appID := "test-app-id"
	client := NewClient("https://api.openpix.com.br/api/v1", appID)

	input := ChargeInput{
		Value:         10000,
		CorrelationID: "ord-123",
		Comment:       "Pedido ord-123",
		Splits: []Split{
			{PixKey: "seller-a@pix.com", Value: 4250},
			{PixKey: "seller-b@pix.com", Value: 3400},
		},
	}

	t.Run("Success", func(t *testing.T) {
		respBody := `{
			"charge": {
				"correlationID": "ord-123",
				"transactionID": "txid-abc",
				"status": "ACTIVE",
				"value": 10000,
				"brCode": "00020126...",
				"qrCodeImage": "https://api.openpix.com.br/qr/txid-abc.png"
			}
		}`

		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "POST", req.Method)
			assert.Equal(t, "https://api.openpix.com.br/api/v1/charge", req.URL.String())
			assert.Equal(t, appID, req.Header.Get("Authorization"))

			body, _ := io.ReadAll(req.Body)
			var sent ChargeInput
			require.NoError(t, json.Unmarshal(body, &sent))
			assert.Equal(t, input.Value, sent.Value)
			assert.Len(t, sent.Splits, 2)

			return jsonResponse(http.StatusOK, respBody)
		})

		charge, err := client.CreateChargeWithSplit(context.Background(), input)
		assert.NoError(t, err)
		require.NotNil(t, charge)
		assert.Equal(t, "txid-abc", charge.TransactionID)
		assert.Equal(t, ChargeStatusActive, charge.Status)
		assert.Equal(t, "00020126...", charge.BrCode)
	})

	t.Run("SplitsExceedTotal", func(t *testing.T) {
		called := false
		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			called = true
			return jsonResponse(http.StatusOK, `{}`)
		})

		bad := input
		bad.Splits = []Split{
			{PixKey: "seller-a@pix.com", Value: 8000},
			{PixKey: "seller-b@pix.com", Value: 8000},
		}

		_, err := client.CreateChargeWithSplit(context.Background(), bad)
		assert.ErrorIs(t, err, ErrSplitExceedsTotal)
		assert.False(t, called, "request must not reach the provider")
	})

	t.Run("SplitsEqualTotal", func(t *testing.T) {
		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusOK, `{"charge": {"transactionID": "txid-eq", "status": "ACTIVE"}}`)
		})

		exact := input
		exact.Splits = []Split{{PixKey: "seller-a@pix.com", Value: 10000}}

		charge, err := client.CreateChargeWithSplit(context.Background(), exact)
		assert.NoError(t, err)
		assert.Equal(t, "txid-eq", charge.TransactionID)
	})

	t.Run("APIError", func(t *testing.T) {
		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusUnauthorized, `{"error": "invalid credentials"}`)
		})

		_, err := client.CreateChargeWithSplit(context.Background(), input)
		assert.Error(t, err)
		assert.True(t, IsUnauthorized(err))
	})

	t.Run("NetworkError", func(t *testing.T) {
		client.httpClient.Transport = MockRoundTripperWithError(func(req *http.Request) (*http.Response, error) {
			return nil, errors.New("connection refused")
		})

		_, err := client.CreateChargeWithSplit(context.Background(), input)
		assert.Error(t, err)
	})
}

func TestClient_GetCharge(t *testing.T) {
	client := NewClient("https://api.openpix.com.br/api/v1/", "test-app-id")

	t.Run("Success", func(t *testing.T) {
		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			assert.Equal(t, "GET", req.Method)
			assert.Equal(t, "https://api.openpix.com.br/api/v1/charge/txid-abc", req.URL.String())
			return jsonResponse(http.StatusOK, `{"charge": {"transactionID": "txid-abc", "status": "COMPLETED"}}`)
		})

		charge, err := client.GetCharge(context.Background(), "txid-abc")
		assert.NoError(t, err)
		assert.Equal(t, ChargeStatusCompleted, charge.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		client.httpClient.Transport = MockRoundTripper(func(req *http.Request) *http.Response {
			return jsonResponse(http.StatusNotFound, `{"error": "charge not found"}`)
		})

		_, err := client.GetCharge(context.Background(), "missing")
		assert.True(t, IsNotFound(err))
	})
}
