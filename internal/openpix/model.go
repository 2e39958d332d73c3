package openpix

import "time"

// Charge statuses reported by the provider. Transitions are entirely
// provider-managed; this client only reads them.
const (
	ChargeStatusActive    = "ACTIVE"
	ChargeStatusCompleted = "COMPLETED"
	ChargeStatusExpired   = "EXPIRED"
)

type SubAccount struct {
	Name    string `json:"name"`
	PixKey  string `json:"pixKey"`
	Balance int64  `json:"balance,omitempty"`
}

// Split directs a portion of a charge's value to a Pix-keyed sub-account
// at settlement time. Values are in centavos.
type Split struct {
	PixKey string `json:"pixKey"`
	Value  int64  `json:"value"`
}

type ChargeInput struct {
	Value         int64   `json:"value"`
	CorrelationID string  `json:"correlationID"`
	Comment       string  `json:"comment,omitempty"`
	ExpiresIn     int     `json:"expiresIn,omitempty"`
	Splits        []Split `json:"splits,omitempty"`
}

type Charge struct {
	CorrelationID  string     `json:"correlationID"`
	TransactionID  string     `json:"transactionID"`
	Status         string     `json:"status"`
	Value          int64      `json:"value"`
	BrCode         string     `json:"brCode"`
	QRCodeImage    string     `json:"qrCodeImage"`
	PaymentLinkURL string     `json:"paymentLinkUrl,omitempty"`
	ExpiresDate    *time.Time `json:"expiresDate,omitempty"`
	Splits         []Split    `json:"splits,omitempty"`
}

type Transaction struct {
	TransactionID string     `json:"transactionID"`
	EndToEndID    string     `json:"endToEndId,omitempty"`
	Value         int64      `json:"value"`
	Type          string     `json:"type,omitempty"`
	Time          *time.Time `json:"time,omitempty"`
	Charge        *Charge    `json:"charge,omitempty"`
}

type PageInfo struct {
	Skip            int  `json:"skip"`
	Limit           int  `json:"limit"`
	TotalCount      int  `json:"totalCount"`
	HasPreviousPage bool `json:"hasPreviousPage"`
	HasNextPage     bool `json:"hasNextPage"`
}

type TransactionPage struct {
	Transactions []Transaction `json:"transactions"`
	PageInfo     PageInfo      `json:"pageInfo"`
}

type Withdrawal struct {
	Value         int64  `json:"value"`
	TransactionID string `json:"transactionID"`
	Status        string `json:"status,omitempty"`
	EndToEndID    string `json:"endToEndId,omitempty"`
}

// ListTransactionsOptions mirrors the /transaction query parameters.
type ListTransactionsOptions struct {
	Start      *time.Time
	End        *time.Time
	Charge     string
	PixQrCode  string
	Withdrawal string
	Skip       int
	Limit      int
}

// Response envelopes used by the provider.
type chargeEnvelope struct {
	Charge Charge `json:"charge"`
}

type subAccountEnvelope struct {
	SubAccount SubAccount `json:"subAccount"`
}

type subAccountListEnvelope struct {
	SubAccounts []SubAccount `json:"subAccounts"`
}

type withdrawEnvelope struct {
	Transaction Withdrawal `json:"transaction"`
}
