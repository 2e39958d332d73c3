package payment

import "arenapix-be/internal/openpix"

// Display statuses stored on the order row. These are the strings the
// storefront shows, not an enforced state machine.
const (
	StatusConfirmed = "Pagamento Confirmado"
	StatusExpired   = "Expirado"
	StatusAwaiting  = "Aguardando Pagamento"
)

// DisplayStatus maps a provider charge status to the order display status.
// Anything the mapping does not recognize stays "awaiting payment".
func DisplayStatus(providerStatus string) string {
	switch providerStatus {
	case openpix.ChargeStatusCompleted:
		return StatusConfirmed
	case openpix.ChargeStatusExpired:
		return StatusExpired
	default:
		return StatusAwaiting
	}
}
