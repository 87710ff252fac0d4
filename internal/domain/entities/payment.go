package entities

// PaymentStatus is whatever the provider reports. It is never tracked here.
//
// https://www.mercadopago.com.br/developers/en/docs/checkout-api/response-handling/collection-results
type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "pending"
	PaymentStatusApproved    PaymentStatus = "approved"
	PaymentStatusAuthorized  PaymentStatus = "authorized"
	PaymentStatusInProcess   PaymentStatus = "in_process"
	PaymentStatusInMediation PaymentStatus = "in_mediation"
	PaymentStatusRejected    PaymentStatus = "rejected"
	PaymentStatusCancelled   PaymentStatus = "cancelled"
	PaymentStatusRefunded    PaymentStatus = "refunded"
	PaymentStatusChargedBack PaymentStatus = "charged_back"
)

var knownPaymentStatuses = map[PaymentStatus]struct{}{
	PaymentStatusPending:     {},
	PaymentStatusApproved:    {},
	PaymentStatusAuthorized:  {},
	PaymentStatusInProcess:   {},
	PaymentStatusInMediation: {},
	PaymentStatusRejected:    {},
	PaymentStatusCancelled:   {},
	PaymentStatusRefunded:    {},
	PaymentStatusChargedBack: {},
}

func (s PaymentStatus) Known() bool {
	_, ok := knownPaymentStatuses[s]
	return ok
}

// TicketURLNotAvailable is reported when the provider returns no PIX ticket.
const TicketURLNotAvailable = "N/A"

// Payment is the trimmed view of a provider payment.
type Payment struct {
	ID                int64         `json:"id"`
	ExternalReference string        `json:"external_reference"`
	Status            PaymentStatus `json:"status"`
	TicketURL         string        `json:"ticket_url,omitempty"`
}

// Pix returns the PIX ticket URL or TicketURLNotAvailable.
func (p Payment) Pix() string {
	if p.TicketURL == "" {
		return TicketURLNotAvailable
	}
	return p.TicketURL
}
