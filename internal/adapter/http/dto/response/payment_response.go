package response

import "mercadopago_integration/internal/domain/entities"

// PaymentResponse exposes the PIX ticket URL as "pix", or "N/A" when the
// payment has none.
type PaymentResponse struct {
	ID                int64  `json:"id"`
	ExternalReference string `json:"external_reference"`
	Status            string `json:"status"`
	Pix               string `json:"pix"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		ExternalReference: p.ExternalReference,
		Status:            string(p.Status),
		Pix:               p.Pix(),
	}
}
