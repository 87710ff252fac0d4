package interfaces

import (
	"context"
	"encoding/json"

	"mercadopago_integration/internal/domain/entities"
)

// IPaymentGateway abstracts the Mercado Pago API.
//
// Every method is a single pass-through call. Responses come back as the
// provider's JSON so callers decide how much of it to expose.
type IPaymentGateway interface {
	CreateCardToken(ctx context.Context, card entities.CardTokenInput) (json.RawMessage, error)
	ListPaymentMethods(ctx context.Context) (json.RawMessage, error)
	CreatePreference(ctx context.Context, requestPayload json.RawMessage) (json.RawMessage, error)
	GetPreference(ctx context.Context, preferenceID string) (json.RawMessage, error)
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (json.RawMessage, error)
	GetPayment(ctx context.Context, paymentID int64) (json.RawMessage, error)
	CancelPayment(ctx context.Context, paymentID int64) (json.RawMessage, error)
}
