package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"mercadopago_integration/internal/domain/entities"
	"mercadopago_integration/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrPaymentGatewayNotConfigured = errors.New("payment gateway not configured")
	ErrInvalidPaymentID            = errors.New("invalid payment id")
	ErrInvalidPreferenceID         = errors.New("invalid preference id")
	ErrInvalidProviderResponse     = errors.New("invalid payment provider response")
	ErrMissingCardToken            = errors.New("payment provider returned no card token id")
)

// Fixed checkout data used by the sandbox flows.
const (
	ItemTitle           = "Product description"
	ItemCurrencyID      = "BRL"
	ItemUnitPrice       = 58.8
	ItemQuantity        = 1
	PaymentDescription  = "Cart description"
	PaymentMethodID     = "master"
	PaymentInstallments = 1
)

// CheckoutSettings carries the configurable parts of the fixed payloads.
type CheckoutSettings struct {
	NotificationURL    string
	PayerEmail         string
	CardExpirationYear string
}

// ICheckoutUseCase delegates each checkout operation to the payment
// provider and trims the answer.
type ICheckoutUseCase interface {
	CreateCardToken(ctx context.Context) (json.RawMessage, error)
	ListPaymentMethods(ctx context.Context) (json.RawMessage, error)
	CreatePreference(ctx context.Context) (entities.Preference, error)
	GetPreference(ctx context.Context, preferenceID string) (entities.Preference, error)
	CreatePayment(ctx context.Context) (entities.Payment, error)
	GetPayment(ctx context.Context, paymentID string) (entities.Payment, error)
	CancelPayment(ctx context.Context, paymentID string) (json.RawMessage, error)
}

type CheckoutUseCase struct {
	gateway  interfaces.IPaymentGateway
	settings CheckoutSettings
	log      *zap.Logger
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(gateway interfaces.IPaymentGateway, settings CheckoutSettings, log *zap.Logger) *CheckoutUseCase {
	return &CheckoutUseCase{gateway: gateway, settings: settings, log: log.Named("checkout.usecase")}
}

func (u *CheckoutUseCase) CreateCardToken(ctx context.Context) (json.RawMessage, error) {
	if u.gateway == nil {
		return nil, ErrPaymentGatewayNotConfigured
	}
	u.log.Debug("card token start")
	return u.gateway.CreateCardToken(ctx, entities.MockCreditCard(u.settings.CardExpirationYear))
}

func (u *CheckoutUseCase) ListPaymentMethods(ctx context.Context) (json.RawMessage, error) {
	if u.gateway == nil {
		return nil, ErrPaymentGatewayNotConfigured
	}
	return u.gateway.ListPaymentMethods(ctx)
}

func (u *CheckoutUseCase) CreatePreference(ctx context.Context) (entities.Preference, error) {
	if u.gateway == nil {
		return entities.Preference{}, ErrPaymentGatewayNotConfigured
	}

	externalReference := uuid.NewString()
	body := map[string]any{
		"external_reference": externalReference,
		"payer":              map[string]any{"email": u.settings.PayerEmail},
		"notification_url":   u.settings.NotificationURL,
		"items": []entities.PreferenceItem{{
			ID:         uuid.NewString(),
			Title:      ItemTitle,
			CurrencyID: ItemCurrencyID,
			UnitPrice:  ItemUnitPrice,
			Quantity:   ItemQuantity,
		}},
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return entities.Preference{}, err
	}

	u.log.Info("create preference start", zap.String("external_reference", externalReference))
	raw, err := u.gateway.CreatePreference(ctx, payload)
	if err != nil {
		u.log.Warn("create preference failed", zap.String("external_reference", externalReference), zap.Error(err))
		return entities.Preference{}, err
	}
	return parsePreference(raw)
}

func (u *CheckoutUseCase) GetPreference(ctx context.Context, preferenceID string) (entities.Preference, error) {
	if u.gateway == nil {
		return entities.Preference{}, ErrPaymentGatewayNotConfigured
	}
	preferenceID = strings.TrimSpace(preferenceID)
	if preferenceID == "" {
		return entities.Preference{}, ErrInvalidPreferenceID
	}

	raw, err := u.gateway.GetPreference(ctx, preferenceID)
	if err != nil {
		u.log.Warn("get preference failed", zap.String("preference_id", preferenceID), zap.Error(err))
		return entities.Preference{}, err
	}
	return parsePreference(raw)
}

// CreatePayment tokenizes the test card and pays the fixed amount with it.
func (u *CheckoutUseCase) CreatePayment(ctx context.Context) (entities.Payment, error) {
	if u.gateway == nil {
		return entities.Payment{}, ErrPaymentGatewayNotConfigured
	}

	tokenRaw, err := u.gateway.CreateCardToken(ctx, entities.MockCreditCard(u.settings.CardExpirationYear))
	if err != nil {
		u.log.Warn("card token for payment failed", zap.Error(err))
		return entities.Payment{}, err
	}
	var token struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(tokenRaw, &token); err != nil {
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrInvalidProviderResponse, err)
	}
	if token.ID == "" {
		return entities.Payment{}, ErrMissingCardToken
	}

	externalReference := uuid.NewString()
	body := map[string]any{
		"description":        PaymentDescription,
		"external_reference": externalReference,
		"installments":       PaymentInstallments,
		"notification_url":   u.settings.NotificationURL,
		"payer":              map[string]any{"email": u.settings.PayerEmail},
		"payment_method_id":  PaymentMethodID,
		"token":              token.ID,
		"transaction_amount": ItemUnitPrice,
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return entities.Payment{}, err
	}

	u.log.Info("create payment start", zap.String("external_reference", externalReference))
	raw, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		u.log.Warn("create payment failed", zap.String("external_reference", externalReference), zap.Error(err))
		return entities.Payment{}, err
	}

	p, err := parsePayment(raw)
	if err != nil {
		return entities.Payment{}, err
	}
	u.log.Info("create payment success", zap.Int64("payment_id", p.ID), zap.String("status", string(p.Status)))
	return p, nil
}

func (u *CheckoutUseCase) GetPayment(ctx context.Context, paymentID string) (entities.Payment, error) {
	if u.gateway == nil {
		return entities.Payment{}, ErrPaymentGatewayNotConfigured
	}
	id, err := parsePaymentID(paymentID)
	if err != nil {
		return entities.Payment{}, err
	}

	raw, err := u.gateway.GetPayment(ctx, id)
	if err != nil {
		u.log.Warn("get payment failed", zap.Int64("payment_id", id), zap.Error(err))
		return entities.Payment{}, err
	}
	return parsePayment(raw)
}

func (u *CheckoutUseCase) CancelPayment(ctx context.Context, paymentID string) (json.RawMessage, error) {
	if u.gateway == nil {
		return nil, ErrPaymentGatewayNotConfigured
	}
	id, err := parsePaymentID(paymentID)
	if err != nil {
		return nil, err
	}

	u.log.Info("cancel payment start", zap.Int64("payment_id", id))
	raw, err := u.gateway.CancelPayment(ctx, id)
	if err != nil {
		u.log.Warn("cancel payment failed", zap.Int64("payment_id", id), zap.Error(err))
		return nil, err
	}
	return raw, nil
}

func parsePaymentID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPaymentID, raw)
	}
	return id, nil
}

func parsePreference(raw json.RawMessage) (entities.Preference, error) {
	var resp struct {
		ID                string `json:"id"`
		ExternalReference string `json:"external_reference"`
		InitPoint         string `json:"init_point"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return entities.Preference{}, fmt.Errorf("%w: %v", ErrInvalidProviderResponse, err)
	}
	return entities.Preference{
		ID:                resp.ID,
		ExternalReference: resp.ExternalReference,
		Link:              resp.InitPoint,
	}, nil
}

func parsePayment(raw json.RawMessage) (entities.Payment, error) {
	var resp struct {
		ID                 int64  `json:"id"`
		ExternalReference  string `json:"external_reference"`
		Status             string `json:"status"`
		PointOfInteraction *struct {
			TransactionData *struct {
				TicketURL string `json:"ticket_url"`
			} `json:"transaction_data"`
		} `json:"point_of_interaction"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrInvalidProviderResponse, err)
	}

	p := entities.Payment{
		ID:                resp.ID,
		ExternalReference: resp.ExternalReference,
		Status:            entities.PaymentStatus(resp.Status),
	}
	if poi := resp.PointOfInteraction; poi != nil && poi.TransactionData != nil {
		p.TicketURL = poi.TransactionData.TicketURL
	}
	return p, nil
}
