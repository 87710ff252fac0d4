package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"mercadopago_integration/internal/domain/entities"
	"mercadopago_integration/internal/observability"
	"mercadopago_integration/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/cardtoken"
	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/paymentmethod"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

const (
	OpCreateCardToken    = "create_card_token"
	OpListPaymentMethods = "list_payment_methods"
	OpCreatePreference   = "create_preference"
	OpGetPreference      = "get_preference"
	OpCreatePayment      = "create_payment"
	OpGetPayment         = "get_payment"
	OpCancelPayment      = "cancel_payment"
)

// Options configures the gateway. HTTPClient overrides the outbound client;
// when nil a client with Timeout is used.
type Options struct {
	AccessToken string
	Timeout     time.Duration
	Mock        bool
	HTTPClient  *http.Client
}

type MercadoPagoGateway struct {
	cardTokens     cardtoken.Client
	paymentMethods paymentmethod.Client
	preferences    preference.Client
	payments       payment.Client

	// configErr is returned by every call when the SDK config could not be
	// built, so a bad credential surfaces per request instead of at startup.
	configErr error

	mockMode bool
	sandbox  *sandbox
	log      *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

// NewMercadoPagoGateway never fails: a missing or rejected access token is
// remembered and reported by each call.
func NewMercadoPagoGateway(opts Options, log *zap.Logger) *MercadoPagoGateway {
	log = log.Named("payment.gateway")

	if opts.Mock {
		log.Info("mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, sandbox: newSandbox(), log: log}
	}

	if opts.AccessToken == "" {
		log.Warn("missing MERCADOPAGO_ACCESS_TOKEN; provider calls will fail")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	cfg, err := config.New(opts.AccessToken, config.WithHTTPClient(httpClient))
	if err != nil {
		log.Error("failed creating sdk config", zap.Error(err))
		if opts.AccessToken == "" {
			err = fmt.Errorf("%w: %v", ErrMissingMercadoPagoAccessToken, err)
		}
		return &MercadoPagoGateway{configErr: err, log: log}
	}
	log.Info("Mercado Pago client initialized", zap.Duration("timeout", httpClient.Timeout))

	return &MercadoPagoGateway{
		cardTokens:     cardtoken.NewClient(cfg),
		paymentMethods: paymentmethod.NewClient(cfg),
		preferences:    preference.NewClient(cfg),
		payments:       payment.NewClient(cfg),
		log:            log,
	}
}

func (g *MercadoPagoGateway) CreateCardToken(ctx context.Context, card entities.CardTokenInput) (out json.RawMessage, err error) {
	defer g.observe(OpCreateCardToken, time.Now(), &err)

	if g.mockMode {
		return g.sandbox.createCardToken(card)
	}
	if err := g.ready(); err != nil {
		return nil, err
	}

	var req cardtoken.Request
	if err := convert(card, &req); err != nil {
		g.log.Error("card payload conversion failed", zap.Error(err))
		return nil, err
	}

	resp, err := g.cardTokens.Create(ctx, req)
	if err != nil {
		g.log.Error("sdk card token create failed", zap.Error(err))
		return nil, err
	}
	return json.Marshal(resp)
}

func (g *MercadoPagoGateway) ListPaymentMethods(ctx context.Context) (out json.RawMessage, err error) {
	defer g.observe(OpListPaymentMethods, time.Now(), &err)

	if g.mockMode {
		return g.sandbox.listPaymentMethods()
	}
	if err := g.ready(); err != nil {
		return nil, err
	}

	resp, err := g.paymentMethods.List(ctx)
	if err != nil {
		g.log.Error("sdk payment methods list failed", zap.Error(err))
		return nil, err
	}
	g.log.Debug("payment methods listed", zap.Int("count", len(resp)))
	return json.Marshal(resp)
}

func (g *MercadoPagoGateway) CreatePreference(ctx context.Context, requestPayload json.RawMessage) (out json.RawMessage, err error) {
	defer g.observe(OpCreatePreference, time.Now(), &err)

	if g.mockMode {
		return g.sandbox.createPreference(requestPayload)
	}
	if err := g.ready(); err != nil {
		return nil, err
	}

	var req preference.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		g.log.Error("preference payload unmarshal failed", zap.Error(err))
		return nil, err
	}

	resp, err := g.preferences.Create(ctx, req)
	if err != nil {
		g.log.Error("sdk preference create failed", zap.Error(err))
		return nil, err
	}
	g.log.Info("preference created", zap.String("preference_id", resp.ID))
	return json.Marshal(resp)
}

func (g *MercadoPagoGateway) GetPreference(ctx context.Context, preferenceID string) (out json.RawMessage, err error) {
	defer g.observe(OpGetPreference, time.Now(), &err)

	if g.mockMode {
		return g.sandbox.getPreference(preferenceID)
	}
	if err := g.ready(); err != nil {
		return nil, err
	}

	resp, err := g.preferences.Get(ctx, preferenceID)
	if err != nil {
		g.log.Error("sdk preference get failed", zap.String("preference_id", preferenceID), zap.Error(err))
		return nil, err
	}
	return json.Marshal(resp)
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (out json.RawMessage, err error) {
	defer g.observe(OpCreatePayment, time.Now(), &err)

	if g.mockMode {
		return g.sandbox.createPayment(requestPayload)
	}
	if err := g.ready(); err != nil {
		return nil, err
	}
	g.log.Debug("create start", zap.Int("payload_len", len(requestPayload)))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		g.log.Error("payment payload unmarshal failed", zap.Error(err))
		return nil, err
	}

	resp, err := g.payments.Create(ctx, req)
	if err != nil {
		g.log.Error("sdk payment create failed", zap.Error(err))
		return nil, err
	}
	g.log.Info("payment created", zap.Int("provider_payment_id", resp.ID), zap.String("provider_status", resp.Status))
	return json.Marshal(resp)
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID int64) (out json.RawMessage, err error) {
	defer g.observe(OpGetPayment, time.Now(), &err)

	if g.mockMode {
		return g.sandbox.getPayment(paymentID)
	}
	if err := g.ready(); err != nil {
		return nil, err
	}

	resp, err := g.payments.Get(ctx, int(paymentID))
	if err != nil {
		g.log.Error("sdk payment get failed", zap.Int64("payment_id", paymentID), zap.Error(err))
		return nil, err
	}
	return json.Marshal(resp)
}

func (g *MercadoPagoGateway) CancelPayment(ctx context.Context, paymentID int64) (out json.RawMessage, err error) {
	defer g.observe(OpCancelPayment, time.Now(), &err)

	if g.mockMode {
		return g.sandbox.cancelPayment(paymentID)
	}
	if err := g.ready(); err != nil {
		return nil, err
	}

	resp, err := g.payments.Cancel(ctx, int(paymentID))
	if err != nil {
		g.log.Error("sdk payment cancel failed", zap.Int64("payment_id", paymentID), zap.Error(err))
		return nil, err
	}
	g.log.Info("payment cancelled", zap.Int64("payment_id", paymentID), zap.String("provider_status", resp.Status))
	return json.Marshal(resp)
}

func (g *MercadoPagoGateway) ready() error {
	if g == nil {
		return ErrMercadoPagoGatewayNotConfigured
	}
	if g.configErr != nil {
		return g.configErr
	}
	if g.payments == nil {
		return ErrMercadoPagoGatewayNotConfigured
	}
	return nil
}

func (g *MercadoPagoGateway) observe(op string, start time.Time, err *error) {
	observability.ObserveProviderCall(op, time.Since(start), *err)
}

// convert moves a value between shapes that share json tags.
func convert(from any, to any) error {
	b, err := json.Marshal(from)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, to)
}
