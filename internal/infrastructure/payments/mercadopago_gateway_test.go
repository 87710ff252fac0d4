package payments

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"mercadopago_integration/internal/domain/entities"

	"go.uber.org/zap"
)

// rewriteTransport sends every SDK request to the test server.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(out)
}

type fakeProvider struct {
	authHeaders []string
	lastBody    map[string]any
}

func (f *fakeProvider) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.authHeaders = append(f.authHeaders, r.Header.Get("Authorization"))
	if r.Body != nil {
		raw, _ := io.ReadAll(r.Body)
		f.lastBody = nil
		_ = json.Unmarshal(raw, &f.lastBody)
	}
	w.Header().Set("Content-Type", "application/json")

	path := r.URL.Path
	switch {
	case r.Method == http.MethodPost && strings.HasPrefix(path, "/v1/card_tokens"):
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"tok-1","status":"active","last_four_digits":"6351"}`))
	case r.Method == http.MethodGet && strings.HasPrefix(path, "/v1/payment_methods"):
		_, _ = w.Write([]byte(`[{"id":"master","name":"Mastercard","payment_type_id":"credit_card"}]`))
	case r.Method == http.MethodPost && path == "/checkout/preferences":
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"pref-1","external_reference":"ext-1","init_point":"https://mp.test/checkout?pref_id=pref-1"}`))
	case r.Method == http.MethodGet && path == "/checkout/preferences/pref-1":
		_, _ = w.Write([]byte(`{"id":"pref-1","external_reference":"ext-1","init_point":"https://mp.test/checkout?pref_id=pref-1"}`))
	case r.Method == http.MethodPost && path == "/v1/payments":
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":123,"status":"approved","external_reference":"ext-2"}`))
	case r.Method == http.MethodGet && path == "/v1/payments/123":
		_, _ = w.Write([]byte(`{"id":123,"status":"approved","external_reference":"ext-2"}`))
	case r.Method == http.MethodPut && path == "/v1/payments/123":
		_, _ = w.Write([]byte(`{"id":123,"status":"cancelled","external_reference":"ext-2"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"resource not found","error":"not_found","status":404,"cause":[]}`))
	}
}

func newTestGateway(t *testing.T) (*MercadoPagoGateway, *fakeProvider) {
	t.Helper()
	provider := &fakeProvider{}
	srv := httptest.NewServer(provider)
	t.Cleanup(srv.Close)

	target, _ := url.Parse(srv.URL)
	client := &http.Client{Timeout: 2 * time.Second, Transport: rewriteTransport{target: target}}
	g := NewMercadoPagoGateway(Options{AccessToken: "TEST-token", HTTPClient: client}, zap.NewNop())
	return g, provider
}

func decode(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatalf("invalid json %s: %v", raw, err)
	}
	return m
}

func TestMercadoPagoGateway_SDK(t *testing.T) {
	ctx := context.Background()

	t.Run("card token", func(t *testing.T) {
		g, provider := newTestGateway(t)
		raw, err := g.CreateCardToken(ctx, entities.MockCreditCard("2030"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decode(t, raw)["id"] != "tok-1" {
			t.Fatalf("unexpected token: %s", raw)
		}
		if provider.lastBody["card_number"] != "5031433215406351" {
			t.Fatalf("card number not forwarded: %+v", provider.lastBody)
		}
		if len(provider.authHeaders) == 0 || !strings.Contains(provider.authHeaders[0], "TEST-token") {
			t.Fatalf("expected bearer token, got %v", provider.authHeaders)
		}
	})

	t.Run("payment methods", func(t *testing.T) {
		g, _ := newTestGateway(t)
		raw, err := g.ListPaymentMethods(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var list []map[string]any
		if err := json.Unmarshal(raw, &list); err != nil || len(list) != 1 || list[0]["id"] != "master" {
			t.Fatalf("unexpected list: %s err=%v", raw, err)
		}
	})

	t.Run("preference create and get", func(t *testing.T) {
		g, _ := newTestGateway(t)
		raw, err := g.CreatePreference(ctx, json.RawMessage(`{"external_reference":"ext-1","items":[{"title":"x","quantity":1,"unit_price":1}]}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		created := decode(t, raw)
		if created["id"] != "pref-1" || created["init_point"] == "" {
			t.Fatalf("unexpected preference: %s", raw)
		}

		raw, err = g.GetPreference(ctx, "pref-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decode(t, raw)["external_reference"] != "ext-1" {
			t.Fatalf("unexpected preference: %s", raw)
		}
	})

	t.Run("payment lifecycle", func(t *testing.T) {
		g, _ := newTestGateway(t)
		raw, err := g.CreatePayment(ctx, json.RawMessage(`{"transaction_amount":58.8,"payment_method_id":"master","token":"tok-1","installments":1,"payer":{"email":"x@test.com"}}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decode(t, raw)["status"] != "approved" {
			t.Fatalf("unexpected payment: %s", raw)
		}

		raw, err = g.GetPayment(ctx, 123)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decode(t, raw)["external_reference"] != "ext-2" {
			t.Fatalf("unexpected payment: %s", raw)
		}

		raw, err = g.CancelPayment(ctx, 123)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if decode(t, raw)["status"] != "cancelled" {
			t.Fatalf("unexpected cancel: %s", raw)
		}
	})

	t.Run("provider error", func(t *testing.T) {
		g, _ := newTestGateway(t)
		if _, err := g.GetPreference(ctx, "missing"); err == nil {
			t.Fatalf("expected provider error")
		}
		if _, err := g.GetPayment(ctx, 999); err == nil {
			t.Fatalf("expected provider error")
		}
	})
}

func TestMercadoPagoGateway_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	if err := g.ready(); err != ErrMercadoPagoGatewayNotConfigured {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}

	g = &MercadoPagoGateway{log: zap.NewNop()}
	if _, err := g.ListPaymentMethods(context.Background()); err != ErrMercadoPagoGatewayNotConfigured {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}
}

func TestMercadoPagoGateway_MockMode(t *testing.T) {
	ctx := context.Background()
	g := NewMercadoPagoGateway(Options{Mock: true}, zap.NewNop())

	t.Run("card token", func(t *testing.T) {
		raw, err := g.CreateCardToken(ctx, entities.MockCreditCard("2030"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		tok := decode(t, raw)
		if tok["id"] == "" || tok["last_four_digits"] != "6351" || tok["first_six_digits"] != "503143" {
			t.Fatalf("unexpected token: %s", raw)
		}
	})

	t.Run("payment methods", func(t *testing.T) {
		raw, err := g.ListPaymentMethods(ctx)
		if err != nil || !strings.Contains(string(raw), `"master"`) {
			t.Fatalf("unexpected list: %s err=%v", raw, err)
		}
	})

	t.Run("preference round trip", func(t *testing.T) {
		raw, err := g.CreatePreference(ctx, json.RawMessage(`{"external_reference":"ext-9"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		created := decode(t, raw)
		id, _ := created["id"].(string)
		link, _ := created["init_point"].(string)
		if id == "" || !strings.HasPrefix(link, "https://") {
			t.Fatalf("unexpected preference: %s", raw)
		}

		raw, err = g.GetPreference(ctx, id)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		fetched := decode(t, raw)
		if fetched["id"] != id || fetched["external_reference"] != "ext-9" {
			t.Fatalf("round trip mismatch: %s", raw)
		}

		if _, err := g.GetPreference(ctx, "nope"); err == nil || !strings.Contains(err.Error(), `"status":404`) {
			t.Fatalf("expected provider-shaped 404, got %v", err)
		}
	})

	t.Run("card payment approved and not cancellable", func(t *testing.T) {
		raw, err := g.CreatePayment(ctx, json.RawMessage(`{"payment_method_id":"master","token":"tok","external_reference":"ext-3"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := decode(t, raw)
		if p["status"] != "approved" {
			t.Fatalf("expected approved, got %s", raw)
		}
		if _, ok := p["token"]; ok {
			t.Fatalf("token must not be echoed: %s", raw)
		}
		id := int64(p["id"].(float64))

		raw, err = g.GetPayment(ctx, id)
		if err != nil || decode(t, raw)["external_reference"] != "ext-3" {
			t.Fatalf("unexpected get: %s err=%v", raw, err)
		}

		if _, err := g.CancelPayment(ctx, id); err == nil || !strings.Contains(err.Error(), "bad_request") {
			t.Fatalf("expected cancel of approved payment to fail, got %v", err)
		}
	})

	t.Run("pix payment pending and cancellable", func(t *testing.T) {
		raw, err := g.CreatePayment(ctx, json.RawMessage(`{"payment_method_id":"pix"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		p := decode(t, raw)
		if p["status"] != "pending" || !strings.Contains(string(raw), "ticket_url") {
			t.Fatalf("expected pending pix with ticket, got %s", raw)
		}
		id := int64(p["id"].(float64))

		raw, err = g.CancelPayment(ctx, id)
		if err != nil || decode(t, raw)["status"] != "cancelled" {
			t.Fatalf("unexpected cancel: %s err=%v", raw, err)
		}
	})

	t.Run("concurrent get and cancel", func(t *testing.T) {
		for i := 0; i < 200; i++ {
			raw, err := g.CreatePayment(ctx, json.RawMessage(`{"payment_method_id":"pix"}`))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			id := int64(decode(t, raw)["id"].(float64))

			var wg sync.WaitGroup
			wg.Add(2)
			go func() {
				defer wg.Done()
				if _, err := g.GetPayment(ctx, id); err != nil {
					t.Errorf("get %d: %v", id, err)
				}
			}()
			go func() {
				defer wg.Done()
				if _, err := g.CancelPayment(ctx, id); err != nil {
					t.Errorf("cancel %d: %v", id, err)
				}
			}()
			wg.Wait()
		}
	})

	t.Run("unknown payment", func(t *testing.T) {
		if _, err := g.GetPayment(ctx, 1); err == nil {
			t.Fatalf("expected not found")
		}
		if _, err := g.CancelPayment(ctx, 1); err == nil {
			t.Fatalf("expected not found")
		}
	})
}
