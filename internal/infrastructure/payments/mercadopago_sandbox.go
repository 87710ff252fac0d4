package payments

import (
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"mercadopago_integration/internal/domain/entities"

	"github.com/google/uuid"
)

// sandbox answers gateway calls with provider-shaped payloads when mock mode
// is on. Created preferences and payments are kept so fetch-by-id works.
// Stored maps are mutated in place by cancel, so they are only read or
// marshalled while mu is held.
type sandbox struct {
	mu          sync.Mutex
	preferences map[string]map[string]any
	payments    map[int64]map[string]any
	nextID      int64
}

func newSandbox() *sandbox {
	return &sandbox{
		preferences: map[string]map[string]any{},
		payments:    map[int64]map[string]any{},
		nextID:      time.Now().UTC().Unix(),
	}
}

// notFoundError mimics the provider's error body so callers see the same
// shape as a real 404.
func notFoundError(resource, id string) error {
	return fmt.Errorf(`{"message":"%s not found","error":"not_found","status":404,"cause":[{"code":"not_found","description":"%s %s not found"}]}`, resource, resource, id)
}

func (s *sandbox) createCardToken(card entities.CardTokenInput) (json.RawMessage, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	lastFour := card.CardNumber
	if len(lastFour) > 4 {
		lastFour = lastFour[len(lastFour)-4:]
	}
	firstSix := card.CardNumber
	if len(firstSix) > 6 {
		firstSix = firstSix[:6]
	}
	month, _ := strconv.Atoi(card.ExpirationMonth)
	year, _ := strconv.Atoi(card.ExpirationYear)

	return json.Marshal(map[string]any{
		"id":                   uuid.NewString(),
		"first_six_digits":     firstSix,
		"last_four_digits":     lastFour,
		"expiration_month":     month,
		"expiration_year":      year,
		"cardholder":           card.Cardholder,
		"status":               "active",
		"date_created":         now,
		"date_last_updated":    now,
		"date_due":             time.Now().UTC().Add(7 * 24 * time.Hour).Format(time.RFC3339Nano),
		"luhn_validation":      true,
		"live_mode":            false,
		"card_number_length":   len(card.CardNumber),
		"security_code_length": len(card.SecurityCode),
	})
}

func (s *sandbox) listPaymentMethods() (json.RawMessage, error) {
	return json.Marshal([]map[string]any{
		{"id": "master", "name": "Mastercard", "payment_type_id": "credit_card", "status": "active"},
		{"id": "visa", "name": "Visa", "payment_type_id": "credit_card", "status": "active"},
		{"id": "pix", "name": "PIX", "payment_type_id": "bank_transfer", "status": "active"},
		{"id": "bolbradesco", "name": "Boleto", "payment_type_id": "ticket", "status": "active"},
	})
}

func (s *sandbox) createPreference(requestPayload json.RawMessage) (json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	id := fmt.Sprintf("%d-%s", s.newID(), uuid.NewString())
	resp["id"] = id
	resp["init_point"] = "https://www.mercadopago.com.br/checkout/v1/redirect?pref_id=" + id
	resp["sandbox_init_point"] = "https://sandbox.mercadopago.com.br/checkout/v1/redirect?pref_id=" + id
	resp["date_created"] = time.Now().UTC().Format(time.RFC3339Nano)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.preferences[id] = resp
	return json.Marshal(resp)
}

func (s *sandbox) getPreference(id string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, ok := s.preferences[id]
	if !ok {
		return nil, notFoundError("preference", id)
	}
	return json.Marshal(resp)
}

func (s *sandbox) createPayment(requestPayload json.RawMessage) (json.RawMessage, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	id := s.newID()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	resp["id"] = id
	if method, _ := resp["payment_method_id"].(string); method == "pix" {
		resp["status"] = string(entities.PaymentStatusPending)
		resp["status_detail"] = "pending_waiting_transfer"
		resp["point_of_interaction"] = map[string]any{
			"type": "PIX",
			"transaction_data": map[string]any{
				"ticket_url": fmt.Sprintf("https://www.mercadopago.com.br/payments/%d/ticket", id),
			},
		}
	} else {
		resp["status"] = string(entities.PaymentStatusApproved)
		resp["status_detail"] = "accredited"
		resp["date_approved"] = now
	}
	resp["date_created"] = now
	delete(resp, "token")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.payments[id] = resp
	return json.Marshal(resp)
}

func (s *sandbox) getPayment(id int64) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, ok := s.payments[id]
	if !ok {
		return nil, notFoundError("payment", strconv.FormatInt(id, 10))
	}
	return json.Marshal(resp)
}

func (s *sandbox) cancelPayment(id int64) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	resp, ok := s.payments[id]
	if !ok {
		return nil, notFoundError("payment", strconv.FormatInt(id, 10))
	}
	status, _ := resp["status"].(string)
	if status != string(entities.PaymentStatusPending) && status != string(entities.PaymentStatusInProcess) {
		return nil, fmt.Errorf(`{"message":"Invalid status for cancel","error":"bad_request","status":400,"cause":[{"code":"invalid_status","description":"payment %d has status %s"}]}`, id, status)
	}
	resp["status"] = string(entities.PaymentStatusCancelled)
	resp["status_detail"] = "by_collector"
	resp["date_last_updated"] = time.Now().UTC().Format(time.RFC3339Nano)
	return json.Marshal(resp)
}

func (s *sandbox) newID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	return s.nextID
}
