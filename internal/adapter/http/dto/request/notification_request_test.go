package request

import (
	"encoding/json"
	"testing"
)

func TestParseNotification(t *testing.T) {
	t.Run("webhook body", func(t *testing.T) {
		raw := `{"action":"payment.created","api_version":"v1","data":{"id":"1323479563"},"date_created":"2024-05-28T20:42:45Z","id":113614395815,"live_mode":false,"type":"payment","user_id":"234420836"}`
		n, err := ParseNotification([]byte(raw), NotificationQuery{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.ID != "113614395815" || n.Action != "payment.created" || n.Type != "payment" || n.DataID != "1323479563" || n.UserID != "234420836" {
			t.Fatalf("unexpected notification: %+v", n)
		}
		if string(n.Raw) != raw {
			t.Fatalf("raw body not kept: %s", n.Raw)
		}
	})

	t.Run("numeric data id and topic", func(t *testing.T) {
		n, err := ParseNotification([]byte(`{"topic":"merchant_order","resource":"https://api.mercadolibre.com/merchant_orders/777"}`), NotificationQuery{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.Type != "merchant_order" || n.DataID != "777" {
			t.Fatalf("unexpected notification: %+v", n)
		}
	})

	t.Run("empty body with ipn query", func(t *testing.T) {
		n, err := ParseNotification(nil, NotificationQuery{Topic: "payment", ID: "123"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n.Type != "payment" || n.DataID != "123" || n.Raw != nil {
			t.Fatalf("unexpected notification: %+v", n)
		}
	})

	t.Run("body wins over query", func(t *testing.T) {
		n, _ := ParseNotification([]byte(`{"type":"payment","data":{"id":1}}`), NotificationQuery{Type: "plan", DataID: "2"})
		if n.Type != "payment" || n.DataID != "1" {
			t.Fatalf("unexpected notification: %+v", n)
		}
	})

	t.Run("invalid json is kept as string", func(t *testing.T) {
		n, err := ParseNotification([]byte(`not json`), NotificationQuery{})
		if err == nil {
			t.Fatalf("expected parse error")
		}
		if !json.Valid(n.Raw) || string(n.Raw) != `"not json"` {
			t.Fatalf("expected quoted raw, got %s", n.Raw)
		}
	})

	t.Run("json array is not an object", func(t *testing.T) {
		n, err := ParseNotification([]byte(`[1,2]`), NotificationQuery{})
		if err == nil {
			t.Fatalf("expected parse error")
		}
		if string(n.Raw) != `[1,2]` {
			t.Fatalf("valid json must be kept verbatim, got %s", n.Raw)
		}
	})
}
