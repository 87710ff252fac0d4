package request

import (
	"encoding/json"
	"fmt"
	"strings"

	"mercadopago_integration/internal/domain/entities"
)

// NotificationRequest is the webhook/IPN body sent by Mercado Pago. Ids come
// as numbers or strings depending on the topic, so they are decoded loosely.
type NotificationRequest struct {
	ID          any    `json:"id"`
	Action      string `json:"action"`
	Type        string `json:"type"`
	Topic       string `json:"topic"`
	APIVersion  string `json:"api_version"`
	UserID      any    `json:"user_id"`
	LiveMode    bool   `json:"live_mode"`
	DateCreated string `json:"date_created"`
	Resource    string `json:"resource"`
	Data        struct {
		ID any `json:"id"`
	} `json:"data"`
}

// NotificationQuery holds the IPN query string (?topic=payment&id=123 or
// ?type=payment&data.id=123).
type NotificationQuery struct {
	Topic  string
	Type   string
	ID     string
	DataID string
}

// ParseNotification never drops the body: the returned notification always
// carries Raw, and the error only reports that the body was not a JSON
// object.
func ParseNotification(raw []byte, q NotificationQuery) (entities.Notification, error) {
	n := entities.Notification{}
	if trimmed := strings.TrimSpace(string(raw)); trimmed != "" {
		n.Raw = json.RawMessage(trimmed)
	}

	var parseErr error
	if len(n.Raw) > 0 {
		var req NotificationRequest
		if err := json.Unmarshal(n.Raw, &req); err != nil {
			parseErr = err
			if !json.Valid(n.Raw) {
				// keep the receipt log valid JSON
				quoted, _ := json.Marshal(string(n.Raw))
				n.Raw = quoted
			}
		} else {
			n.ID = looseString(req.ID)
			n.Action = req.Action
			n.Type = firstNonEmpty(req.Type, req.Topic)
			n.APIVersion = req.APIVersion
			n.UserID = looseString(req.UserID)
			n.LiveMode = req.LiveMode
			n.DateCreated = req.DateCreated
			n.DataID = firstNonEmpty(looseString(req.Data.ID), resourceID(req.Resource))
		}
	}

	n.Type = firstNonEmpty(n.Type, q.Type, q.Topic)
	n.DataID = firstNonEmpty(n.DataID, q.DataID, q.ID)
	return n, parseErr
}

func looseString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// resourceID takes the trailing path segment of a resource URL such as
// https://api.mercadolibre.com/merchant_orders/123.
func resourceID(resource string) string {
	resource = strings.TrimRight(strings.TrimSpace(resource), "/")
	if resource == "" {
		return ""
	}
	if i := strings.LastIndex(resource, "/"); i >= 0 {
		return resource[i+1:]
	}
	return resource
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

