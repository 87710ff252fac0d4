package entities

import (
	"encoding/json"
	"time"
)

// Notification is an inbound IPN/webhook body. It is logged and optionally
// kept in the receipt log, never validated or acted upon.
//
// Example body:
//
//	{
//	  "action": "payment.created",
//	  "api_version": "v1",
//	  "data": {"id": "1323479563"},
//	  "date_created": "2024-05-28T20:42:45Z",
//	  "id": 113614395815,
//	  "live_mode": false,
//	  "type": "payment",
//	  "user_id": "234420836"
//	}
type Notification struct {
	ReceiptID   string          `json:"receipt_id"`
	ID          string          `json:"id,omitempty"`
	Action      string          `json:"action,omitempty"`
	Type        string          `json:"type,omitempty"`
	APIVersion  string          `json:"api_version,omitempty"`
	DataID      string          `json:"data_id,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	LiveMode    bool            `json:"live_mode"`
	DateCreated string          `json:"date_created,omitempty"`
	ReceivedAt  time.Time       `json:"received_at"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}
