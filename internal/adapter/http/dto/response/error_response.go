package response

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mercadopago/sdk-go/pkg/mperror"
)

// ErrorResponse is the body of every failed call. It is sent with the
// default success status; the body is the only failure signal.
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails echoes the failure without classifying it. When the provider
// error carries a JSON body it is passed through as Cause.
type ErrorDetails struct {
	Message string          `json:"message"`
	Status  int             `json:"status,omitempty"`
	Cause   json.RawMessage `json:"cause,omitempty"`
}

func NewErrorResponse(err error) ErrorResponse {
	if err == nil {
		return ErrorResponse{Error: ErrorDetails{Message: "unknown error"}}
	}

	msg := err.Error()
	details := ErrorDetails{Message: msg}

	// SDK errors carry the HTTP status even when the body is not JSON.
	var respErr *mperror.ResponseError
	if errors.As(err, &respErr) {
		details.Status = respErr.StatusCode
		msg = respErr.Message
		details.Message = msg
	}

	body := extractJSONObject(msg)
	if body == nil {
		return ErrorResponse{Error: details}
	}

	var provider struct {
		Message string  `json:"message"`
		Status  float64 `json:"status"`
	}
	if err := json.Unmarshal(body, &provider); err == nil {
		if strings.TrimSpace(provider.Message) != "" {
			details.Message = provider.Message
		}
		if details.Status == 0 {
			details.Status = int(provider.Status)
		}
	}
	details.Cause = body
	return ErrorResponse{Error: details}
}

// extractJSONObject returns the first valid JSON object embedded in msg.
func extractJSONObject(msg string) json.RawMessage {
	start := strings.Index(msg, "{")
	end := strings.LastIndex(msg, "}")
	if start < 0 || end <= start {
		return nil
	}
	candidate := []byte(msg[start : end+1])
	if !json.Valid(candidate) {
		return nil
	}
	return json.RawMessage(candidate)
}
