package apperror

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// Kind classifies a client-side failure.
type Kind int

const (
	// KindNetwork means no response was received at all.
	KindNetwork Kind = iota
	// KindAPI means the server answered with a structured error body.
	KindAPI
	// KindAuth means a 401 survived the refresh-and-retry cycle.
	KindAuth
	// KindBusiness means the operation was rejected locally before any request.
	KindBusiness
)

// AppError represents an application error surfaced to callers.
type AppError struct {
	Kind    Kind         `json:"-"`
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
	cause   error
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the underlying transport error, if any.
func (e *AppError) Unwrap() error {
	return e.cause
}

// Common errors
var (
	ErrEmptyCart       = &AppError{Kind: KindBusiness, Message: "Cart is empty"}
	ErrPlanRequired    = &AppError{Kind: KindBusiness, Message: "Upgrade plan required"}
	ErrSaleInProgress  = &AppError{Kind: KindBusiness, Message: "A sale is already being submitted"}
	ErrSessionExpired  = &AppError{Kind: KindAuth, Code: http.StatusUnauthorized, Message: "Session expired, please log in again"}
	ErrNotLoggedIn     = &AppError{Kind: KindAuth, Code: http.StatusUnauthorized, Message: "Not logged in"}
	ErrShopUnavailable = &AppError{Kind: KindBusiness, Message: "Shop profile is not available"}
)

// NewNetworkError wraps a transport-level failure (no response reachable).
func NewNetworkError(err error) *AppError {
	return &AppError{
		Kind:    KindNetwork,
		Message: "Network error. Please check your connection.",
		cause:   err,
	}
}

// NewBusinessError creates a client-side business-rule rejection.
func NewBusinessError(message string) *AppError {
	return &AppError{Kind: KindBusiness, Message: message}
}

// NewAuthError creates an authentication failure with the given message.
func NewAuthError(message string) *AppError {
	return &AppError{Kind: KindAuth, Code: http.StatusUnauthorized, Message: message}
}

// FromResponse builds an AppError from a non-2xx API response body.
// The message is extracted with ExtractMessage; a 401 is classified as
// an authentication failure, everything else as a structured API error.
func FromResponse(statusCode int, body []byte) *AppError {
	kind := KindAPI
	if statusCode == http.StatusUnauthorized {
		kind = KindAuth
	}
	return &AppError{
		Kind:    kind,
		Code:    statusCode,
		Message: ExtractMessage(body),
		Errors:  extractFieldErrors(body),
	}
}

// ExtractMessage pulls a human-readable message out of an API error body.
// Lookup order: "detail" field, "error" field, first field-level array error
// (formatted as "Field: message"), then a generic fallback.
func ExtractMessage(body []byte) string {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil || len(data) == 0 {
		return "Something went wrong. Please try again."
	}

	if msg, ok := stringField(data, "detail"); ok {
		return msg
	}
	if msg, ok := stringField(data, "error"); ok {
		return msg
	}

	if fe := extractFieldErrors(body); len(fe) > 0 {
		return capitalize(fe[0].Field) + ": " + fe[0].Message
	}

	return "Something went wrong. Please try again."
}

// IsNetwork reports whether err is a network-level failure.
func IsNetwork(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindNetwork
}

// IsAuth reports whether err is an authentication failure.
func IsAuth(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == KindAuth
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible.
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: KindAPI, Code: http.StatusInternalServerError, Message: err.Error()}
}

func stringField(data map[string]json.RawMessage, key string) (string, bool) {
	raw, ok := data[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// extractFieldErrors collects per-field array messages, e.g.
// {"mobile": ["Invalid number"]} becomes [{mobile, Invalid number}].
func extractFieldErrors(body []byte) []FieldError {
	var data map[string]json.RawMessage
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}

	var out []FieldError
	for _, key := range sortedKeys(data) {
		if key == "detail" || key == "error" {
			continue
		}
		var msgs []string
		if err := json.Unmarshal(data[key], &msgs); err != nil || len(msgs) == 0 {
			continue
		}
		out = append(out, FieldError{Field: key, Message: msgs[0]})
	}
	return out
}

func sortedKeys(data map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	// Keep extraction deterministic regardless of map iteration order.
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j] < keys[j-1]; j-- {
			keys[j], keys[j-1] = keys[j-1], keys[j]
		}
	}
	return keys
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
