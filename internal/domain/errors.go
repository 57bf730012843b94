package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials indicates the weather API credentials are not configured
	ErrMissingCredentials = errors.New("weather credentials missing: QWEATHER_KEY_ID, QWEATHER_PROJECT_ID and QWEATHER_PRIVATE_KEY are required")

	// ErrTokenTTLTooLong indicates a requested token lifetime beyond the API maximum
	ErrTokenTTLTooLong = errors.New("token ttl must not exceed 24 hours (86400 seconds)")

	// ErrCityNotFound indicates geocoding failed on every host
	ErrCityNotFound = errors.New("city not found: try the full city name (e.g. 北京市), pinyin (e.g. beijing), or check the spelling")

	// ErrItemNotFound indicates a wardrobe item does not exist or belongs to another user
	ErrItemNotFound = errors.New("item not found")
)

// KeyFormatError indicates private key material of an unexpected size.
// Accepted encodings are a 32-byte raw Ed25519 seed or a 48-byte PKCS#8
// envelope whose last 32 bytes are the seed.
type KeyFormatError struct {
	Length int
}

func (e *KeyFormatError) Error() string {
	return fmt.Sprintf("invalid private key length: %d bytes (expected 32 or 48)", e.Length)
}

// UpstreamError wraps a failure talking to an external service. It covers
// transport errors (StatusCode 0), non-success HTTP statuses and
// undecodable response bodies. The orchestrator falls back to the
// rule-based generator only on this type.
type UpstreamError struct {
	Service    string
	StatusCode int
	Status     string
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Service, e.Message)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s returned %d %s", e.Service, e.StatusCode, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s request failed: %v", e.Service, e.Err)
	}
	return fmt.Sprintf("%s request failed", e.Service)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// IsAuth reports whether the upstream rejected our credentials
func (e *UpstreamError) IsAuth() bool {
	return e.StatusCode == 401 || e.StatusCode == 403
}
