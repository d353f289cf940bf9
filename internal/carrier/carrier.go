package carrier

import (
    "context"
    "errors"
    "fmt"
    "strings"
    "time"
)

// Address is a warehouse origin or resolved customer destination. Street is
// optional; the remaining fields are required for a live carrier call but may
// be partially empty on the fallback-only path.
type Address struct {
    Street      string
    City        string
    State       string
    PostalCode  string
    CountryCode string
}

// TransitTimeRequest is the immutable input to a carrier transit-time call.
// A zero ShipDate defers to the carrier's own next-business-day rule.
type TransitTimeRequest struct {
    Origin      Address
    Destination Address
    ShipDate    time.Time
    ServiceType string
}

// TransitTimeResponse is the carrier's answer. When Success is true,
// DeliveryDateMin and TransitDays are set; when false, Error holds a short
// reason and the date fields are zero.
type TransitTimeResponse struct {
    Success         bool
    Error           string
    DeliveryDateMin time.Time
    DeliveryDateMax time.Time
    TransitDays     int
    ServiceName     string
    Carrier         string
}

// Credentials holds one merchant's carrier API credentials. Validity is
// all-or-nothing.
type Credentials struct {
    ClientID      string
    ClientSecret  string
    AccountNumber string
}

// Valid reports whether every credential field is a non-empty string.
func (c Credentials) Valid() bool {
    return strings.TrimSpace(c.ClientID) != "" &&
        strings.TrimSpace(c.ClientSecret) != "" &&
        strings.TrimSpace(c.AccountNumber) != ""
}

// Mode selects the carrier environment. Sandbox is the safe default.
type Mode string

const (
    ModeSandbox    Mode = "sandbox"
    ModeProduction Mode = "production"
)

// Carrier is the contract every carrier integration satisfies.
// GetTransitTime never returns an error: all failure paths collapse into an
// unsuccessful TransitTimeResponse so callers can fall back.
type Carrier interface {
    ValidateCredentials() bool
    GetTransitTime(ctx context.Context, req TransitTimeRequest) TransitTimeResponse
}

// ErrUnsupportedCarrier is returned by New for unknown carrier codes. It
// indicates a configuration bug, not a per-request condition.
var ErrUnsupportedCarrier = errors.New("unsupported carrier")

// New selects a carrier implementation by code. An empty code selects the
// default carrier (UPS).
func New(code string, creds Credentials, mode Mode) (Carrier, error) {
    switch strings.ToLower(strings.TrimSpace(code)) {
    case "", "ups":
        return NewUPS(creds, mode), nil
    default:
        return nil, fmt.Errorf("%w: %q", ErrUnsupportedCarrier, code)
    }
}

// AuthError wraps a failed credential exchange with the carrier.
type AuthError struct {
    Err error
}

func (e *AuthError) Error() string { return "carrier auth failed: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// TransportError wraps a network-level failure calling the carrier.
type TransportError struct {
    Err error
}

func (e *TransportError) Error() string { return "carrier request failed: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// ParseError wraps a malformed or unexpected carrier response body.
type ParseError struct {
    Err error
}

func (e *ParseError) Error() string { return "carrier response invalid: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }
