package settings

import (
    "context"
    "strings"
    "time"

    "deliverydates/internal/carrier"
)

// MerchantSettings is one shop's delivery-estimate configuration. One record
// per shop, keyed by the shop identifier, owned by the settings store.
type MerchantSettings struct {
    Shop string `json:"shop"`

    WarehouseStreet  string `json:"warehouseStreet"`
    WarehouseCity    string `json:"warehouseCity"`
    WarehouseState   string `json:"warehouseState"`
    WarehouseZip     string `json:"warehouseZip"`
    WarehouseCountry string `json:"warehouseCountry"`

    HandlingTimeDays int    `json:"handlingTimeDays"`
    CutoffTime       string `json:"cutoffTime"` // "HH:MM", 24-hour
    ProcessingDays   []int  `json:"processingDays"` // weekday ints, Sunday=0

    // Write-only at the HTTP boundary; never echoed back.
    CarrierClientID      string `json:"carrierClientId,omitempty"`
    CarrierClientSecret  string `json:"carrierClientSecret,omitempty"`
    CarrierAccountNumber string `json:"carrierAccountNumber,omitempty"`
    CarrierMode          string `json:"carrierMode,omitempty"`

    IsEnabled      bool `json:"isEnabled"`
    ShowExactDates bool `json:"showExactDates"`

    CreatedAt time.Time `json:"createdAt"`
    UpdatedAt time.Time `json:"updatedAt"`
}

// Defaults returns a new record with sensible merchant defaults applied.
func Defaults(shop string) MerchantSettings {
    return MerchantSettings{
        Shop:             shop,
        WarehouseCountry: "US",
        HandlingTimeDays: 1,
        CutoffTime:       "14:00",
        ProcessingDays:   []int{1, 2, 3, 4, 5},
        IsEnabled:        true,
        ShowExactDates:   true,
    }
}

// HasCarrierCredentials reports whether the full credential set is present.
// Validity is all-or-nothing: a partial set never triggers a carrier call.
func (m *MerchantSettings) HasCarrierCredentials() bool {
    return m.Credentials().Valid()
}

// Credentials returns the carrier credential set for this merchant.
func (m *MerchantSettings) Credentials() carrier.Credentials {
    return carrier.Credentials{
        ClientID:      strings.TrimSpace(m.CarrierClientID),
        ClientSecret:  strings.TrimSpace(m.CarrierClientSecret),
        AccountNumber: strings.TrimSpace(m.CarrierAccountNumber),
    }
}

// ProcessingWeekdays converts the stored weekday ints into the set form the
// calendar package consumes. An empty set falls back to Monday through Friday.
func (m *MerchantSettings) ProcessingWeekdays() map[time.Weekday]bool {
    if len(m.ProcessingDays) == 0 {
        return nil
    }
    out := make(map[time.Weekday]bool, len(m.ProcessingDays))
    for _, d := range m.ProcessingDays {
        if d >= 0 && d <= 6 {
            out[time.Weekday(d)] = true
        }
    }
    if len(out) == 0 {
        return nil
    }
    return out
}

// Sanitized returns a copy safe to serialize at the HTTP boundary: credential
// fields are stripped, presence is signaled separately.
func (m MerchantSettings) Sanitized() MerchantSettings {
    m.CarrierClientID = ""
    m.CarrierClientSecret = ""
    m.CarrierAccountNumber = ""
    return m
}

// Store persists one settings record per shop.
type Store interface {
    // Get returns nil, nil when the shop has no record.
    Get(ctx context.Context, shop string) (*MerchantSettings, error)
    // Upsert creates the record or updates all fields, stamping UpdatedAt.
    Upsert(ctx context.Context, s MerchantSettings) (*MerchantSettings, error)
}
