package estimate

import (
    "context"
    "fmt"
    "log"
    "time"

    "deliverydates/internal/calendar"
    "deliverydates/internal/carrier"
    "deliverydates/internal/location"
    "deliverydates/internal/settings"
    "deliverydates/internal/zone"
)

// Failure messages surfaced to the storefront widget. Everything else
// degrades to the heuristic fallback and is only logged.
const (
    errNotConfigured = "App not configured for this shop"
    errDisabled      = "Delivery estimates are disabled"
    errInternal      = "failed to calculate delivery estimate"
)

const dateLayout = "2006-01-02"

// DeliveryEstimate is the storefront-facing result. Success implies all
// display fields are populated; IsFallback marks the zone-heuristic path.
type DeliveryEstimate struct {
    Success         bool   `json:"success"`
    Error           string `json:"error,omitempty"`
    DeliveryDateMin string `json:"deliveryDateMin,omitempty"`
    DeliveryDateMax string `json:"deliveryDateMax,omitempty"`
    DisplayText     string `json:"displayText,omitempty"`
    Location        string `json:"location,omitempty"`
    TransitDays     int    `json:"transitDays,omitempty"`
    IsFallback      bool   `json:"isFallback,omitempty"`
}

// Locator resolves the customer destination. location.Resolver satisfies it.
type Locator interface {
    Resolve(ctx context.Context, postalOverride, clientIP string) location.ResolvedLocation
}

// CarrierFactory builds a carrier instance from per-merchant credentials.
type CarrierFactory func(code string, creds carrier.Credentials, mode carrier.Mode) (carrier.Carrier, error)

// Service composes settings, location resolution, ship-date calculation,
// the carrier call and the zone fallback into one estimate computation.
type Service struct {
    store      settings.Store
    locator    Locator
    newCarrier CarrierFactory
    mode       carrier.Mode
    now        func() time.Time
}

func New(store settings.Store, locator Locator, mode carrier.Mode) *Service {
    return &Service{
        store:      store,
        locator:    locator,
        newCarrier: carrier.New,
        mode:       mode,
        now:        time.Now,
    }
}

// Get computes the delivery estimate for one storefront request. It never
// panics past this boundary: any internal failure collapses into a generic
// unsuccessful result.
func (s *Service) Get(ctx context.Context, shop, clientIP, postalOverride string) (est DeliveryEstimate) {
    defer func() {
        if r := recover(); r != nil {
            log.Println("estimate: recovered panic:", r)
            est = DeliveryEstimate{Success: false, Error: errInternal}
        }
    }()

    cfg, err := s.store.Get(ctx, shop)
    if err != nil {
        log.Println("estimate: settings load:", err)
        cfg = nil
    }
    if cfg == nil {
        return DeliveryEstimate{Success: false, Error: errNotConfigured}
    }
    if !cfg.IsEnabled {
        return DeliveryEstimate{Success: false, Error: errDisabled}
    }

    dest := s.locator.Resolve(ctx, postalOverride, clientIP)
    origin := carrier.Address{
        Street:      cfg.WarehouseStreet,
        City:        cfg.WarehouseCity,
        State:       cfg.WarehouseState,
        PostalCode:  cfg.WarehouseZip,
        CountryCode: orDefault(cfg.WarehouseCountry, "US"),
    }
    shipDate := calendar.CalculateShipDate(s.now(), cfg.HandlingTimeDays, cfg.CutoffTime, cfg.ProcessingWeekdays())

    carrierRes := s.carrierTransit(ctx, cfg, origin, dest, shipDate)

    var (
        transitDays    int
        minDate        time.Time
        maxDate        time.Time
        fallback       bool
    )
    if carrierRes != nil {
        transitDays = carrierRes.TransitDays
        minDate = carrierRes.DeliveryDateMin
        maxDate = carrierRes.DeliveryDateMax
        if maxDate.IsZero() {
            maxDate = calendar.NextBusinessDay(minDate)
        }
    } else {
        fallback = true
        transitDays = zone.TransitDays(cfg.WarehouseZip, dest.PostalCode)
        minDate = calendar.AddBusinessDays(shipDate, transitDays, nil)
        maxDate = calendar.AddBusinessDays(shipDate, transitDays+2, nil)
    }

    return DeliveryEstimate{
        Success:         true,
        DeliveryDateMin: minDate.Format(dateLayout),
        DeliveryDateMax: maxDate.Format(dateLayout),
        DisplayText:     displayText(cfg.ShowExactDates, minDate, maxDate, transitDays),
        Location:        locationText(dest),
        TransitDays:     transitDays,
        IsFallback:      fallback,
    }
}

// carrierTransit calls the carrier when the merchant has a full credential
// set. Every failure, including factory errors, returns nil so the caller
// falls back to the zone heuristic.
func (s *Service) carrierTransit(ctx context.Context, cfg *settings.MerchantSettings, origin carrier.Address, dest location.ResolvedLocation, shipDate time.Time) *carrier.TransitTimeResponse {
    if !cfg.HasCarrierCredentials() {
        return nil
    }
    mode := s.mode
    if cfg.CarrierMode != "" {
        mode = carrier.Mode(cfg.CarrierMode)
    }
    c, err := s.newCarrier("ups", cfg.Credentials(), mode)
    if err != nil {
        log.Println("estimate: carrier construction:", err)
        return nil
    }
    res := c.GetTransitTime(ctx, carrier.TransitTimeRequest{
        Origin: origin,
        Destination: carrier.Address{
            City:        dest.City,
            State:       dest.Region,
            PostalCode:  dest.PostalCode,
            CountryCode: orDefault(dest.CountryCode, "US"),
        },
        ShipDate: shipDate,
    })
    if !res.Success {
        log.Printf("estimate: carrier %s unavailable: %s", res.Carrier, res.Error)
        return nil
    }
    return &res
}

// displayText renders the widget line: an exact date range when the merchant
// opts in, else a business-day window.
func displayText(exactDates bool, min, max time.Time, transitDays int) string {
    if exactDates {
        return "Arrives " + formatDateRange(min, max)
    }
    return fmt.Sprintf("Arrives %d-%d business days", transitDays, transitDays+2)
}

// formatDateRange compresses same-month ranges ("Feb 10 - 12") and spells
// both months otherwise ("Feb 10 - Mar 2").
func formatDateRange(min, max time.Time) string {
    if min.Year() == max.Year() && min.Month() == max.Month() {
        return fmt.Sprintf("%s - %d", min.Format("Jan 2"), max.Day())
    }
    return min.Format("Jan 2") + " - " + max.Format("Jan 2")
}

// locationText picks the display label: "City, Region" when both are known,
// else the first populated field in city, region, country order.
func locationText(dest location.ResolvedLocation) string {
    switch {
    case dest.City != "" && dest.Region != "":
        return dest.City + ", " + dest.Region
    case dest.City != "":
        return dest.City
    case dest.Region != "":
        return dest.Region
    default:
        return dest.CountryCode
    }
}

func orDefault(s, d string) string {
    if s == "" {
        return d
    }
    return s
}
