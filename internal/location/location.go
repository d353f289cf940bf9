package location

import (
    "context"
    "log"
    "net"
    "net/http"
    "strings"
    "time"
)

// ResolvedLocation is a customer destination with the provenance of how it
// was resolved. Source is one of "postal-code-lookup", a geolocation provider
// name, or "default".
type ResolvedLocation struct {
    City        string  `json:"city"`
    Region      string  `json:"region"`
    PostalCode  string  `json:"postalCode"`
    CountryCode string  `json:"countryCode"`
    Latitude    float64 `json:"latitude,omitempty"`
    Longitude   float64 `json:"longitude,omitempty"`
    Source      string  `json:"source"`
}

// SourceDefault marks the static last-resort location.
const SourceDefault = "default"

// DefaultLocation is the static last-resort destination, roughly the
// population center of the US.
func DefaultLocation() ResolvedLocation {
    return ResolvedLocation{
        City:        "Kansas City",
        Region:      "MO",
        PostalCode:  "64106",
        CountryCode: "US",
        Source:      SourceDefault,
    }
}

const defaultProviderTimeout = 3 * time.Second

// Provider resolves an IP address to a location. A nil result with a nil
// error means the provider had no answer.
type Provider interface {
    Name() string
    Resolve(ctx context.Context, ip string) (*ResolvedLocation, error)
}

// Resolver implements the destination fallback chain: explicit postal code
// lookup first, then IP geolocation providers in order, then the static
// default. Resolve is total: it always yields a usable location.
type Resolver struct {
    Postal    *PostalLookup
    Providers []Provider
    Timeout   time.Duration // per provider call; defaults to 3s
}

// Resolve picks the destination for one estimate request.
func (r *Resolver) Resolve(ctx context.Context, postalOverride, clientIP string) ResolvedLocation {
    postalOverride = strings.TrimSpace(postalOverride)
    if postalOverride != "" {
        if r.Postal != nil {
            cctx, cancel := context.WithTimeout(ctx, r.timeout())
            loc, err := r.Postal.Resolve(cctx, postalOverride)
            cancel()
            if err != nil {
                log.Println("location: postal lookup:", err)
            } else if loc != nil {
                return *loc
            }
        }
        // Lookup failed: keep the customer's code, lose city/region.
        return ResolvedLocation{
            PostalCode:  postalOverride,
            CountryCode: "US",
            Source:      SourcePostalLookup,
        }
    }

    if clientIP != "" {
        for _, p := range r.Providers {
            cctx, cancel := context.WithTimeout(ctx, r.timeout())
            loc, err := p.Resolve(cctx, clientIP)
            cancel()
            if err != nil {
                log.Printf("location: provider %s: %v", p.Name(), err)
                continue
            }
            if loc != nil && loc.PostalCode != "" {
                return *loc
            }
        }
    }
    return DefaultLocation()
}

func (r *Resolver) timeout() time.Duration {
    if r.Timeout > 0 {
        return r.Timeout
    }
    return defaultProviderTimeout
}

// proxy headers carrying the original client address, most trusted first
var clientIPHeaders = []string{
    "X-Forwarded-For",
    "X-Real-IP",
    "CF-Connecting-IP",
    "True-Client-IP",
}

// ClientIP returns the first plausible public client address from the known
// proxy headers, or "" when none is present.
func ClientIP(h http.Header) string {
    for _, name := range clientIPHeaders {
        for _, candidate := range strings.Split(h.Get(name), ",") {
            candidate = strings.TrimSpace(candidate)
            if candidate == "" {
                continue
            }
            ip := net.ParseIP(candidate)
            if ip == nil {
                continue
            }
            if ip.IsPrivate() || ip.IsLoopback() || ip.IsLinkLocalUnicast() || ip.IsUnspecified() {
                continue
            }
            return candidate
        }
    }
    return ""
}
