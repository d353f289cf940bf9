package carrier

import (
    "bytes"
    "context"
    "encoding/json"
    "fmt"
    "log"
    "net/http"
    "strconv"
    "strings"
    "time"

    "golang.org/x/oauth2"
    "golang.org/x/oauth2/clientcredentials"

    "deliverydates/internal/calendar"
)

const (
    upsSandboxBaseURL    = "https://wwwcie.ups.com"
    upsProductionBaseURL = "https://onlinetools.ups.com"
    upsOAuthTokenPath    = "/security/v1/oauth/token"
    upsRatePath          = "/api/rating/v2409/Rate"

    upsDefaultService = "03" // Ground

    // Transit window applied when the rate response carries no usable
    // transit signal at all.
    upsDefaultTransitDays = 3
    upsWindowSpreadDays   = 2

    tokenRefreshMargin = 5 * time.Minute
    upsCallTimeout     = 5 * time.Second
)

// UPS talks to the UPS Rating API. Each instance is scoped to one merchant's
// credentials; the token source caches the OAuth token for that merchant and
// refreshes it five minutes before expiry.
type UPS struct {
    creds   Credentials
    baseURL string
    client  *http.Client
    tokens  oauth2.TokenSource
}

// NewUPS builds a UPS client for the given environment.
func NewUPS(creds Credentials, mode Mode) *UPS {
    base := upsSandboxBaseURL
    if mode == ModeProduction {
        base = upsProductionBaseURL
    }
    return newUPS(creds, base)
}

func newUPS(creds Credentials, baseURL string) *UPS {
    client := &http.Client{Timeout: 10 * time.Second}
    cc := &clientcredentials.Config{
        ClientID:     creds.ClientID,
        ClientSecret: creds.ClientSecret,
        TokenURL:     baseURL + upsOAuthTokenPath,
        AuthStyle:    oauth2.AuthStyleInHeader,
    }
    tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, client)
    return &UPS{
        creds:   creds,
        baseURL: baseURL,
        client:  client,
        tokens:  oauth2.ReuseTokenSourceWithExpiry(nil, cc.TokenSource(tokenCtx), tokenRefreshMargin),
    }
}

func (u *UPS) ValidateCredentials() bool { return u.creds.Valid() }

// GetTransitTime quotes a delivery window for the request. It never returns
// an error: missing credentials, auth, transport and decode failures all
// produce an unsuccessful response the caller can fall back from.
func (u *UPS) GetTransitTime(ctx context.Context, req TransitTimeRequest) TransitTimeResponse {
    if !u.creds.Valid() {
        return upsFailure("credentials not configured")
    }

    tok, err := u.tokens.Token()
    if err != nil {
        log.Println("ups:", &AuthError{Err: err})
        return upsFailure("authentication failed")
    }

    shipDate := req.ShipDate
    if shipDate.IsZero() {
        shipDate = calendar.NextBusinessDay(time.Now())
    }

    payload, err := json.Marshal(u.rateRequest(req, shipDate))
    if err != nil {
        log.Println("ups: marshal rate request:", err)
        return upsFailure("invalid rate request")
    }

    cctx, cancel := context.WithTimeout(ctx, upsCallTimeout)
    defer cancel()
    httpReq, err := http.NewRequestWithContext(cctx, http.MethodPost, u.baseURL+upsRatePath, bytes.NewReader(payload))
    if err != nil {
        log.Println("ups:", &TransportError{Err: err})
        return upsFailure("carrier unreachable")
    }
    httpReq.Header.Set("Content-Type", "application/json")
    httpReq.Header.Set("Authorization", "Bearer "+tok.AccessToken)

    res, err := u.client.Do(httpReq)
    if err != nil {
        log.Println("ups:", &TransportError{Err: err})
        return upsFailure("carrier unreachable")
    }
    defer res.Body.Close()
    if res.StatusCode != http.StatusOK {
        log.Println("ups:", &TransportError{Err: fmt.Errorf("status %d", res.StatusCode)})
        return upsFailure(fmt.Sprintf("carrier returned status %d", res.StatusCode))
    }

    var parsed upsRateResponse
    if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
        log.Println("ups:", &ParseError{Err: err})
        return upsFailure("carrier response invalid")
    }
    rated := parsed.RateResponse.RatedShipment
    if len(rated) == 0 {
        log.Println("ups:", &ParseError{Err: fmt.Errorf("no rated shipments")})
        return upsFailure("no rate data")
    }
    return u.buildResponse(rated[0], shipDate)
}

// buildResponse derives the delivery window from whatever transit signal the
// rated shipment carries: a quoted business-day count, a leading integer in
// the free-text service description, or the fixed default.
func (u *UPS) buildResponse(rs upsRatedShipment, shipDate time.Time) TransitTimeResponse {
    resp := TransitTimeResponse{Success: true, Carrier: "ups"}
    resp.ServiceName = rs.Service.Description
    if resp.ServiceName == "" {
        resp.ServiceName = rs.TimeInTransit.ServiceSummary.Service.Description
    }

    days := parseDayCount(rs.GuaranteedDelivery.BusinessDaysInTransit)
    if days == 0 {
        days = parseDayCount(rs.TimeInTransit.ServiceSummary.EstimatedArrival.BusinessDaysInTransit)
    }
    if days == 0 {
        days = leadingInt(rs.Service.Description)
    }

    if arrival, ok := parseUPSDate(rs.TimeInTransit.ServiceSummary.EstimatedArrival.Arrival.Date); ok {
        resp.DeliveryDateMin = arrival
        resp.DeliveryDateMax = calendar.NextBusinessDay(arrival)
        if days == 0 {
            days = calendar.BusinessDaysBetween(shipDate, arrival, nil)
        }
    } else {
        if days == 0 {
            days = upsDefaultTransitDays
        }
        resp.DeliveryDateMin = calendar.AddBusinessDays(shipDate, days, nil)
        resp.DeliveryDateMax = calendar.AddBusinessDays(shipDate, days+upsWindowSpreadDays, nil)
    }
    resp.TransitDays = days
    return resp
}

func (u *UPS) rateRequest(req TransitTimeRequest, shipDate time.Time) map[string]any {
    service := req.ServiceType
    if service == "" {
        service = upsDefaultService
    }
    return map[string]any{
        "RateRequest": map[string]any{
            "Request": map[string]any{
                "RequestOption": "Rate",
            },
            "Shipment": map[string]any{
                "Shipper": map[string]any{
                    "ShipperNumber": u.creds.AccountNumber,
                    "Address":       upsAddress(req.Origin),
                },
                "ShipFrom": map[string]any{
                    "Address": upsAddress(req.Origin),
                },
                "ShipTo": map[string]any{
                    "Address": upsAddress(req.Destination),
                },
                "Service": map[string]any{
                    "Code": service,
                },
                "Package": map[string]any{
                    "PackagingType": map[string]any{"Code": "02"},
                    "PackageWeight": map[string]any{
                        "UnitOfMeasurement": map[string]any{"Code": "LBS"},
                        "Weight":            "1",
                    },
                },
                "DeliveryTimeInformation": map[string]any{
                    "PackageBillType": "03",
                    "Pickup": map[string]any{
                        "Date": shipDate.Format("20060102"),
                    },
                },
            },
        },
    }
}

func upsAddress(a Address) map[string]any {
    m := map[string]any{
        "City":              a.City,
        "StateProvinceCode": a.State,
        "PostalCode":        a.PostalCode,
        "CountryCode":       a.CountryCode,
    }
    if a.Street != "" {
        m["AddressLine"] = []string{a.Street}
    }
    return m
}

type upsRatedShipment struct {
    Service struct {
        Code        string `json:"Code"`
        Description string `json:"Description"`
    } `json:"Service"`
    GuaranteedDelivery struct {
        BusinessDaysInTransit string `json:"BusinessDaysInTransit"`
        DeliveryByTime        string `json:"DeliveryByTime"`
    } `json:"GuaranteedDelivery"`
    TimeInTransit struct {
        ServiceSummary struct {
            Service struct {
                Description string `json:"Description"`
            } `json:"Service"`
            EstimatedArrival struct {
                BusinessDaysInTransit string `json:"BusinessDaysInTransit"`
                Arrival               struct {
                    Date string `json:"Date"` // YYYYMMDD
                    Time string `json:"Time"`
                } `json:"Arrival"`
            } `json:"EstimatedArrival"`
        } `json:"ServiceSummary"`
    } `json:"TimeInTransit"`
}

type upsRateResponse struct {
    RateResponse struct {
        RatedShipment []upsRatedShipment `json:"RatedShipment"`
    } `json:"RateResponse"`
}

func upsFailure(msg string) TransitTimeResponse {
    return TransitTimeResponse{Success: false, Error: msg, Carrier: "ups"}
}

func parseDayCount(s string) int {
    n, err := strconv.Atoi(strings.TrimSpace(s))
    if err != nil || n < 0 {
        return 0
    }
    return n
}

// leadingInt parses the leading digit run of a free-text transit description,
// e.g. "3 Day Select" or "2-5 business days".
func leadingInt(s string) int {
    s = strings.TrimSpace(s)
    i := 0
    for i < len(s) && s[i] >= '0' && s[i] <= '9' {
        i++
    }
    if i == 0 {
        return 0
    }
    n, err := strconv.Atoi(s[:i])
    if err != nil {
        return 0
    }
    return n
}

func parseUPSDate(s string) (time.Time, bool) {
    s = strings.TrimSpace(s)
    if s == "" {
        return time.Time{}, false
    }
    t, err := time.Parse("20060102", s)
    if err != nil {
        return time.Time{}, false
    }
    return t, true
}
