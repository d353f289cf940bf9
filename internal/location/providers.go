package location

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "strconv"
    "strings"
)

// NewProviders maps configured provider names to implementations, preserving
// order and skipping names it does not recognize.
func NewProviders(names []string) []Provider {
    var out []Provider
    for _, n := range names {
        switch strings.ToLower(strings.TrimSpace(n)) {
        case "ip-api":
            out = append(out, NewIPAPI())
        case "ipinfo":
            out = append(out, NewIPInfo())
        }
    }
    return out
}

// IPAPI resolves via the ip-api.com JSON endpoint.
type IPAPI struct {
    BaseURL string
    Client  *http.Client
}

func NewIPAPI() *IPAPI {
    return &IPAPI{BaseURL: "http://ip-api.com", Client: http.DefaultClient}
}

func (p *IPAPI) Name() string { return "ip-api" }

func (p *IPAPI) Resolve(ctx context.Context, ip string) (*ResolvedLocation, error) {
    url := fmt.Sprintf("%s/json/%s?fields=status,city,region,zip,countryCode,lat,lon", p.BaseURL, ip)
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
    if err != nil {
        return nil, err
    }
    res, err := p.Client.Do(req)
    if err != nil {
        return nil, err
    }
    defer res.Body.Close()
    if res.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("status %d", res.StatusCode)
    }
    var body struct {
        Status      string  `json:"status"`
        City        string  `json:"city"`
        Region      string  `json:"region"`
        Zip         string  `json:"zip"`
        CountryCode string  `json:"countryCode"`
        Lat         float64 `json:"lat"`
        Lon         float64 `json:"lon"`
    }
    if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
        return nil, err
    }
    if body.Status != "success" {
        return nil, nil
    }
    return &ResolvedLocation{
        City:        body.City,
        Region:      body.Region,
        PostalCode:  body.Zip,
        CountryCode: body.CountryCode,
        Latitude:    body.Lat,
        Longitude:   body.Lon,
        Source:      p.Name(),
    }, nil
}

// IPInfo resolves via the ipinfo.io JSON endpoint.
type IPInfo struct {
    BaseURL string
    Client  *http.Client
}

func NewIPInfo() *IPInfo {
    return &IPInfo{BaseURL: "https://ipinfo.io", Client: http.DefaultClient}
}

func (p *IPInfo) Name() string { return "ipinfo" }

func (p *IPInfo) Resolve(ctx context.Context, ip string) (*ResolvedLocation, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/"+ip+"/json", nil)
    if err != nil {
        return nil, err
    }
    res, err := p.Client.Do(req)
    if err != nil {
        return nil, err
    }
    defer res.Body.Close()
    if res.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("status %d", res.StatusCode)
    }
    var body struct {
        City    string `json:"city"`
        Region  string `json:"region"`
        Postal  string `json:"postal"`
        Country string `json:"country"`
        Loc     string `json:"loc"` // "lat,lon"
    }
    if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
        return nil, err
    }
    if body.Postal == "" {
        return nil, nil
    }
    loc := &ResolvedLocation{
        City:        body.City,
        Region:      body.Region,
        PostalCode:  body.Postal,
        CountryCode: body.Country,
        Source:      p.Name(),
    }
    if parts := strings.SplitN(body.Loc, ",", 2); len(parts) == 2 {
        if lat, err := strconv.ParseFloat(parts[0], 64); err == nil {
            loc.Latitude = lat
        }
        if lon, err := strconv.ParseFloat(parts[1], 64); err == nil {
            loc.Longitude = lon
        }
    }
    return loc, nil
}
