package location

import (
    "context"
    "encoding/json"
    "fmt"
    "net/http"
    "strconv"
)

// SourcePostalLookup marks locations resolved from an explicit postal code.
const SourcePostalLookup = "postal-code-lookup"

// PostalLookup resolves a US postal code to a city/region via the
// zippopotam.us API.
type PostalLookup struct {
    BaseURL string
    Client  *http.Client
}

func NewPostalLookup() *PostalLookup {
    return &PostalLookup{BaseURL: "https://api.zippopotam.us", Client: http.DefaultClient}
}

// Resolve returns nil, nil when the code is unknown to the lookup service.
func (p *PostalLookup) Resolve(ctx context.Context, postalCode string) (*ResolvedLocation, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/us/"+postalCode, nil)
    if err != nil {
        return nil, err
    }
    res, err := p.Client.Do(req)
    if err != nil {
        return nil, err
    }
    defer res.Body.Close()
    if res.StatusCode == http.StatusNotFound {
        return nil, nil
    }
    if res.StatusCode != http.StatusOK {
        return nil, fmt.Errorf("status %d", res.StatusCode)
    }
    var body struct {
        PostCode    string `json:"post code"`
        CountryAbbr string `json:"country abbreviation"`
        Places      []struct {
            PlaceName string `json:"place name"`
            StateAbbr string `json:"state abbreviation"`
            Latitude  string `json:"latitude"`
            Longitude string `json:"longitude"`
        } `json:"places"`
    }
    if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
        return nil, err
    }
    if len(body.Places) == 0 {
        return nil, nil
    }
    place := body.Places[0]
    loc := &ResolvedLocation{
        City:        place.PlaceName,
        Region:      place.StateAbbr,
        PostalCode:  postalCode,
        CountryCode: body.CountryAbbr,
        Source:      SourcePostalLookup,
    }
    if lat, err := strconv.ParseFloat(place.Latitude, 64); err == nil {
        loc.Latitude = lat
    }
    if lon, err := strconv.ParseFloat(place.Longitude, 64); err == nil {
        loc.Longitude = lon
    }
    if loc.CountryCode == "" {
        loc.CountryCode = "US"
    }
    return loc, nil
}
