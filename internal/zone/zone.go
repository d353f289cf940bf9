package zone

import (
    "strconv"
    "strings"
)

// DefaultTransitDays is used whenever either postal code is missing or has no
// parseable sectional-center prefix.
const DefaultTransitDays = 5

// Tiered transit estimates by sectional-center distance. These are product
// contract values, not tunable defaults.
var tiers = []struct {
    maxDiff int
    days    int
}{
    {50, 2},
    {200, 3},
    {400, 4},
    {600, 5},
}

// TransitDays estimates carrier transit days from the distance between the
// two postal codes' sectional center facility prefixes. Total and
// deterministic: any input yields an estimate.
func TransitDays(originPostal, destPostal string) int {
    o, ok := scf(originPostal)
    if !ok {
        return DefaultTransitDays
    }
    d, ok := scf(destPostal)
    if !ok {
        return DefaultTransitDays
    }
    diff := o - d
    if diff < 0 {
        diff = -diff
    }
    for _, t := range tiers {
        if diff < t.maxDiff {
            return t.days
        }
    }
    return 6
}

// scf extracts the leading three digits of a postal code.
func scf(postal string) (int, bool) {
    postal = strings.TrimSpace(postal)
    if len(postal) < 3 {
        return 0, false
    }
    n, err := strconv.Atoi(postal[:3])
    if err != nil {
        return 0, false
    }
    return n, true
}
