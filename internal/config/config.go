package config

import (
    "os"
    "strings"

    "github.com/joho/godotenv"
)

type Config struct {
    DatabaseURL  string
    Port         string
    CarrierMode  string
    GeoProviders []string
}

func Load() Config {
    // Best effort; env vars win over .env entries.
    _ = godotenv.Load()

    port := os.Getenv("PORT")
    if port == "" {
        port = "8080"
    }
    mode := os.Getenv("CARRIER_MODE")
    if mode == "" {
        mode = "sandbox"
    }
    providers := splitList(os.Getenv("GEO_PROVIDERS"))
    if len(providers) == 0 {
        providers = []string{"ip-api", "ipinfo"}
    }
    return Config{
        DatabaseURL:  os.Getenv("DATABASE_URL"),
        Port:         port,
        CarrierMode:  mode,
        GeoProviders: providers,
    }
}

func splitList(s string) []string {
    var out []string
    for _, part := range strings.Split(s, ",") {
        if part = strings.TrimSpace(part); part != "" {
            out = append(out, part)
        }
    }
    return out
}
