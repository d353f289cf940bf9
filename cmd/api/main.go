package main

import (
    "context"
    "log"
    "net/http"
    "os"
    "strings"
    "time"

    "deliverydates/internal/carrier"
    "deliverydates/internal/config"
    "deliverydates/internal/db"
    "deliverydates/internal/estimate"
    "deliverydates/internal/location"
    "deliverydates/internal/server"
    "deliverydates/internal/settings"
)

func main() {
    cfg := config.Load()

    var store settings.Store
    if strings.TrimSpace(cfg.DatabaseURL) != "" {
        ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        pool, err := db.NewPool(ctx, cfg.DatabaseURL)
        if err != nil {
            log.Fatalf("failed to connect db: %v", err)
        }
        defer pool.Close()
        // Verify connectivity proactively
        if err := pool.Ping(ctx); err != nil {
            log.Fatalf("database ping failed: %v", err)
        }
        store = settings.NewPGStore(pool)
    } else {
        log.Println("DATABASE_URL not set; using in-memory settings store")
        store = settings.NewMemStore()
    }

    resolver := &location.Resolver{
        Postal:    location.NewPostalLookup(),
        Providers: location.NewProviders(cfg.GeoProviders),
    }
    est := estimate.New(store, resolver, carrier.Mode(cfg.CarrierMode))
    r := server.New(store, est)

    srv := &http.Server{
        Addr:              ":" + cfg.Port,
        Handler:           r,
        ReadTimeout:       10 * time.Second,
        ReadHeaderTimeout: 10 * time.Second,
        WriteTimeout:      20 * time.Second,
        IdleTimeout:       60 * time.Second,
    }

    log.Printf("api listening on :%s (CARRIER_MODE=%s, GEO_PROVIDERS=%s)", cfg.Port, cfg.CarrierMode, strings.Join(cfg.GeoProviders, ","))
    if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
        log.Println("server error:", err)
        os.Exit(1)
    }
}
