package db

import (
    "context"
    "errors"
    "time"

    "github.com/jackc/pgx/v5/pgxpool"
)

// NewPool builds the settings-store connection pool. Sizing stays small: the
// estimate path reads one settings row per request and nothing else.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
    if databaseURL == "" {
        return nil, errors.New("DATABASE_URL is not set")
    }
    cfg, err := pgxpool.ParseConfig(databaseURL)
    if err != nil {
        return nil, err
    }
    cfg.MaxConns = 5
    cfg.MinConns = 0
    cfg.MaxConnLifetime = 30 * time.Minute
    cfg.MaxConnIdleTime = 5 * time.Minute
    cfg.HealthCheckPeriod = 30 * time.Second

    cfg.ConnConfig.RuntimeParams["application_name"] = "deliverydates-api"
    cfg.ConnConfig.RuntimeParams["search_path"] = "public"
    cfg.ConnConfig.RuntimeParams["client_encoding"] = "UTF8"
    cfg.ConnConfig.RuntimeParams["timezone"] = "UTC"
    // Server-side timeouts; may be ignored depending on server configuration.
    cfg.ConnConfig.RuntimeParams["statement_timeout"] = "5000"
    cfg.ConnConfig.RuntimeParams["idle_in_transaction_session_timeout"] = "5000"

    return pgxpool.NewWithConfig(ctx, cfg)
}
