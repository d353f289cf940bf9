package settings

import (
    "context"
    "errors"
    "time"

    "github.com/jackc/pgx/v5"
    "github.com/jackc/pgx/v5/pgxpool"
)

// PGStore persists settings in the merchant_settings table (see schema.sql).
type PGStore struct {
    db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
    return &PGStore{db: db}
}

func (s *PGStore) Get(ctx context.Context, shop string) (*MerchantSettings, error) {
    var (
        rec  MerchantSettings
        days []int32
    )
    err := s.db.QueryRow(ctx, `
        SELECT shop, warehouse_street, warehouse_city, warehouse_state,
               warehouse_zip, warehouse_country, handling_time_days,
               cutoff_time, processing_days,
               carrier_client_id, carrier_client_secret, carrier_account_number,
               carrier_mode, is_enabled, show_exact_dates,
               created_at, updated_at
        FROM merchant_settings
        WHERE shop = $1
    `, shop).Scan(
        &rec.Shop, &rec.WarehouseStreet, &rec.WarehouseCity, &rec.WarehouseState,
        &rec.WarehouseZip, &rec.WarehouseCountry, &rec.HandlingTimeDays,
        &rec.CutoffTime, &days,
        &rec.CarrierClientID, &rec.CarrierClientSecret, &rec.CarrierAccountNumber,
        &rec.CarrierMode, &rec.IsEnabled, &rec.ShowExactDates,
        &rec.CreatedAt, &rec.UpdatedAt,
    )
    if err != nil {
        if errors.Is(err, pgx.ErrNoRows) {
            return nil, nil
        }
        return nil, err
    }
    rec.ProcessingDays = fromInt32s(days)
    return &rec, nil
}

func (s *PGStore) Upsert(ctx context.Context, in MerchantSettings) (*MerchantSettings, error) {
    now := time.Now().UTC()
    _, err := s.db.Exec(ctx, `
        INSERT INTO merchant_settings (
            shop, warehouse_street, warehouse_city, warehouse_state,
            warehouse_zip, warehouse_country, handling_time_days,
            cutoff_time, processing_days,
            carrier_client_id, carrier_client_secret, carrier_account_number,
            carrier_mode, is_enabled, show_exact_dates,
            created_at, updated_at
        ) VALUES (
            $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $16
        )
        ON CONFLICT (shop) DO UPDATE SET
            warehouse_street = EXCLUDED.warehouse_street,
            warehouse_city = EXCLUDED.warehouse_city,
            warehouse_state = EXCLUDED.warehouse_state,
            warehouse_zip = EXCLUDED.warehouse_zip,
            warehouse_country = EXCLUDED.warehouse_country,
            handling_time_days = EXCLUDED.handling_time_days,
            cutoff_time = EXCLUDED.cutoff_time,
            processing_days = EXCLUDED.processing_days,
            carrier_client_id = EXCLUDED.carrier_client_id,
            carrier_client_secret = EXCLUDED.carrier_client_secret,
            carrier_account_number = EXCLUDED.carrier_account_number,
            carrier_mode = EXCLUDED.carrier_mode,
            is_enabled = EXCLUDED.is_enabled,
            show_exact_dates = EXCLUDED.show_exact_dates,
            updated_at = EXCLUDED.updated_at
    `,
        in.Shop, in.WarehouseStreet, in.WarehouseCity, in.WarehouseState,
        in.WarehouseZip, in.WarehouseCountry, in.HandlingTimeDays,
        in.CutoffTime, toInt32s(in.ProcessingDays),
        in.CarrierClientID, in.CarrierClientSecret, in.CarrierAccountNumber,
        in.CarrierMode, in.IsEnabled, in.ShowExactDates,
        now,
    )
    if err != nil {
        return nil, err
    }
    return s.Get(ctx, in.Shop)
}

func toInt32s(in []int) []int32 {
    out := make([]int32, 0, len(in))
    for _, v := range in {
        out = append(out, int32(v))
    }
    return out
}

func fromInt32s(in []int32) []int {
    out := make([]int, 0, len(in))
    for _, v := range in {
        out = append(out, int(v))
    }
    return out
}
