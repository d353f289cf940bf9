package settings

import (
    "context"
    "sync"
    "time"
)

// MemStore is the map-backed Store used in tests and when no database is
// configured.
type MemStore struct {
    mu      sync.RWMutex
    records map[string]MerchantSettings
}

func NewMemStore() *MemStore {
    return &MemStore{records: make(map[string]MerchantSettings)}
}

func (s *MemStore) Get(ctx context.Context, shop string) (*MerchantSettings, error) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    rec, ok := s.records[shop]
    if !ok {
        return nil, nil
    }
    return &rec, nil
}

func (s *MemStore) Upsert(ctx context.Context, in MerchantSettings) (*MerchantSettings, error) {
    s.mu.Lock()
    defer s.mu.Unlock()
    now := time.Now().UTC()
    if existing, ok := s.records[in.Shop]; ok {
        in.CreatedAt = existing.CreatedAt
    } else {
        in.CreatedAt = now
    }
    in.UpdatedAt = now
    s.records[in.Shop] = in
    return &in, nil
}
