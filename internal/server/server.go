package server

import (
    "encoding/json"
    "log"
    "net/http"
    "strings"

    "github.com/go-chi/chi/v5"
    "github.com/go-chi/chi/v5/middleware"
    "github.com/google/uuid"

    "deliverydates/internal/estimate"
    "deliverydates/internal/location"
    "deliverydates/internal/settings"
)

type Server struct {
    store settings.Store
    est   *estimate.Service
}

// New wires the HTTP boundary. The estimate endpoint always answers 200 with
// a success flag in the body so storefront widgets never branch on status
// codes; settings endpoints use real statuses.
func New(store settings.Store, est *estimate.Service) http.Handler {
    s := &Server{store: store, est: est}
    r := chi.NewRouter()
    // Observability: Request ID and basic logger
    r.Use(requestIDMiddleware)
    r.Use(middleware.Logger)
    r.Get("/healthz", s.handleHealth)
    r.Get("/api/delivery-estimate", s.handleGetEstimate)
    r.Get("/api/settings/{shop}", s.handleGetSettings)
    r.Put("/api/settings/{shop}", s.handlePutSettings)
    return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
    w.WriteHeader(http.StatusOK)
    w.Write([]byte("ok"))
}

func (s *Server) handleGetEstimate(w http.ResponseWriter, r *http.Request) {
    q := r.URL.Query()
    shop := strings.TrimSpace(q.Get("shop"))
    if shop == "" {
        writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "shop required")
        return
    }
    postal := strings.TrimSpace(q.Get("postal_code"))
    clientIP := location.ClientIP(r.Header)

    res := s.est.Get(r.Context(), shop, clientIP, postal)
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(res)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
    shop := strings.TrimSpace(chi.URLParam(r, "shop"))
    if shop == "" {
        writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "shop required")
        return
    }
    rec, err := s.store.Get(r.Context(), shop)
    if err != nil {
        log.Println("get settings error:", err)
        writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
        return
    }
    if rec == nil {
        writeErrorJSON(w, http.StatusNotFound, "resource_not_found", "not found")
        return
    }
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(rec.Sanitized())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
    shop := strings.TrimSpace(chi.URLParam(r, "shop"))
    if shop == "" {
        writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "shop required")
        return
    }

    // Merge semantics: decode over the existing record (or defaults on
    // create) so absent fields keep their values.
    base, err := s.store.Get(r.Context(), shop)
    if err != nil {
        log.Println("load settings error:", err)
        writeErrorJSON(w, http.StatusInternalServerError, "db_error", "db error")
        return
    }
    rec := settings.Defaults(shop)
    if base != nil {
        rec = *base
    }
    if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
        writeErrorJSON(w, http.StatusBadRequest, "invalid_json", "invalid json")
        return
    }
    rec.Shop = shop
    if rec.HandlingTimeDays < 0 {
        writeErrorJSON(w, http.StatusBadRequest, "invalid_request", "handlingTimeDays must be >= 0")
        return
    }

    saved, err := s.store.Upsert(r.Context(), rec)
    if err != nil {
        log.Println("upsert settings error:", err)
        writeErrorJSON(w, http.StatusInternalServerError, "db_error", "failed to save settings")
        return
    }
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(saved.Sanitized())
}

// writeErrorJSON writes a standardized JSON error response:
// {"error": {"code": string, "message": string}}
func writeErrorJSON(w http.ResponseWriter, status int, code string, message string) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(map[string]any{
        "error": map[string]string{
            "code":    code,
            "message": message,
        },
    })
}

// requestIDMiddleware ensures X-Request-ID is set on the response.
// If provided in the request header, it is propagated; otherwise a UUID is generated.
func requestIDMiddleware(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        rid := strings.TrimSpace(r.Header.Get("X-Request-ID"))
        if rid == "" {
            rid = uuid.New().String()
        }
        w.Header().Set("X-Request-ID", rid)
        next.ServeHTTP(w, r)
    })
}
