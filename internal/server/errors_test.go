package server

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
)

// helper to parse standardized error
type stdError struct {
    Error struct {
        Code    string `json:"code"`
        Message string `json:"message"`
    } `json:"error"`
}

func TestGetEstimate_MissingShop_ErrorJSON(t *testing.T) {
    h, _ := newTestHandler()
    req := httptest.NewRequest(http.MethodGet, "/api/delivery-estimate", nil)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d; body=%s", rr.Code, rr.Body.String())
    }
    var e stdError
    if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
        t.Fatalf("unmarshal error: %v", err)
    }
    if e.Error.Code != "invalid_request" {
        t.Fatalf("unexpected error code: %s", e.Error.Code)
    }
}

func TestGetSettings_NotFound_ErrorJSON(t *testing.T) {
    h, _ := newTestHandler()
    req := httptest.NewRequest(http.MethodGet, "/api/settings/nope.example.com", nil)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusNotFound {
        t.Fatalf("expected 404, got %d; body=%s", rr.Code, rr.Body.String())
    }
    var e stdError
    if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
        t.Fatalf("unmarshal error: %v", err)
    }
    if e.Error.Code != "resource_not_found" {
        t.Fatalf("unexpected error code: %s", e.Error.Code)
    }
}

func TestPutSettings_InvalidJSON_ErrorJSON(t *testing.T) {
    h, _ := newTestHandler()
    req := httptest.NewRequest(http.MethodPut, "/api/settings/demo.example.com", strings.NewReader("{not json"))
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d; body=%s", rr.Code, rr.Body.String())
    }
    var e stdError
    if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
        t.Fatalf("unmarshal error: %v", err)
    }
    if e.Error.Code != "invalid_json" {
        t.Fatalf("unexpected error code: %s", e.Error.Code)
    }
}

func TestGetSettings_MissingShop_ErrorJSON(t *testing.T) {
    h, _ := newTestHandler()
    // space decodes to empty after trim
    req := httptest.NewRequest(http.MethodGet, "/api/settings/%20", nil)
    rr := httptest.NewRecorder()
    h.ServeHTTP(rr, req)
    if rr.Code != http.StatusBadRequest {
        t.Fatalf("expected 400, got %d; body=%s", rr.Code, rr.Body.String())
    }
    var e stdError
    if err := json.Unmarshal(rr.Body.Bytes(), &e); err != nil {
        t.Fatalf("unmarshal error: %v", err)
    }
    if e.Error.Code != "invalid_request" {
        t.Fatalf("unexpected error code: %s", e.Error.Code)
    }
}
