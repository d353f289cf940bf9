package carrier

import (
    "errors"
    "testing"

    "github.com/stretchr/testify/assert"
)

func TestCredentialsValid(t *testing.T) {
    cases := []struct {
        name  string
        creds Credentials
        want  bool
    }{
        {"all set", Credentials{ClientID: "id", ClientSecret: "secret", AccountNumber: "A1B2C3"}, true},
        {"empty", Credentials{}, false},
        {"missing secret", Credentials{ClientID: "id", AccountNumber: "A1B2C3"}, false},
        {"missing account", Credentials{ClientID: "id", ClientSecret: "secret"}, false},
        {"whitespace only", Credentials{ClientID: " ", ClientSecret: "secret", AccountNumber: "A1B2C3"}, false},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            assert.Equal(t, tc.want, tc.creds.Valid())
        })
    }
}

func TestNewSelectsUPS(t *testing.T) {
    c, err := New("ups", Credentials{}, ModeSandbox)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if _, ok := c.(*UPS); !ok {
        t.Fatalf("expected *UPS from New(\"ups\")")
    }
}

func TestNewDefaultsToUPS(t *testing.T) {
    c, err := New("", Credentials{}, ModeSandbox)
    if err != nil {
        t.Fatalf("unexpected error: %v", err)
    }
    if _, ok := c.(*UPS); !ok {
        t.Fatalf("expected *UPS from New(\"\")")
    }
}

func TestNewUnknownCarrier(t *testing.T) {
    _, err := New("fedex", Credentials{}, ModeSandbox)
    if !errors.Is(err, ErrUnsupportedCarrier) {
        t.Fatalf("expected ErrUnsupportedCarrier, got %v", err)
    }
}

func TestModeSelectsBaseURL(t *testing.T) {
    assert.Equal(t, upsSandboxBaseURL, NewUPS(Credentials{}, ModeSandbox).baseURL)
    assert.Equal(t, upsProductionBaseURL, NewUPS(Credentials{}, ModeProduction).baseURL)
    // Anything that is not explicitly production stays in the sandbox.
    assert.Equal(t, upsSandboxBaseURL, NewUPS(Credentials{}, Mode("")).baseURL)
}
