package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationGateway/pkg/logger"
	"github.com/m04kA/SMC-ReservationGateway/pkg/metrics"
)

// echo отдает тело запроса обратно
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	_, _ = w.Write(body)
})

func TestAuth(t *testing.T) {
	const payload = `{"merchant_id":"m-1"}`

	tests := []struct {
		name       string
		cfg        AuthConfig
		path       string
		key        string
		signature  string
		wantStatus int
	}{
		{
			name:       "valid key",
			cfg:        AuthConfig{APIKey: "secret-key"},
			path:       "/google/availability-lookup",
			key:        "secret-key",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong key",
			cfg:        AuthConfig{APIKey: "secret-key"},
			path:       "/google/availability-lookup",
			key:        "secret-kez",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing key",
			cfg:        AuthConfig{APIKey: "secret-key"},
			path:       "/google/availability-lookup",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "no key configured rejects everything",
			cfg:        AuthConfig{},
			path:       "/google/availability-lookup",
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "public path",
			cfg:        AuthConfig{APIKey: "secret-key", PublicPath: []string{"/google/health"}},
			path:       "/google/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid signature",
			cfg:        AuthConfig{APIKey: "secret-key", HMACSecret: "hmac"},
			path:       "/google/create-booking",
			key:        "secret-key",
			signature:  Sign("hmac", []byte(payload)),
			wantStatus: http.StatusOK,
		},
		{
			name:       "signature over another body",
			cfg:        AuthConfig{APIKey: "secret-key", HMACSecret: "hmac"},
			path:       "/google/create-booking",
			key:        "secret-key",
			signature:  Sign("hmac", []byte(`{}`)),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing signature",
			cfg:        AuthConfig{APIKey: "secret-key", HMACSecret: "hmac"},
			path:       "/google/create-booking",
			key:        "secret-key",
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(payload))
			if tt.key != "" {
				r.Header.Set(HeaderAPIKey, tt.key)
			}
			if tt.signature != "" {
				r.Header.Set(HeaderSignature, tt.signature)
			}
			w := httptest.NewRecorder()

			Auth(tt.cfg, logger.NewNop())(echo).ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, payload, w.Body.String(), "body must reach the handler intact")
			}
		})
	}
}

func TestAuth_BodyLimit(t *testing.T) {
	body := `{"merchant_id":"m-1","padding":"` + strings.Repeat("x", 64) + `"}`
	cfg := AuthConfig{APIKey: "secret-key", HMACSecret: "hmac", MaxBody: 32}

	r := httptest.NewRequest(http.MethodPost, "/google/create-booking", strings.NewReader(body))
	r.Header.Set(HeaderAPIKey, "secret-key")
	r.Header.Set(HeaderSignature, Sign("hmac", []byte(body)))
	w := httptest.NewRecorder()

	Auth(cfg, logger.NewNop())(echo).ServeHTTP(w, r)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.JSONEq(t, `{"error":"ERROR","message":"request body too large"}`, w.Body.String())
}

func TestSign(t *testing.T) {
	sig := Sign("key", []byte("The quick brown fox jumps over the lazy dog"))

	assert.Equal(t, "sha256=f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", sig)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotEmpty(t, seen)
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, w.Header().Get(HeaderRequestID))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set(HeaderRequestID, "upstream-id")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, "upstream-id", seen)
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2, time.Minute)
	h := rl.Middleware(logger.NewNop())(echo)

	do := func(key string) int {
		r := httptest.NewRequest(http.MethodPost, "/google/availability-lookup", nil)
		r.Header.Set(HeaderAPIKey, key)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusOK, do("a"))
	assert.Equal(t, http.StatusTooManyRequests, do("a"))
	assert.Equal(t, http.StatusOK, do("b"), "limits are per client")
}

func TestRateLimiter_EvictsIdleClients(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(1, 1, time.Minute)
	rl.now = func() time.Time { return now }

	rl.limiter("ip:10.0.0.1")
	now = now.Add(2 * time.Minute)
	rl.limiter("ip:10.0.0.2")

	assert.Len(t, rl.visitors, 1)
	assert.Contains(t, rl.visitors, "ip:10.0.0.2")
}

func TestClientKey(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.10:5555"
	assert.Equal(t, "ip:192.0.2.10", clientKey(r))

	r.Header.Set(HeaderAPIKey, "k")
	assert.Equal(t, "key:k", clientKey(r))
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewWithRegisterer("gateway", reg)

	router := mux.NewRouter()
	router.Use(MetricsMiddleware(m, "gateway"))
	router.HandleFunc("/google/create-booking", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}).Methods(http.MethodPost)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/google/create-booking", nil))

	assert.Equal(t, 1.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues("gateway", http.MethodPost, "/google/create-booking", "201")))
}
