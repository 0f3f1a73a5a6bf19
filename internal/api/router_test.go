package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ReservationGateway/internal/api/middleware"
	"github.com/m04kA/SMC-ReservationGateway/pkg/logger"
)

type stubHandler struct{ name string }

func (s stubHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	_, _ = w.Write([]byte(s.name))
}

func newTestRouter() http.Handler {
	return NewRouter(Handlers{
		Health:             stubHandler{"health"},
		AvailabilityLookup: stubHandler{"lookup"},
		CreateBooking:      stubHandler{"create"},
		UpdateBooking:      stubHandler{"update"},
	}, RouterOptions{Auth: middleware.AuthConfig{APIKey: "k"}}, logger.NewNop())
}

func TestNewRouter(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		key        string
		wantStatus int
		wantBody   string
	}{
		{name: "health is public", method: http.MethodGet, path: "/google/health", wantStatus: http.StatusOK, wantBody: "health"},
		{name: "lookup", method: http.MethodPost, path: "/google/availability-lookup", key: "k", wantStatus: http.StatusOK, wantBody: "lookup"},
		{name: "create", method: http.MethodPost, path: "/google/create-booking", key: "k", wantStatus: http.StatusOK, wantBody: "create"},
		{name: "update", method: http.MethodPost, path: "/google/update-booking", key: "k", wantStatus: http.StatusOK, wantBody: "update"},
		{name: "lookup without key", method: http.MethodPost, path: "/google/availability-lookup", wantStatus: http.StatusForbidden},
		{name: "wrong method", method: http.MethodGet, path: "/google/create-booking", key: "k", wantStatus: http.StatusMethodNotAllowed},
	}

	router := newTestRouter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			if tt.key != "" {
				r.Header.Set(middleware.HeaderAPIKey, tt.key)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, w.Body.String())
			}
			if tt.wantStatus != http.StatusMethodNotAllowed {
				assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
			}
		})
	}
}
