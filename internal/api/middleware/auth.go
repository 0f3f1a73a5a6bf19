package middleware

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ReservationGateway/internal/api/handlers"
)

const (
	// HeaderAPIKey заголовок с ключом партнера
	HeaderAPIKey = "X-Api-Key"
	// HeaderSignature заголовок с подписью тела: sha256=<hex>
	HeaderSignature = "X-Signature"

	signaturePrefix = "sha256="

	// DefaultMaxBodyBytes предел тела, читаемого для проверки подписи
	DefaultMaxBodyBytes int64 = 1 << 20

	msgInvalidAPIKey    = "invalid API key"
	msgInvalidSignature = "invalid signature"
)

// AuthConfig параметры проверки партнера
type AuthConfig struct {
	APIKey     string
	HMACSecret string   // пустой - подпись не проверяется
	PublicPath []string // пути без проверки
	MaxBody    int64    // 0 - DefaultMaxBodyBytes
}

// Auth проверяет ключ партнера и, если задан секрет, подпись тела запроса.
// Пустой APIKey в конфигурации отклоняет все запросы
func Auth(cfg AuthConfig, logger Logger) mux.MiddlewareFunc {
	public := make(map[string]struct{}, len(cfg.PublicPath))
	if cfg.MaxBody <= 0 {
		cfg.MaxBody = DefaultMaxBodyBytes
	}
	for _, p := range cfg.PublicPath {
		public[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			// 1. Ключ партнера
			key := r.Header.Get(HeaderAPIKey)
			if cfg.APIKey == "" || !equal(cfg.APIKey, key) {
				logger.Warn("Auth: invalid API key for %s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
				handlers.RespondForbidden(w, msgInvalidAPIKey)
				return
			}

			// 2. Подпись тела
			if cfg.HMACSecret != "" {
				body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, cfg.MaxBody))
				if err != nil {
					logger.Warn("Auth: failed to read body for %s: %v", r.URL.Path, err)
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						handlers.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
						return
					}
					handlers.RespondBadRequest(w, "invalid request body")
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				if !equal(Sign(cfg.HMACSecret, body), r.Header.Get(HeaderSignature)) {
					logger.Warn("Auth: invalid signature for %s %s", r.Method, r.URL.Path)
					handlers.RespondForbidden(w, msgInvalidSignature)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Sign возвращает значение заголовка X-Signature для тела
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

func equal(expected, actual string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
