package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
)

const (
	// ErrorCodeGeneric код ошибки в теле ответа для всех отказов, кроме занятого слота
	ErrorCodeGeneric = "ERROR"
	// ErrorCodeUnavailable код ошибки для занятого слота при создании бронирования
	ErrorCodeUnavailable = "UNAVAILABLE"

	msgInternalError   = "internal server error"
	msgForbidden       = "forbidden"
	msgTooManyRequests = "too many requests"
)

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// DecodeJSON читает JSON тело запроса в v.
// Пустое тело не считается ошибкой, v остается нулевым
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// RespondJSON пишет v в ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError пишет ошибку {"error":"ERROR","message":...}
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: ErrorCodeGeneric, Message: message})
}

// RespondBadRequest 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondConflict 409
func RespondConflict(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusConflict, message)
}

// RespondUnavailable 409 с кодом UNAVAILABLE
func RespondUnavailable(w http.ResponseWriter, message string) {
	RespondJSON(w, http.StatusConflict, ErrorResponse{Error: ErrorCodeUnavailable, Message: message})
}

// RespondInternalError 500 без подробностей
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// RespondForbidden 403
func RespondForbidden(w http.ResponseWriter, message string) {
	if message == "" {
		message = msgForbidden
	}
	RespondError(w, http.StatusForbidden, message)
}

// RespondTooManyRequests 429
func RespondTooManyRequests(w http.ResponseWriter) {
	RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
}
