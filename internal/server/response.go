package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teller-dev/teller/internal/account"
	"github.com/teller-dev/teller/internal/bank"
)

// errBadRequest carries per-field validation messages.
type errBadRequest map[string]string

func (e errBadRequest) Error() string { return "missing/invalid params" }

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes. Validation failures
// and bad inputs are 400, policy denials 409, lookup misses 404.
func writeError(w http.ResponseWriter, err error) {
	var br errBadRequest
	switch {
	case errors.As(err, &br):
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": br.Error(), "fields": map[string]string(br)})
	case errors.Is(err, account.ErrInvalidAmount),
		errors.Is(err, account.ErrInvalidPassword),
		errors.Is(err, account.ErrInvalidPIN),
		errors.Is(err, account.ErrNoInterest),
		errors.Is(err, bank.ErrInvalidName),
		errors.Is(err, bank.ErrInvalidDOB),
		errors.Is(err, bank.ErrUnknownType),
		errors.Is(err, bank.ErrGuardianRequired):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, account.ErrWithdrawalDenied),
		errors.Is(err, account.ErrCredentialsNotSet):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server error"})
	}
}

func writeNotFound(w http.ResponseWriter) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "account not found"})
}

func writeUnauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authentication required"})
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"path": r.URL.Path})
}
