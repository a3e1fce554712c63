// Package webapi holds the small JSON request/response helpers shared by
// every feature handler. Payloads are decoded with a strict decoder and
// validated with go-playground/validator before they reach a handler.
package webapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a uniform error envelope.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Decode parses the request body into dst and runs struct validation.
// The decoder rejects unknown fields so typos in payloads fail loudly.
func Decode(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.New("invalid JSON body")
	}
	if err := validate.Struct(dst); err != nil {
		var verr validator.ValidationErrors
		if errors.As(err, &verr) && len(verr) > 0 {
			f := verr[0]
			return errors.New("invalid field: " + strings.ToLower(f.Field()))
		}
		return errors.New("invalid payload")
	}
	return nil
}
