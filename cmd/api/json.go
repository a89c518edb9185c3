package main

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

// pkPhoneRe matches Pakistani mobile numbers after whitespace stripping:
// 03 followed by nine digits.
var pkPhoneRe = regexp.MustCompile(`^03\d{9}$`)

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	_ = Validate.RegisterValidation("pkphone", func(fl validator.FieldLevel) bool {
		phone := strings.Join(strings.Fields(fl.Field().String()), "")
		return pkPhoneRe.MatchString(phone)
	})
}

// normalizePhone strips all whitespace so "0300 1234567" and "03001234567"
// store identically.
func normalizePhone(phone string) string {
	return strings.Join(strings.Fields(phone), "")
}

func writeJson(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	return json.NewEncoder(w).Encode(data)
}

func readJson(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 // 1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(data)
}

func writeJsonError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Error string `json:"error"`
	}

	return writeJson(w, status, &envelope{Error: message})
}

func (app *application) jsonRespone(w http.ResponseWriter, status int, data any) error {
	type envelope struct {
		Data any `json:"data"`
	}

	return writeJson(w, status, &envelope{Data: data})
}
