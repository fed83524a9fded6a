package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Envelope is the body shape of every JSON response.
type Envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    any                 `json:"data,omitempty"`
	Meta    *PageMeta           `json:"meta,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// PageMeta describes one page of a paginated listing.
type PageMeta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPageMeta computes TotalPages as ceil(total/limit).
func NewPageMeta(page, limit, total int) *PageMeta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &PageMeta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteSuccess writes a successful envelope around data.
func WriteSuccess(w http.ResponseWriter, code int, msg string, data any) {
	WriteJSON(w, code, Envelope{Success: true, Message: msg, Data: data})
}

// WritePage writes a successful envelope with pagination metadata.
func WritePage(w http.ResponseWriter, msg string, data any, meta *PageMeta) {
	WriteJSON(w, http.StatusOK, Envelope{Success: true, Message: msg, Data: data, Meta: meta})
}

// WriteError writes a failed envelope with msg.
func WriteError(w http.ResponseWriter, code int, msg string) {
	WriteJSON(w, code, Envelope{Success: false, Message: msg})
}

// WriteValidationError writes a 400 envelope listing per-field messages.
func WriteValidationError(w http.ResponseWriter, fields map[string][]string) {
	WriteJSON(w, http.StatusBadRequest, Envelope{Success: false, Message: "Validation failed", Errors: fields})
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// MaxBodyBytes caps request bodies read by DecodeJSON.
const MaxBodyBytes = 1 << 20

// ErrBadJSON wraps every body decoding failure.
var ErrBadJSON = errors.New("httpx: malformed JSON body")

// DecodeJSON decodes a single JSON object from the request body into dst.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	return nil
}
