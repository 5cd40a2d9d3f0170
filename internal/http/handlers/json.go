package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	httperr "github.com/mernspace/auth-service/internal/http/errors"
)

const maxJSONBody = 64 << 10 // 64KB

// readJSON decodifica el body validando Content-Type y acotando el tamaño.
// No falla por campos desconocidos.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	ct := strings.ToLower(strings.TrimSpace(r.Header.Get("Content-Type")))
	if !strings.Contains(ct, "application/json") {
		httperr.WriteError(w, httperr.ErrValidation.WithMsg("Content-Type must be application/json"))
		return false
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBody)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httperr.WriteError(w, httperr.ErrValidation.WithMsg("invalid json body"))
		return false
	}
	return true
}

// writeJSON: respuesta JSON estándar.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// listEnvelope es la respuesta de los listados paginados.
type listEnvelope struct {
	CurrentPage int `json:"currentPage"`
	PerPage     int `json:"perPage"`
	Total       int `json:"total"`
	Data        any `json:"data"`
}
