// Package errors define el envelope de error de la API y los errores
// predefinidos. Todo fallo de handler o middleware sale por acá con el formato
// {"errors":[{"type","msg","path","location"}]}.
package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// AppError es un error de aplicación con status HTTP asociado.
type AppError struct {
	Type       string `json:"type"`
	Msg        string `json:"msg"`
	Path       string `json:"path"`     // campo que falló (validación); vacío si no aplica
	Location   string `json:"location"` // "body" | "query"; vacío si no aplica
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // causa original, solo para logs
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Msg, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Msg)
}

func (e *AppError) Unwrap() error { return e.Err }

func New(status int, typ, msg string) *AppError {
	return &AppError{Type: typ, Msg: msg, HTTPStatus: status}
}

// WithCause devuelve una COPIA con la causa adjunta (no muta los predefinidos).
func (e *AppError) WithCause(err error) *AppError {
	out := *e
	out.Err = err
	return &out
}

// WithMsg devuelve una COPIA con otro mensaje.
func (e *AppError) WithMsg(msg string) *AppError {
	out := *e
	out.Msg = msg
	return &out
}

// Field construye una entrada de validación (400) con campo y ubicación.
func Field(msg, path, location string) *AppError {
	return &AppError{
		Type:       "validation_failed",
		Msg:        msg,
		Path:       path,
		Location:   location,
		HTTPStatus: http.StatusBadRequest,
	}
}

// =================================================================================
// ERRORES PREDEFINIDOS
// =================================================================================

var (
	// 400
	ErrValidation = New(http.StatusBadRequest, "validation_failed", "invalid request")
	// Login: un solo error indistinguible para "no existe" y "password mal".
	ErrInvalidCredentials = New(http.StatusBadRequest, "invalid_credentials", "email or password does not match")

	// 401: token ausente, inválido, expirado o revocado — nunca se distingue.
	ErrUnauthenticated = New(http.StatusUnauthorized, "unauthenticated", "authentication required")

	// 403
	ErrForbidden = New(http.StatusForbidden, "forbidden", "you don't have enough permissions")

	// 404
	ErrNotFound = New(http.StatusNotFound, "not_found", "resource does not exist")

	// 409 — el original devolvía 404 para email duplicado; acá se corrige.
	ErrEmailExists = New(http.StatusConflict, "conflict", "email already exists")

	// 500
	ErrKeyUnavailable = New(http.StatusInternalServerError, "key_unavailable", "error while signing token")
	ErrUnexpected     = New(http.StatusInternalServerError, "unexpected", "internal server error")
)

// =================================================================================
// SERIALIZACIÓN
// =================================================================================

type envelope struct {
	Errors []*AppError `json:"errors"`
}

// FromError normaliza cualquier error a AppError (default: 500 unexpected).
func FromError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return ErrUnexpected.WithCause(err)
}

// WriteError escribe el envelope con una sola entrada.
func WriteError(w http.ResponseWriter, err error) {
	appErr := FromError(err)
	writeEnvelope(w, appErr.HTTPStatus, []*AppError{appErr})
}

// WriteValidation escribe un 400 con todas las entradas de validación.
func WriteValidation(w http.ResponseWriter, errs []*AppError) {
	writeEnvelope(w, http.StatusBadRequest, errs)
}

func writeEnvelope(w http.ResponseWriter, status int, errs []*AppError) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Errors: errs})
}
