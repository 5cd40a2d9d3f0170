package logger

import (
	"go.uber.org/zap"
)

// =================================================================================
// CAMPOS ESTÁNDAR - HTTP
// =================================================================================

// RequestID crea un campo para el ID del request.
func RequestID(v string) zap.Field {
	return zap.String("request_id", v)
}

// Method crea un campo para el método HTTP.
func Method(v string) zap.Field {
	return zap.String("method", v)
}

// Path crea un campo para el path del request.
func Path(v string) zap.Field {
	return zap.String("path", v)
}

// Status crea un campo para el status code HTTP.
func Status(v int) zap.Field {
	return zap.Int("status", v)
}

// Bytes crea un campo para los bytes escritos en la respuesta.
func Bytes(v int) zap.Field {
	return zap.Int("bytes", v)
}

// DurationMs crea un campo para la duración en milisegundos.
func DurationMs(v int64) zap.Field {
	return zap.Int64("duration_ms", v)
}

// =================================================================================
// CAMPOS ESTÁNDAR - DOMINIO
// =================================================================================

// UserID crea un campo para el id del usuario.
func UserID(v int64) zap.Field {
	return zap.Int64("user_id", v)
}

// Email crea un campo para el email del usuario.
func Email(v string) zap.Field {
	return zap.String("email", v)
}

// Role crea un campo para el rol del principal.
func Role(v string) zap.Field {
	return zap.String("role", v)
}

// TenantID crea un campo para el id del tenant.
func TenantID(v int64) zap.Field {
	return zap.Int64("tenant_id", v)
}

// SessionID crea un campo para el id de la refresh session.
func SessionID(v int64) zap.Field {
	return zap.Int64("session_id", v)
}

// Err crea un campo para un error.
func Err(err error) zap.Field {
	return zap.Error(err)
}
