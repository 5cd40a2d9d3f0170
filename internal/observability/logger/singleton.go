package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	once     sync.Once
	instance *zap.Logger
)

// Init arma el singleton una sola vez; las llamadas siguientes no hacen nada.
// main.go lo invoca antes de levantar el servidor.
func Init(cfg Config) {
	once.Do(func() {
		instance = build(cfg)
	})
}

// L devuelve el singleton. Sin Init previo cae a un logger dev/info, así los
// tests y las tools chicas no necesitan configurar nada.
func L() *zap.Logger {
	if instance == nil {
		Init(Config{Env: "dev", Level: "info"})
	}
	return instance
}

// Named etiqueta el logger con el componente que lo usa.
func Named(name string) *zap.Logger {
	return L().Named(name)
}

// With agrega campos persistentes (ej: tenant_id en un service).
func With(fields ...zap.Field) *zap.Logger {
	return L().With(fields...)
}

// Sync descarga los buffers pendientes; va en un defer de main.go.
func Sync() error {
	if instance != nil {
		return instance.Sync()
	}
	return nil
}
