// Package password provee hashing one-way de contraseñas con bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost fijo en 10 rounds. Subirlo invalida benchmarks, no hashes viejos:
// bcrypt guarda el cost dentro del digest.
const Cost = 10

// Hash devuelve el digest bcrypt ($2a$10$...) del plaintext. El salt es
// aleatorio, dos llamadas con el mismo input dan digests distintos.
func Hash(plain string) (string, error) {
	if plain == "" {
		return "", fmt.Errorf("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara en tiempo constante. Un digest malformado da false, nunca panic.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
