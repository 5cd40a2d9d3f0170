// Command seed crea (o actualiza) el usuario admin inicial. Idempotente:
// si el email ya existe solo reporta el id.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/mernspace/auth-service/internal/config"
	"github.com/mernspace/auth-service/internal/security/password"
	"github.com/mernspace/auth-service/internal/store/core"
	"github.com/mernspace/auth-service/internal/store/pg"
)

func strEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func main() {
	var (
		flagConfig  = flag.String("config", "", "ruta a config.yaml (vacío = solo env)")
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env")
		flagEmail   = flag.String("email", strEnv("SEED_ADMIN_EMAIL", "admin@mern.space"), "email del admin")
		flagPass    = flag.String("password", strEnv("SEED_ADMIN_PASSWORD", ""), "password del admin")
		flagFirst   = flag.String("first-name", "Root", "nombre")
		flagLast    = flag.String("last-name", "Admin", "apellido")
	)
	flag.Parse()
	_ = godotenv.Load(*flagEnvFile)

	if *flagPass == "" {
		log.Fatal("falta password (flag -password o env SEED_ADMIN_PASSWORD)")
	}
	if len(*flagPass) < 8 {
		log.Fatal("el password debe tener al menos 8 caracteres")
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer store.Close()

	email := strings.ToLower(strings.TrimSpace(*flagEmail))
	digest, err := password.Hash(*flagPass)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}

	user, err := store.CreateUser(ctx, &core.User{
		FirstName:    *flagFirst,
		LastName:     *flagLast,
		Email:        email,
		PasswordHash: digest,
		Role:         core.RoleAdmin,
	})
	if err != nil {
		if errors.Is(err, core.ErrDuplicateEmail) {
			existing, gerr := store.GetUserByEmail(ctx, email)
			if gerr != nil {
				log.Fatalf("lookup existing admin: %v", gerr)
			}
			log.Printf("admin ya existe: id=%d email=%s", existing.ID, existing.Email)
			return
		}
		log.Fatalf("create admin: %v", err)
	}
	log.Printf("admin creado: id=%d email=%s", user.ID, user.Email)
}
