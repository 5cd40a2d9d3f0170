// Command migrate aplica las migraciones SQL del directorio dado contra la
// base configurada. Convención: NNNN_nombre_up.sql / NNNN_nombre_down.sql,
// aplicadas en orden ascendente (up) o descendente (down).
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/mernspace/auth-service/internal/config"
	migrations "github.com/mernspace/auth-service/migrations/postgres"
)

func main() {
	var (
		flagConfig  = flag.String("config", "", "ruta a config.yaml (vacío = solo env)")
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env")
		flagDir     = flag.String("dir", "migrations/postgres", "directorio de migraciones")
	)
	flag.Parse()
	_ = godotenv.Load(*flagEnvFile)

	action := "up"
	steps := 0
	args := flag.Args()
	if len(args) >= 1 && args[0] != "" {
		action = strings.ToLower(args[0])
	}
	if len(args) >= 2 {
		if n, err := strconv.Atoi(args[1]); err == nil && n > 0 {
			steps = n
		}
	}

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("pgxpool: %v", err)
	}
	defer pool.Close()

	// El binario trae el esquema embebido; -dir pisa eso para desarrollo.
	var src fs.FS = migrations.FS
	if st, err := os.Stat(*flagDir); err == nil && st.IsDir() {
		src = os.DirFS(*flagDir)
	}

	switch action {
	case "up":
		files, err := listSQL(src, "_up.sql")
		if err != nil {
			log.Fatalf("list up: %v", err)
		}
		sort.Strings(files)
		if steps > 0 && steps < len(files) {
			files = files[:steps]
		}
		apply(ctx, pool, src, files)

	case "down":
		files, err := listSQL(src, "_down.sql")
		if err != nil {
			log.Fatalf("list down: %v", err)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
		if steps > 0 && steps < len(files) {
			files = files[:steps]
		}
		apply(ctx, pool, src, files)

	default:
		log.Fatalf("acción desconocida %q (up | down [steps])", action)
	}
}

func apply(ctx context.Context, pool *pgxpool.Pool, src fs.FS, files []string) {
	if len(files) == 0 {
		log.Println("nothing to do")
		return
	}
	log.Printf("applying %d migration(s)", len(files))
	for _, f := range files {
		if err := execSQLFile(ctx, pool, src, f); err != nil {
			log.Fatalf("exec %s: %v", f, err)
		}
	}
	log.Println("done")
}

func listSQL(src fs.FS, suffix string) ([]string, error) {
	entries, err := fs.ReadDir(src, ".")
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(strings.ToLower(e.Name()), suffix) {
			out = append(out, e.Name())
		}
	}
	return out, nil
}

func execSQLFile(ctx context.Context, pool *pgxpool.Pool, src fs.FS, name string) error {
	b, err := fs.ReadFile(src, name)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	start := time.Now()
	if _, err := pool.Exec(ctx, string(b)); err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	log.Printf("OK %s (%s)", filepath.Base(name), time.Since(start).Truncate(time.Millisecond))
	return nil
}
