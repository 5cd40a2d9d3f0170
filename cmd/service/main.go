package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	rdb "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/mernspace/auth-service/internal/app"
	"github.com/mernspace/auth-service/internal/config"
	httpserver "github.com/mernspace/auth-service/internal/http"
	jwtx "github.com/mernspace/auth-service/internal/jwt"
	"github.com/mernspace/auth-service/internal/observability/logger"
	"github.com/mernspace/auth-service/internal/rate"
	"github.com/mernspace/auth-service/internal/store/pg"
)

func main() {
	var (
		flagConfig  = flag.String("config", "", "ruta a config.yaml (vacío = solo env)")
		flagEnvFile = flag.String("env-file", ".env", "ruta a .env")
	)
	flag.Parse()

	// .env es opcional: en prod las vars vienen del entorno real.
	_ = godotenv.Load(*flagEnvFile)

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "auth-service",
	})
	defer func() { _ = logger.Sync() }()
	lg := logger.Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{
		MaxConns:        cfg.Storage.Postgres.MaxConns,
		MinConns:        cfg.Storage.Postgres.MinConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		lg.Fatal("postgres connect", logger.Err(err))
	}
	defer store.Close()

	issuer := jwtx.NewIssuer(cfg.JWT.Issuer, cfg.JWT.PrivateKeyFile, []byte(cfg.JWT.RefreshSecret))
	issuer.AccessTTL = config.Duration(cfg.JWT.AccessTTL)
	issuer.RefreshTTL = config.Duration(cfg.JWT.RefreshTTL)

	jwksURI := cfg.JWT.JWKSURI
	if jwksURI == "" {
		// Sin JWKS externo el servicio verifica contra su propio endpoint.
		jwksURI = "http://localhost" + cfg.Server.Addr + "/.well-known/jwks.json"
	}

	var limiter rate.Limiter
	if cfg.Rate.Enabled {
		client := rdb.NewClient(&rdb.Options{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err := client.Ping(ctx).Err(); err != nil {
			lg.Fatal("redis connect", logger.Err(err))
		}
		defer func() { _ = client.Close() }()
		limiter = rate.NewRedisLimiter(client, "rl:auth:", cfg.Rate.Limit, config.Duration(cfg.Rate.Window))
	}

	// Las refetches de JWKS son por proceso: alcanza un limiter en memoria,
	// no hay nada que coordinar entre réplicas.
	keys := jwtx.NewKeySet(jwksURI, rate.NewMemoryLimiter(10, time.Minute))

	container := &app.Container{
		Store:        store,
		Issuer:       issuer,
		Keys:         keys,
		CookieDomain: cfg.Cookies.Domain,
		CookieSecure: cfg.Cookies.Secure,
	}
	router := httpserver.NewRouter(container, limiter)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("listening", logger.Path(cfg.Server.Addr))
		return httpserver.Start(gctx, cfg.Server.Addr, router)
	})

	if err := g.Wait(); err != nil {
		lg.Fatal("server", logger.Err(err))
	}
	lg.Info("shutdown complete")
}
