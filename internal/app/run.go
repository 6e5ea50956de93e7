package api

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/Flarenzy/ipam-ledger/internal/auth"
	appdb "github.com/Flarenzy/ipam-ledger/internal/db"
	"github.com/Flarenzy/ipam-ledger/internal/domain"
	apihttp "github.com/Flarenzy/ipam-ledger/internal/http"
)

type Config struct {
	Port         string
	DSN          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	AuthEnabled bool
	Issuer      string
	JWKSURL     string
	Audience    string
}

func LoadConfig() Config {
	cfg := Config{
		DSN:          os.Getenv("DB_CONN"),
		Port:         os.Getenv("PORT"),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		AuthEnabled:  os.Getenv("AUTH_ENABLED") == "true",
		Issuer:       os.Getenv("AUTH_ISSUER"),
		JWKSURL:      os.Getenv("AUTH_JWKS_URL"),
		Audience:     os.Getenv("AUTH_AUDIENCE"),
	}

	if cfg.DSN == "" {
		log.Fatal("missing required environment variable: DB_CONN")
	}
	if cfg.Port == "" {
		cfg.Port = "4040"
	}
	return cfg
}

func newAuthenticator(ctx context.Context, cfg Config) (auth.Authenticator, error) {
	return auth.NewKeycloakAuthenticator(ctx, auth.Config{
		Enabled:  cfg.AuthEnabled,
		Issuer:   cfg.Issuer,
		JWKSURL:  cfg.JWKSURL,
		Audience: cfg.Audience,
	})
}

func Run(ctx context.Context, cfg Config) error {
	listener, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Port))
	if err != nil {
		return err
	}
	return Serve(ctx, cfg, listener)
}

// Serve wires the full stack onto an already-bound listener, which lets
// tests inject a 127.0.0.1:0 listener.
func Serve(ctx context.Context, cfg Config, listener net.Listener) error {
	logger := slog.Default()

	authenticator, err := newAuthenticator(ctx, cfg)
	if err != nil {
		return err
	}

	pool, err := appdb.NewPool(ctx, cfg.DSN)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := appdb.Bootstrap(ctx, pool); err != nil {
		return err
	}

	networks := appdb.NewNetworkRepository(pool)
	allocations := appdb.NewAllocationRepository(pool)

	service := domain.NewLoggingLedgerService(logger, domain.NewLedgerService(networks, allocations))

	api := apihttp.NewAPI(logger, pool, service, authenticator)

	server := &http.Server{
		Handler:      api.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		fmt.Printf("Serving server on %s\n", listener.Addr())
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Serve error: %s\n", err)
		}
	}()

	<-ctx.Done()

	fmt.Println("\nShutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
