package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jessevdk/go-flags"
	"golang.org/x/sync/errgroup"

	"github.com/tgoode/weekendcup/internal/adapters/http/api"
	"github.com/tgoode/weekendcup/internal/adapters/repository"
	service "github.com/tgoode/weekendcup/internal/app"
	"github.com/tgoode/weekendcup/internal/config"
	"github.com/tgoode/weekendcup/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
	jwtKeyBytes       = 32
)

// cliOptions override config values from the command line.
type cliOptions struct {
	Config   string `short:"c" long:"config" description:"Path to YAML config file"`
	Addr     string `long:"addr" description:"Listen address"`
	DBPath   string `long:"db" description:"Path to the sqlite database file"`
	LogLevel string `long:"log-level" description:"Log level (debug, info, warn, error)"`
}

func main() {
	var opts cliOptions
	if _, err := flags.Parse(&opts); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(2)
	}
	if opts.Config != "" {
		_ = os.Setenv("WEEKENDCUP_CONFIG", opts.Config)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	applyOverrides(cfg, opts)

	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	store, err := repository.NewGormStore(ctx, repository.WithPath(cfg.DBPath))
	if err != nil {
		log.Error(ctx, "failed to open store", logger.Error(err))
		return
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error(ctx, "failed to close store", logger.Error(err))
		}
	}()

	svc := service.New(service.WithStore(store), service.WithLogger(log))
	if err := svc.EnsureAdmin(ctx, cfg.AdminUser, cfg.AdminPassword); err != nil {
		log.Error(ctx, "failed to seed admin credential", logger.Error(err))
		return
	}

	jwtKey, err := sessionKey(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to derive session key", logger.Error(err))
		return
	}

	router := chi.NewRouter()
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	apiServer := api.NewServer(svc, svc,
		api.WithJWTKey(jwtKey),
		api.WithSessionTTL(time.Duration(cfg.SessionMinutes)*time.Minute),
		api.WithLoginRateLimit(cfg.LoginRateLimit),
		api.WithLogger(log),
	)
	apiServer.Register(router)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		runStatsRefresher(gctx, svc, time.Duration(cfg.MetricsIntervalSeconds)*time.Second)
		return nil
	})

	group.Go(func() error {
		<-gctx.Done()
		log.Info(ctx, "shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error(ctx, "server exited with error", logger.Error(err))
		return
	}
	log.Info(ctx, "server stopped")
}

// applyOverrides lets command-line flags win over file and environment.
func applyOverrides(cfg *config.Config, opts cliOptions) {
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}
	if opts.DBPath != "" {
		cfg.DBPath = opts.DBPath
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
}

// sessionKey decodes the configured signing key, or generates an ephemeral
// one. Ephemeral keys invalidate every session on restart.
func sessionKey(ctx context.Context, cfg *config.Config, log logger.Logger) ([]byte, error) {
	if cfg.JWTKeyHex != "" {
		return hex.DecodeString(cfg.JWTKeyHex)
	}
	key := make([]byte, jwtKeyBytes)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}
	log.Warn(ctx, "no jwt_key configured; using an ephemeral session key")
	return key, nil
}

// runStatsRefresher periodically refreshes the directory gauges.
func runStatsRefresher(ctx context.Context, svc *service.Service, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats(ctx)
		}
	}
}
