// @title Runsheet API
// @version 1.0
// @description Row-by-row chain-of-title review and ownership reconstruction for mineral and surface interests.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	_ "runsheet/docs"
	"runsheet/internal/analysis"
	"runsheet/internal/analysis/claude"
	"runsheet/internal/analysis/openai"
	"runsheet/internal/auth"
	"runsheet/internal/config"
	"runsheet/internal/handler"
	"runsheet/internal/ledger"
	"runsheet/internal/middleware"
	"runsheet/internal/names"
	"runsheet/internal/notify/noop"
	sesnotify "runsheet/internal/notify/ses"
	"runsheet/internal/port"
	"runsheet/internal/repository/postgres"
	"runsheet/internal/router"
	"runsheet/internal/service"
	badgerstore "runsheet/internal/storage/badger"
	s3storage "runsheet/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize analysis providers
	analysis.RegisterProvider("claude", func(pc *config.ProviderConfig) (port.AnalysisProvider, error) {
		return claude.NewProvider(pc), nil
	})
	analysis.RegisterProvider("openai", func(pc *config.ProviderConfig) (port.AnalysisProvider, error) {
		return openai.NewProvider(pc), nil
	})
	provider, err := analysis.NewFromConfig(&cfg.Analysis)
	if err != nil {
		return fmt.Errorf("failed to initialize analysis provider: %w", err)
	}

	// Initialize ledger
	var extra []map[string][]string
	if cfg.Names.NicknameFile != "" {
		nicknames, err := names.LoadNicknames(cfg.Names.NicknameFile)
		if err != nil {
			return fmt.Errorf("failed to load nickname file: %w", err)
		}
		extra = append(extra, nicknames)
	}
	l := ledger.New(ledger.Config{
		DefaultAcres:         cfg.Ledger.DefaultAcres,
		DefaultPatentGrantor: cfg.Ledger.DefaultPatentGrantor,
	}, names.NewResolver(extra...))

	// Initialize checkpoint storage
	store, pinger, closeStore, err := openCheckpointStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	notifier, err := newNotifier(&cfg.Notify)
	if err != nil {
		return fmt.Errorf("failed to initialize notifier: %w", err)
	}

	// Initialize services and handlers
	sessionSvc := service.NewSessionService(l, provider, store, notifier, nil)
	sessionH := handler.NewSessionHandler(sessionSvc)
	healthH := handler.NewHealthHandler(pinger)

	var validator middleware.TokenValidator
	if cfg.Auth.Enabled {
		validator = auth.NewJWTVerifier(cfg.Auth.Secret, cfg.Auth.Issuer)
	}

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := router.Setup(validator, cfg.CORS.AllowedOrigins, sessionH, healthH)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s (checkpoints: %s)", cfg.Server.Port, cfg.Checkpoint.Backend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Printf("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("server shutdown error: %v", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Printf("Server stopped")
	return nil
}

// openCheckpointStore builds the configured checkpoint backend along with its readiness probe.
func openCheckpointStore(ctx context.Context, cfg *config.Config) (port.CheckpointStore, handler.Pinger, func(), error) {
	switch cfg.Checkpoint.Backend {
	case config.CheckpointPostgres:
		db, err := postgres.NewDB(&cfg.DB)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return postgres.NewCheckpointRepo(db), postgres.Pinger{DB: db}, func() { db.Close() }, nil

	case config.CheckpointS3:
		client, err := s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		store := s3storage.NewCheckpointStore(client, cfg.S3.Bucket, cfg.Checkpoint.S3Prefix)
		return store, handler.StoreProbe{Store: store}, func() {}, nil

	default:
		db, err := badgerstore.Open(cfg.Checkpoint.BadgerPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open badger at %q: %w", cfg.Checkpoint.BadgerPath, err)
		}
		gcCtx, cancel := context.WithCancel(ctx)
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for {
				select {
				case <-gcCtx.Done():
					return
				case <-ticker.C:
					badgerstore.RunGC(db)
				}
			}
		}()
		store := badgerstore.NewCheckpointStore(db)
		return store, handler.StoreProbe{Store: store}, func() {
			cancel()
			if err := db.Close(); err != nil {
				log.Printf("badger close: %v", err)
			}
		}, nil
	}
}

func newNotifier(cfg *config.NotifyConfig) (port.CompletionNotifier, error) {
	switch cfg.Provider {
	case "ses":
		return sesnotify.NewSESNotifier(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.Recipients)
	default:
		return noop.NewNoopNotifier(), nil
	}
}
