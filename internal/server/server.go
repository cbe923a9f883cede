package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gordon0907/ark-tribe-log/internal/config"
	"github.com/gordon0907/ark-tribe-log/internal/handler"
	"github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources"
	_ "github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources/filesource"
	_ "github.com/gordon0907/ark-tribe-log/internal/infrastructure/sources/o3source"
	"github.com/gordon0907/ark-tribe-log/internal/repository"
	"github.com/gordon0907/ark-tribe-log/internal/storage"
)

// Server holds the Echo app and dependencies.
type Server struct {
	Echo   *echo.Echo
	Config *config.Config
	Logger zerolog.Logger
	nrApp  *newrelic.Application
}

// SourceSpec maps the source section of cfg onto a registry spec.
func SourceSpec(cfg *config.Config) sources.SourceSpec {
	spec := sources.SourceSpec{Type: cfg.Source.Type, Config: sources.Config{}}
	switch cfg.Source.Type {
	case "file":
		spec.Config["path"] = cfg.Source.Path
	case "o3":
		spec.Config["key"] = cfg.Source.Key
		if cfg.Storage != nil && cfg.Storage.O3 != nil {
			o3 := cfg.Storage.O3
			spec.Config["endpoint"] = o3.Endpoint
			spec.Config["bucket"] = o3.Bucket
			spec.Config["region"] = o3.Region
			spec.Config["access_key"] = o3.AccessKey
			spec.Config["secret_key"] = o3.SecretKey
		}
	}
	return spec
}

// New builds the Echo server and registers routes. pool may be nil, in which
// case the snapshot endpoints answer 503.
func New(cfg *config.Config, logger zerolog.Logger, pool *pgxpool.Pool) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = time.Duration(cfg.Server.ReadTimeout) * time.Second
	e.Server.WriteTimeout = time.Duration(cfg.Server.WriteTimeout) * time.Second
	e.Server.IdleTimeout = time.Duration(cfg.Server.IdleTimeout) * time.Second

	renderer, err := handler.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	e.Renderer = renderer

	var nrApp *newrelic.Application
	if cfg.Observability.NewRelicEnabled() {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.Observability.ServiceName),
			newrelic.ConfigLicense(cfg.Observability.NewRelic.LicenseKey),
			newrelic.ConfigAppLogForwardingEnabled(cfg.Observability.NewRelic.AppLogging),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("new relic disabled")
			nrApp = nil
		}
	}

	e.Use(middleware.Recover(), middleware.RequestID())
	if nrApp != nil {
		e.Use(newRelicMiddleware(nrApp))
	}
	e.Use(requestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))

	src, err := sources.GlobalRegistry.Open(SourceSpec(cfg))
	if err != nil {
		return nil, fmt.Errorf("save source: %w", err)
	}

	tribeHandler := &handler.TribeLogHandler{
		Source:  src,
		Decoder: cfg.Decoder,
		Icon:    handler.IconDataURI(cfg.Server.IconPath),
		Logger:  logger,
	}
	if pool != nil {
		tribeHandler.Snapshots = repository.NewSnapshotRepository(pool)
	}
	if cfg.Storage != nil {
		o3Client, err := storage.NewO3Client(cfg.Storage.O3)
		if err != nil {
			logger.Warn().Err(err).Msg("o3 client unavailable, snapshot export disabled")
		} else if o3Client != nil {
			if err := o3Client.EnsureBucket(context.Background()); err != nil {
				logger.Warn().Err(err).Msg("o3 ensure bucket failed, export may fail")
			}
			tribeHandler.Exporter = o3Client
		}
	}
	sourceHandler := &handler.SourceHandler{Registry: sources.GlobalRegistry}

	e.GET("/", tribeHandler.Page)
	e.GET("/healthz", tribeHandler.Health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.GET("/tribelog", tribeHandler.GetLog)
	api.GET("/snapshots", tribeHandler.ListSnapshots)
	api.POST("/snapshots", tribeHandler.CreateSnapshot)
	api.GET("/snapshots/:id", tribeHandler.GetSnapshot)
	api.DELETE("/snapshots/:id", tribeHandler.DeleteSnapshot)
	api.POST("/snapshots/:id/export", tribeHandler.ExportSnapshot)

	e.GET("/sources/types", sourceHandler.ListTypes)
	e.GET("/sources/types/:type", sourceHandler.GetTypeInfo)
	e.GET("/sources/info", sourceHandler.GetAllTypesInfo)

	logger.Info().
		Strs("source_types", sources.GlobalRegistry.Types()).
		Str("source", src.Describe()).
		Bool("strict_count", cfg.Decoder.StrictCount).
		Bool("snapshots", tribeHandler.Snapshots != nil).
		Msg("server configured")

	return &Server{Echo: e, Config: cfg, Logger: logger, nrApp: nrApp}, nil
}

// Start starts the HTTP server. Blocks until the context is cancelled or the server fails.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = s.Shutdown(shutdownCtx)
	}()
	addr := ":" + s.Config.Server.Port
	s.Logger.Info().Str("addr", addr).Msg("listening")
	if err := s.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server and flushes APM data.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.Echo.Shutdown(ctx)
	if s.nrApp != nil {
		s.nrApp.Shutdown(5 * time.Second)
	}
	return err
}
