// Package app provides application initialization and wiring.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonboulle/clockwork"

	"github.com/jobrunner/nimbus/internal/adapters/archive"
	"github.com/jobrunner/nimbus/internal/adapters/fetch"
	httpAdapter "github.com/jobrunner/nimbus/internal/adapters/http"
	"github.com/jobrunner/nimbus/internal/adapters/metrics"
	"github.com/jobrunner/nimbus/internal/adapters/netcdf"
	"github.com/jobrunner/nimbus/internal/adapters/render"
	tlsAdapter "github.com/jobrunner/nimbus/internal/adapters/tls"
	"github.com/jobrunner/nimbus/internal/application"
	"github.com/jobrunner/nimbus/internal/config"
	"github.com/jobrunner/nimbus/internal/domain"
	"github.com/jobrunner/nimbus/internal/ports/output"
)

// App holds all application components.
type App struct {
	Config            *config.Config
	Logger            *slog.Logger
	Lister            output.ArchiveLister
	Fetcher           output.ScanFetcher
	Loader            output.ScanLoader
	CloudCoverService *application.CloudCoverService
	HealthService     *application.HealthService
	HTTPServer        *httpAdapter.Server
	TLSServer         *tlsAdapter.Server
	Metrics           *metrics.Collector
}

// New creates and initializes a new application.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	var metricsCollector output.MetricsCollector = &output.NoOpMetrics{}
	if cfg.Metrics.Enabled {
		app.Metrics = metrics.NewCollector("nimbus")
		metricsCollector = app.Metrics
	}

	lister, err := initArchive(ctx, cfg.Archive)
	if err != nil {
		return nil, fmt.Errorf("initializing archive: %w", err)
	}
	app.Lister = lister

	app.Fetcher = fetch.NewHTTPFetcher(fetch.Config{
		Domain:     cfg.Fetch.Domain,
		Timeout:    cfg.Fetch.Timeout,
		ScratchDir: cfg.Fetch.ScratchDir,
	})

	app.Loader = netcdf.NewLoader(netcdf.DefaultBandPrefix)

	classifier := domain.NewClassifier(domain.ClassifierConfig{
		IRBand:       cfg.Classifier.IRBand,
		VisBands:     cfg.Classifier.VisBands,
		IRThreshold:  cfg.Classifier.IRThreshold,
		VisThreshold: cfg.Classifier.VisThreshold,
	})

	locator := application.NewLocator(app.Lister, metricsCollector, logger)

	app.CloudCoverService = application.NewCloudCoverService(
		locator,
		app.Fetcher,
		app.Loader,
		classifier,
		render.PNGRenderer{},
		metricsCollector,
		clockwork.NewRealClock(),
		logger,
		application.CloudCoverConfig{
			Satellite: cfg.Archive.Satellite,
			Product:   cfg.Archive.Product,
		},
	)

	app.HealthService = application.NewHealthService(cfg.Archive.Backend)

	app.HTTPServer = httpAdapter.NewServer(
		cfg.Server,
		app.CloudCoverService,
		app.HealthService,
		logger,
	)

	// Metrics share the API listener; the scrape endpoint is mounted on
	// the same router.
	if app.Metrics != nil {
		router := app.HTTPServer.Router()
		router.Handle(cfg.Metrics.Path, metrics.Handler()).Methods(http.MethodGet)
		router.Use(app.Metrics.Middleware)
	}

	if cfg.TLS.Enabled {
		tlsServer, err := tlsAdapter.NewServer(
			tlsAdapter.Config{
				Enabled:  cfg.TLS.Enabled,
				Domains:  cfg.TLS.Domains,
				Email:    cfg.TLS.Email,
				CacheDir: cfg.TLS.CacheDir,
				Staging:  cfg.TLS.Staging,
				DNS: tlsAdapter.DNSConfig{
					SubscriptionID:    cfg.TLS.DNS.SubscriptionID,
					ResourceGroupName: cfg.TLS.DNS.ResourceGroupName,
					ClientID:          cfg.TLS.DNS.ClientID,
				},
			},
			app.HTTPServer.Router(),
			logger,
		)
		if err != nil {
			return nil, fmt.Errorf("initializing TLS: %w", err)
		}
		app.TLSServer = tlsServer
	}

	return app, nil
}

// Start starts the server and blocks until it stops.
func (a *App) Start(_ context.Context) error {
	a.Logger.Info("starting cloud cover service",
		"backend", a.Config.Archive.Backend,
		"satellite", a.Config.Archive.Satellite,
		"product", a.Config.Archive.Product,
	)

	if a.Config.TLS.Enabled && a.TLSServer != nil {
		return a.TLSServer.ListenAndServe(a.Config.Server.Address())
	}
	return a.HTTPServer.Start()
}

// Shutdown gracefully shuts down all components.
func (a *App) Shutdown(ctx context.Context) error {
	a.Logger.Info("shutting down application")

	if a.TLSServer != nil {
		if err := a.TLSServer.Shutdown(ctx); err != nil {
			a.Logger.Error("TLS server shutdown error", "error", err)
		}
	}

	return a.HTTPServer.Shutdown(ctx)
}

// initArchive initializes the appropriate archive lister.
func initArchive(ctx context.Context, cfg config.ArchiveConfig) (output.ArchiveLister, error) {
	switch output.ArchiveBackend(cfg.Backend) {
	case output.ArchiveBackendS3:
		return archive.NewS3Lister(ctx, archive.S3Config{
			Region:   cfg.S3.Region,
			Endpoint: cfg.S3.Endpoint,
		})

	case output.ArchiveBackendAzure:
		return archive.NewAzureLister(archive.AzureConfig{
			ServiceURL: cfg.Azure.ServiceURL,
		})

	default:
		return nil, fmt.Errorf("unknown archive backend: %s", cfg.Backend)
	}
}
