//go:build wireinject
// +build wireinject

package api

import (
	"net/http"

	"github.com/google/wire"

	"github.com/joblens/joblens/internal/catalog"
	"github.com/joblens/joblens/internal/config"
	"github.com/joblens/joblens/internal/domain/job"
	remotiveProvider "github.com/joblens/joblens/internal/domain/job/providers/remotive"
	"github.com/joblens/joblens/pkg/logging"
	"github.com/joblens/joblens/pkg/remotive"
)

// InitializeResources creates Resources with all dependencies wired up
func InitializeResources(cfg config.Config, logger *logging.Logger) (*Resources, error) {
	wire.Build(
		// Infrastructure - provider client
		provideRemotiveConfig,
		remotive.NewClient,

		// Provider adapter
		provideRemotiveProvider,
		wire.Bind(new(job.Provider), new(*remotiveProvider.Provider)),

		// Catalog
		provideCatalog,
		wire.Bind(new(job.Catalog), new(*catalog.Catalog)),

		// Service
		provideJobService,

		newResources,
	)

	return &Resources{}, nil
}

// provideRemotiveConfig extracts provider client config from main config
func provideRemotiveConfig(cfg config.Config) remotive.Config {
	return remotive.Config{
		BaseURL:  cfg.Provider.BaseURL,
		Category: cfg.Provider.Category,
		PageSize: cfg.Provider.PageSize,
		HTTPClient: &http.Client{
			Timeout: cfg.Provider.Timeout,
		},
	}
}

// provideRemotiveProvider adapts the concrete client; the adapter's own
// constructor takes an interface wire cannot provide for directly
func provideRemotiveProvider(client *remotive.Client) (*remotiveProvider.Provider, error) {
	return remotiveProvider.NewProvider(client)
}

// provideCatalog loads the configured catalog file or the embedded seed
func provideCatalog(cfg config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(cfg.CatalogPath)
}

// provideJobService assembles the orchestrator
func provideJobService(
	cfg config.Config,
	logger *logging.Logger,
	provider job.Provider,
	cat job.Catalog,
) (job.Service, error) {
	return job.NewService(
		job.WithProvider(provider),
		job.WithCatalog(cat),
		job.WithLogger(logger),
		job.WithProviderTimeout(cfg.Provider.Timeout),
	)
}

// newResources creates the Resources struct
func newResources(svc job.Service) *Resources {
	return &Resources{Service: svc}
}
