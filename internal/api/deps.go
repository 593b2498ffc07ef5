package api

import (
	"net/http"

	"github.com/joblens/joblens/internal/catalog"
	"github.com/joblens/joblens/internal/config"
	"github.com/joblens/joblens/internal/domain/job"
	remotiveProvider "github.com/joblens/joblens/internal/domain/job/providers/remotive"
	"github.com/joblens/joblens/pkg/logging"
	"github.com/joblens/joblens/pkg/remotive"
)

// Resources bundles everything the server needs at runtime.
type Resources struct {
	Service job.Service
}

// BuildResources hand-wires the default dependency graph: the Remotive
// provider over the configured endpoint plus the local catalog. A catalog
// that fails to load falls back to the embedded seed rather than keeping
// the server down; the provider is optional by contract.
func BuildResources(cfg config.Config, logger *logging.Logger) (*Resources, error) {
	cat := loadCatalog(cfg, logger)

	opts := []job.Option{
		job.WithCatalog(cat),
		job.WithLogger(logger),
		job.WithProviderTimeout(cfg.Provider.Timeout),
	}

	if provider, err := buildProvider(cfg); err == nil {
		opts = append(opts, job.WithProvider(provider))
		logger.Info("remote provider initialized", "provider", provider.Name())
	} else {
		logger.Warn("remote provider unavailable, serving catalog only", "err", err)
	}

	svc, err := job.NewService(opts...)
	if err != nil {
		return nil, err
	}

	return &Resources{Service: svc}, nil
}

func loadCatalog(cfg config.Config, logger *logging.Logger) *catalog.Catalog {
	if cfg.CatalogPath == "" {
		return catalog.Default()
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Warn("failed to load catalog file, using embedded seed",
			"path", cfg.CatalogPath, "err", err)
		return catalog.Default()
	}

	logger.Info("catalog loaded", "path", cfg.CatalogPath, "jobs", cat.Len())
	return cat
}

func buildProvider(cfg config.Config) (*remotiveProvider.Provider, error) {
	client, err := remotive.NewClient(remotive.Config{
		BaseURL:  cfg.Provider.BaseURL,
		Category: cfg.Provider.Category,
		PageSize: cfg.Provider.PageSize,
		HTTPClient: &http.Client{
			Timeout: cfg.Provider.Timeout,
		},
	})
	if err != nil {
		return nil, err
	}

	return remotiveProvider.NewProvider(client)
}
