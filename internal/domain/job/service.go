package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/joblens/joblens/internal/domain"
	"github.com/joblens/joblens/internal/search"
	"github.com/joblens/joblens/pkg/logging"
)

const defaultProviderTimeout = 4 * time.Second

// Service is the single entry point of the search pipeline.
type Service interface {
	// Search runs the full pipeline: provider under a deadline, catalog on
	// any classified failure or empty match set, one filter/rank/paginate
	// engine over whichever source was selected. Classified provider
	// failures never surface to the caller.
	Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error)

	// Get issues a broad search and scans for the matching ID; there is no
	// dedicated single-item endpoint upstream.
	Get(ctx context.Context, id string) (domain.Job, error)
}

// Catalog is the local, dependency-free fallback source. It must not
// perform I/O at query time and therefore cannot fail.
type Catalog interface {
	Fetch(req domain.SearchRequest) ([]domain.Job, int)
}

// Option configures Service
type Option func(*config)

type config struct {
	provider        Provider
	catalog         Catalog
	logger          *logging.Logger
	providerTimeout time.Duration
}

// WithProvider sets the remote provider
func WithProvider(p Provider) Option {
	return func(c *config) {
		c.provider = p
	}
}

// WithCatalog sets the local fallback catalog
func WithCatalog(cat Catalog) Option {
	return func(c *config) {
		c.catalog = cat
	}
}

// WithLogger sets the logger
func WithLogger(log *logging.Logger) Option {
	return func(c *config) {
		c.logger = log
	}
}

// WithProviderTimeout bounds each provider attempt
func WithProviderTimeout(d time.Duration) Option {
	return func(c *config) {
		c.providerTimeout = d
	}
}

// NewService builds Service from options. A provider is optional (the
// catalog then serves everything); the catalog is not.
func NewService(opts ...Option) (Service, error) {
	cfg := &config{
		providerTimeout: defaultProviderTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.catalog == nil {
		return nil, fmt.Errorf("job.Service: catalog is required")
	}
	if cfg.logger == nil {
		cfg.logger = logging.New("info")
	}

	return &service{
		provider:        cfg.provider,
		catalog:         cfg.catalog,
		logger:          cfg.logger,
		providerTimeout: cfg.providerTimeout,
	}, nil
}

type service struct {
	provider        Provider
	catalog         Catalog
	logger          *logging.Logger
	providerTimeout time.Duration
}

func (s *service) Search(ctx context.Context, req domain.SearchRequest) (domain.SearchResponse, error) {
	req = req.Normalized()

	if jobs, ok := s.fetchRemote(ctx, req); ok {
		matched := search.Apply(jobs, req)
		if len(matched) > 0 {
			return paginate(matched, req), nil
		}
		s.logger.Debug("provider returned no matching records, falling back to catalog")
	}

	// Full substitution: provider and catalog results are never merged,
	// their ID spaces are independent.
	local, _ := s.catalog.Fetch(req)
	matched := search.Apply(local, req)
	return paginate(matched, req), nil
}

func (s *service) Get(ctx context.Context, id string) (domain.Job, error) {
	if id == "" {
		return domain.Job{}, ErrNotFound
	}

	// Paged scan over the broadest search. The selected source can hold
	// more records than one page, so the scan follows hasMore.
	for offset := 0; ; offset += domain.MaxLimit {
		resp, err := s.Search(ctx, domain.SearchRequest{Limit: domain.MaxLimit, Offset: offset})
		if err != nil {
			return domain.Job{}, err
		}

		for _, j := range resp.Jobs {
			if j.ID == id {
				return j, nil
			}
		}

		if !resp.HasMore {
			return domain.Job{}, ErrNotFound
		}
	}
}

// fetchRemote runs one bounded provider attempt. ok is false when the
// catalog should serve instead; classified failures are absorbed here.
func (s *service) fetchRemote(ctx context.Context, req domain.SearchRequest) ([]domain.Job, bool) {
	if s.provider == nil {
		return nil, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()

	jobs, total, err := s.provider.Fetch(ctx, req)
	if err == nil {
		s.logger.Debug("provider fetch succeeded",
			"provider", s.provider.Name(), "jobs", len(jobs), "reported_total", total)
		return jobs, true
	}

	var perr *ProviderError
	if errors.As(err, &perr) {
		switch perr.Class {
		case FailureRejected, FailureMalformed:
			s.logger.Warn("provider request failed, serving local catalog",
				"provider", perr.Provider, "class", perr.Class.String(), "err", perr.Err)
		default:
			s.logger.Debug("provider unavailable, serving local catalog",
				"provider", perr.Provider, "err", perr.Err)
		}
		return nil, false
	}

	// Unclassified errors get the unavailable treatment rather than
	// breaking the no-error contract of Search.
	s.logger.Warn("unclassified provider error, serving local catalog",
		"provider", s.provider.Name(), "err", err)
	return nil, false
}

func paginate(matched []domain.Job, req domain.SearchRequest) domain.SearchResponse {
	page, hasMore := search.Paginate(matched, req.Offset, req.Limit)
	return domain.SearchResponse{
		Jobs:    page,
		Total:   len(matched),
		HasMore: hasMore,
	}
}
