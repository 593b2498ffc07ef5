// Package catalog holds the local fallback dataset: a fixed, read-only
// set of job records loaded once at process start. It has no network
// dependency and cannot fail at query time.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/joblens/joblens/internal/domain"
	"github.com/joblens/joblens/internal/search"
)

//go:embed seed.json
var seedData []byte

// Catalog is an immutable in-memory job collection.
type Catalog struct {
	jobs []domain.Job
}

// New builds a catalog from records, precomputing salary buckets the same
// way the provider normalizer does so both sources filter identically.
func New(jobs []domain.Job) *Catalog {
	out := make([]domain.Job, len(jobs))
	for i, j := range jobs {
		if j.SalaryBucket == "" {
			j.SalaryBucket = search.SalaryBucket(j.Salary)
		}
		out[i] = j
	}
	return &Catalog{jobs: out}
}

// Load reads a catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}

	jobs, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("catalog: parse %s: %w", path, err)
	}

	return New(jobs), nil
}

// Default returns the catalog embedded in the binary.
func Default() *Catalog {
	jobs, err := decode(seedData)
	if err != nil {
		// The seed ships with the binary; failing to parse it is a build
		// defect, not a runtime condition.
		panic(fmt.Sprintf("catalog: embedded seed is invalid: %v", err))
	}
	return New(jobs)
}

// Fetch returns every record and the collection size. Filtering happens
// downstream in the shared engine; an empty catalog yields an empty set,
// never an error.
func (c *Catalog) Fetch(_ domain.SearchRequest) ([]domain.Job, int) {
	if c == nil || len(c.jobs) == 0 {
		return []domain.Job{}, 0
	}

	out := make([]domain.Job, len(c.jobs))
	copy(out, c.jobs)
	return out, len(c.jobs)
}

// Len reports the number of records held.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.jobs)
}

func decode(data []byte) ([]domain.Job, error) {
	var jobs []domain.Job
	if err := json.Unmarshal(data, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}
