package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Source is where the raw dataset document comes from (a file, an S3 object, memory).
type Source interface {
	Load(ctx context.Context) ([]byte, error)
}

// Provider hands out a read-only dataset for a single tool invocation.
type Provider interface {
	Dataset(ctx context.Context) (*Dataset, error)
}

// LoadingProvider re-reads and re-parses the source on every call.
type LoadingProvider struct {
	source Source
}

func NewLoadingProvider(source Source) *LoadingProvider {
	return &LoadingProvider{source: source}
}

func (p *LoadingProvider) Dataset(ctx context.Context) (*Dataset, error) {
	b, err := p.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return Parse(b)
}

const snapshotKey = "dataset"

// CachedProvider keeps the parsed snapshot around. A ttl of 0 keeps it for
// the lifetime of the process.
type CachedProvider struct {
	loader *LoadingProvider
	cache  *expirable.LRU[string, *Dataset]
}

func NewCachedProvider(source Source, ttl time.Duration) *CachedProvider {
	return &CachedProvider{
		loader: NewLoadingProvider(source),
		cache:  expirable.NewLRU[string, *Dataset](1, nil, ttl),
	}
}

func (p *CachedProvider) Dataset(ctx context.Context) (*Dataset, error) {
	if ds, ok := p.cache.Get(snapshotKey); ok {
		return ds, nil
	}
	ds, err := p.loader.Dataset(ctx)
	if err != nil {
		return nil, err
	}
	p.cache.Add(snapshotKey, ds)
	slog.Info("DATASET: Snapshot loaded",
		"users", len(ds.Users),
		"foods", len(ds.Foods),
		"drugs", len(ds.Drugs),
		"meal_plans", len(ds.MealPlans),
	)
	return ds, nil
}

// Static wraps an already parsed dataset.
type Static struct{ ds *Dataset }

func NewStatic(ds *Dataset) Static { return Static{ds: ds} }

func (s Static) Dataset(context.Context) (*Dataset, error) { return s.ds, nil }
