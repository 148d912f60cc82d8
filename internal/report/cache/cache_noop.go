package cache

import (
	"context"

	"payequity/internal/compliance"
	"payequity/pkg/platform/sentinel"
)

// NoopCache never remembers anything. Used when Redis is not configured.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) (*compliance.Verdict, error) {
	return nil, sentinel.ErrNotFound
}

func (NoopCache) Set(context.Context, string, compliance.Verdict) error {
	return nil
}
