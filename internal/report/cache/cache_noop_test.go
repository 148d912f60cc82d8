package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"payequity/internal/compliance"
	"payequity/pkg/platform/sentinel"
)

func TestNoopCache(t *testing.T) {
	ctx := context.Background()
	var c NoopCache

	assert.NoError(t, c.Set(ctx, "fp", compliance.Analyze(nil)))

	v, err := c.Get(ctx, "fp")
	assert.Nil(t, v)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}
