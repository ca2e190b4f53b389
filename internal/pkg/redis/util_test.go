package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHelpersWithoutClient(t *testing.T) {
	Rdb = nil
	ctx := context.Background()

	assert.False(t, Enabled())
	assert.ErrorIs(t, SetValue(ctx, "k", 1), ErrNotInitialized)
	assert.ErrorIs(t, SetWithExpiration(ctx, "k", 1, time.Second), ErrNotInitialized)

	_, err := GetValue(ctx, "k")
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = Exists(ctx, "k")
	assert.ErrorIs(t, err, ErrNotInitialized)

	assert.ErrorIs(t, HSetBatch(ctx, map[string]map[string]any{"k": {"a": 1}}, 0), ErrNotInitialized)
	_, err = HGetAll(ctx, "k")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.ErrorIs(t, Publish(ctx, "c", "m"), ErrNotInitialized)
	_, err = Subscribe(ctx, "c")
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.NoError(t, Close())
}
