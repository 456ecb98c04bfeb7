package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"antrian/internal/logger"
)

func TestNew_EmptyAddrDisablesCache(t *testing.T) {
	c := New("", "", 0, logger.Discard())
	assert.Nil(t, c)

	ctx := context.Background()
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	v, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Close())
}

func TestClient_UnreachableRedisFailsSafe(t *testing.T) {
	// port 1 is never a redis server
	c := New("127.0.0.1:1", "", 0, logger.Discard())
	t.Cleanup(func() { _ = c.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	assert.Error(t, c.Ping(ctx))
	assert.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	v, err := c.Get(ctx, "k")
	assert.NoError(t, err)
	assert.Nil(t, v)
}
