package redis

import (
	"context"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureGroupIsIdempotent(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	require.NoError(t, EnsureGroup(ctx, rdb, "sentiment.analysis.request", "analyzer-group"))
	require.NoError(t, EnsureGroup(ctx, rdb, "sentiment.analysis.request", "analyzer-group"))

	exists, err := rdb.Exists(ctx, "sentiment.analysis.request").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}

func TestNewClientFailsWhenUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	mr.Close()

	_, err = NewClient(Config{Host: "127.0.0.1", Port: port})
	assert.Error(t, err)
}
