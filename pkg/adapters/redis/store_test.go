package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/chimara/pkg/adapters/redis"
	"github.com/aretw0/chimara/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSettingsStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunSettingsBackendContract(t, redis.NewSettingsStore(client))
}

func TestRedisRecentStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunRecentStoreContract(t, redis.NewRecentStore(client))
}

func TestRedisStores_Prefix(t *testing.T) {
	mr, client := newClient(t)
	ctx := context.Background()

	settings := redis.NewSettingsStore(client, redis.WithPrefix("test:"))
	require.NoError(t, settings.Set(ctx, "state.last-open-path", "/games"))
	assert.Equal(t, "/games", mr.HGet("test:settings", "state.last-open-path"))

	recent := redis.NewRecentStore(client, redis.WithPrefix("test:"))
	require.NoError(t, recent.Touch(ctx, "file:///games/zork.z5", time.Now()))
	members, err := mr.ZMembers("test:recent")
	require.NoError(t, err)
	assert.Equal(t, []string{"file:///games/zork.z5"}, members)
}

func TestDial(t *testing.T) {
	mr, _ := newClient(t)

	client, err := redis.Dial("redis://" + mr.Addr() + "/0")
	require.NoError(t, err)
	defer client.Close()
	assert.NoError(t, client.Ping(context.Background()).Err())

	_, err = redis.Dial("not a url")
	assert.Error(t, err)
}
