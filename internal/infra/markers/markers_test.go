package markers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberService/internal/domain"
)

var (
	today     = time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	yesterday = today.AddDate(0, 0, -1)
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client, "barbershop", time.Hour), mr
}

func TestKey(t *testing.T) {
	assert.Equal(t, "notification_client_42_10min_2024-06-03", Key(domain.AudienceClient, 42, 10, today))
	assert.Equal(t, "notification_admin_7_5min_2024-06-03", Key(domain.AudienceAdmin, 7, 5, today))
	assert.Equal(t, "notification_running_late_client_42_10min_2024-06-03", KindKey(domain.AlertRunningLate, domain.AudienceClient, 42, 10, today))
	assert.NotEqual(t, Key(domain.AudienceClient, 42, 10, today), KindKey(domain.AlertRunningLate, domain.AudienceClient, 42, 10, today))
	assert.True(t, IsForDay(Key(domain.AudienceAdmin, 7, 5, today), today))
	assert.True(t, IsForDay(KindKey(domain.AlertOverrun, domain.AudienceAdmin, 7, 5, today), today))
	assert.False(t, IsForDay(Key(domain.AudienceAdmin, 7, 5, yesterday), today))
}

func TestStores(t *testing.T) {
	redisStore, _ := newRedisStore(t)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  redisStore,
	}

	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := Key(domain.AudienceClient, 1, 20, today)

			ok, err := store.Exists(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, store.Set(ctx, key))
			require.NoError(t, store.Set(ctx, key), "repeated set is a no-op")

			ok, err = store.Exists(ctx, key)
			require.NoError(t, err)
			assert.True(t, ok)

			keys, err := store.Keys(ctx, Prefix)
			require.NoError(t, err)
			assert.Equal(t, []string{key}, keys)

			require.NoError(t, store.Delete(ctx, key))
			ok, err = store.Exists(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestPurgeOtherDays(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, Key(domain.AudienceClient, 1, 20, yesterday)))
	require.NoError(t, store.Set(ctx, Key(domain.AudienceAdmin, 2, 5, yesterday)))
	require.NoError(t, store.Set(ctx, Key(domain.AudienceClient, 3, 10, today)))

	removed, err := PurgeOtherDays(ctx, store, today)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	keys, err := store.Keys(ctx, Prefix)
	require.NoError(t, err)
	assert.Equal(t, []string{Key(domain.AudienceClient, 3, 10, today)}, keys)
}

func TestRedisStore_TTL(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()
	key := Key(domain.AudienceClient, 1, 5, today)

	require.NoError(t, store.Set(ctx, key))
	assert.True(t, mr.Exists("barbershop:"+key))
	assert.Equal(t, time.Hour, mr.TTL("barbershop:"+key))

	mr.FastForward(2 * time.Hour)

	ok, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}
