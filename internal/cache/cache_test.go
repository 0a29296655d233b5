package cache

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Priyagaggar/TalentLens-AI/internal/types"
)

func setupRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), ttl)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestKey(t *testing.T) {
	a := Key("skills", "Python developer", "fp1", "90")
	b := Key("skills", "Python developer", "fp1", "85")
	c := Key("skills", "Go developer", "fp1", "90")

	assert.True(t, strings.HasPrefix(a, "skills:fp1:90:"))
	assert.NotEqual(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, a, Key("skills", "Python developer", "fp1", "90"))
}

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, err := m.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	value := []byte("v1")
	require.NoError(t, m.Set(ctx, "k", value))
	value[0] = 'x'

	got, ok, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("v1"), got)
	assert.Equal(t, 1, m.Len())
}

func TestMemory_Concurrent(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key("k", string(rune('a'+i%5)))
			_ = m.Set(ctx, key, []byte{byte(i)})
			_, _, _ = m.Get(ctx, key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 5, m.Len())
}

func TestRedis_GetSet(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedis(t, time.Hour)
	require.NoError(t, c.Ping(ctx))

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("hello")))
	assert.True(t, mr.Exists("talentlens:k"))
	assert.Equal(t, time.Hour, mr.TTL("talentlens:k"))

	got, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("hello"), got)
}

func TestRedis_Expiry(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedis(t, time.Minute)

	require.NoError(t, c.Set(ctx, "k", []byte("v")))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_ServerDown(t *testing.T) {
	ctx := context.Background()
	c, mr := setupRedis(t, 0)
	mr.Close()

	_, ok, err := c.Get(ctx, "k")
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, c.Set(ctx, "k", []byte("v")))
	assert.Error(t, c.Ping(ctx))
}

func TestJSONRoundTripThroughCaches(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRedis(t, 0)

	for name, c := range map[string]Cache{"memory": NewMemory(), "redis": r} {
		t.Run(name, func(t *testing.T) {
			in := types.SkillSet{"databases": {"PostgreSQL"}, "programming_languages": {"Go", "Python"}}
			require.NoError(t, SetJSON(ctx, c, "skills", in))

			var out types.SkillSet
			ok, err := GetJSON(ctx, c, "skills", &out)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, in, out)

			ok, err = GetJSON(ctx, c, "absent", &out)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestGetJSON_CorruptValue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", []byte("{not json")))

	var out types.ExperienceBreakdown
	ok, err := GetJSON(ctx, m, "k", &out)
	assert.Error(t, err)
	assert.False(t, ok)
}
