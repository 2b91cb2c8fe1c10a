package grpc

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/godilite/survey-stats/internal/grpc/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

func TestJitterTTL(t *testing.T) {
	ttl := 10 * time.Minute
	for i := 0; i < 100; i++ {
		got := jitterTTL(ttl)
		assert.GreaterOrEqual(t, got, 9*time.Minute)
		assert.LessOrEqual(t, got, 11*time.Minute)
	}
	assert.Equal(t, time.Duration(0), jitterTTL(0))
	assert.Equal(t, time.Duration(5), jitterTTL(5))
}

func TestFindAndCache(t *testing.T) {
	t.Run("miss fetches and stores", func(t *testing.T) {
		stored := make(chan string, 1)
		c := &mocks.MockCacher{
			SetFunc: func(ctx context.Context, key string, value any, expiration time.Duration) error {
				stored <- key
				return nil
			},
		}
		var sf singleflight.Group

		got, err := FindAndCache(context.Background(), c, &sf, "k", time.Minute, zap.NewNop(), func(ctx context.Context) (int, error) {
			return 42, nil
		})

		require.NoError(t, err)
		assert.Equal(t, 42, got)
		select {
		case key := <-stored:
			assert.Equal(t, "k", key)
		case <-time.After(2 * time.Second):
			t.Fatal("value was not stored")
		}
	})

	t.Run("cache error is treated as a miss", func(t *testing.T) {
		c := &mocks.MockCacher{
			GetFunc: func(ctx context.Context, key string, dest any) error {
				return errors.New("connection refused")
			},
			SetFunc: func(ctx context.Context, key string, value any, expiration time.Duration) error {
				return errors.New("connection refused")
			},
		}
		var sf singleflight.Group

		got, err := FindAndCache(context.Background(), c, &sf, "k", time.Minute, nil, func(ctx context.Context) (string, error) {
			return "fresh", nil
		})

		require.NoError(t, err)
		assert.Equal(t, "fresh", got)
	})

	t.Run("fetch error is returned and nothing is stored", func(t *testing.T) {
		var sets atomic.Int32
		c := &mocks.MockCacher{
			SetFunc: func(ctx context.Context, key string, value any, expiration time.Duration) error {
				sets.Add(1)
				return nil
			},
		}
		var sf singleflight.Group
		want := errors.New("boom")

		_, err := FindAndCache(context.Background(), c, &sf, "k", time.Minute, zap.NewNop(), func(ctx context.Context) (int, error) {
			return 0, want
		})

		assert.ErrorIs(t, err, want)
		assert.Equal(t, int32(0), sets.Load())
	})

	t.Run("concurrent misses share one fetch", func(t *testing.T) {
		var calls atomic.Int32
		release := make(chan struct{})
		c := &mocks.MockCacher{}
		var sf singleflight.Group

		var wg sync.WaitGroup
		results := make([]int, 5)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				v, err := FindAndCache(context.Background(), c, &sf, "shared", time.Minute, zap.NewNop(), func(ctx context.Context) (int, error) {
					calls.Add(1)
					<-release
					return 7, nil
				})
				assert.NoError(t, err)
				results[i] = v
			}(i)
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, []int{7, 7, 7, 7, 7}, results)
		assert.LessOrEqual(t, calls.Load(), int32(5))
		assert.GreaterOrEqual(t, calls.Load(), int32(1))
	})
}
