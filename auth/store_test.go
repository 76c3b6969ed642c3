package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairWithRefresh(refresh string) Pair {
	return Pair{
		Token:                  "access-" + refresh,
		TokenExpiration:        time.Now().Add(time.Hour),
		RefreshToken:           refresh,
		RefreshTokenExpiration: time.Now().Add(24 * time.Hour),
	}
}

func TestMemoryStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)

	want := pairWithRefresh("r1")
	require.NoError(t, s.Put(ctx, "alice", want))

	got, ok, err := s.Get(ctx, "alice")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.RefreshToken, got.RefreshToken)

	require.NoError(t, s.Delete(ctx, "alice"))
	_, ok, err = s.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	// No stored pair: swap refuses.
	swapped, err := s.CompareAndSwap(ctx, "alice", "r0", pairWithRefresh("r1"))
	require.NoError(t, err)
	assert.False(t, swapped)

	require.NoError(t, s.Put(ctx, "alice", pairWithRefresh("r1")))

	swapped, err = s.CompareAndSwap(ctx, "alice", "wrong", pairWithRefresh("r2"))
	require.NoError(t, err)
	assert.False(t, swapped)

	swapped, err = s.CompareAndSwap(ctx, "alice", "r1", pairWithRefresh("r2"))
	require.NoError(t, err)
	assert.True(t, swapped)

	got, ok, _ := s.Get(ctx, "alice")
	require.True(t, ok)
	assert.Equal(t, "r2", got.RefreshToken)
}

func TestMemoryStoreCASRace(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, "alice", pairWithRefresh("r1")))

	// Many goroutines race the same swap; exactly one may win.
	const n = 32
	var wg sync.WaitGroup
	wins := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			next := pairWithRefresh("next-" + string(rune('a'+i%26)))
			ok, err := s.CompareAndSwap(ctx, "alice", "r1", next)
			require.NoError(t, err)
			if ok {
				wins <- next.RefreshToken
			}
		}(i)
	}
	wg.Wait()
	close(wins)

	var winners []string
	for w := range wins {
		winners = append(winners, w)
	}
	require.Len(t, winners, 1)

	got, ok, _ := s.Get(ctx, "alice")
	require.True(t, ok)
	assert.Equal(t, winners[0], got.RefreshToken)
}
