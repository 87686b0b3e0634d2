package keylock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	k := New()
	var counter, maxSeen int
	var mu sync.Mutex
	wg := new(sync.WaitGroup)

	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("movie-1")
			defer unlock()

			mu.Lock()
			counter++
			maxSeen = max(maxSeen, counter)
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			counter--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, k.Len())
}

func TestKeyLock_DifferentKeysDoNotBlock(t *testing.T) {
	k := New()
	unlockFirst := k.Lock("movie-1")
	defer unlockFirst()

	done := make(chan struct{})
	go func() {
		unlock := k.Lock("movie-2")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "lock of another key is blocked")
	}
}

func TestKeyLock_UnlockIsIdempotent(t *testing.T) {
	k := New()
	unlock := k.Lock("movie-1")
	unlock()
	unlock()

	assert.Equal(t, 0, k.Len())

	relock := k.Lock("movie-1")
	relock()
}
