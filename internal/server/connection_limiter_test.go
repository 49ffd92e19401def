package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGlobalConnectionLimiter(t *testing.T) {
	limiter := NewGlobalConnectionLimiter(2)

	assert.True(t, limiter.Acquire())
	assert.True(t, limiter.Acquire())
	assert.False(t, limiter.Acquire())
	assert.Equal(t, int64(2), limiter.Current())

	limiter.Release()
	assert.True(t, limiter.Acquire())
	assert.Equal(t, int64(2), limiter.Max())
}

func TestGlobalConnectionLimiter_Concurrent(t *testing.T) {
	limiter := NewGlobalConnectionLimiter(50)

	var wg sync.WaitGroup
	acquired := make(chan bool, 100)
	for _i := 0; _i < 100; _i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			acquired <- limiter.Acquire()
		}()
	}
	wg.Wait()
	close(acquired)

	successes := 0
	for ok := range acquired {
		if ok {
			successes++
		}
	}
	assert.Equal(t, 50, successes)
	assert.Equal(t, int64(50), limiter.Current())
}

func TestIPConnectionLimiter(t *testing.T) {
	limiter := NewIPConnectionLimiter(2)

	assert.True(t, limiter.Acquire("10.0.0.1"))
	assert.True(t, limiter.Acquire("10.0.0.1"))
	assert.False(t, limiter.Acquire("10.0.0.1"))

	// A different IP has its own budget
	assert.True(t, limiter.Acquire("10.0.0.2"))

	limiter.Release("10.0.0.1")
	assert.Equal(t, 1, limiter.Count("10.0.0.1"))
	assert.True(t, limiter.Acquire("10.0.0.1"))
}

func TestIPConnectionLimiter_ReleaseCleansUp(t *testing.T) {
	limiter := NewIPConnectionLimiter(4)

	limiter.Acquire("10.0.0.1")
	limiter.Release("10.0.0.1")
	assert.Equal(t, 0, limiter.Count("10.0.0.1"))

	// Releasing an unknown IP is a no-op
	limiter.Release("10.0.0.9")
	assert.Equal(t, 0, limiter.Count("10.0.0.9"))
}
