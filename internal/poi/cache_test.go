package poi

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheLoadsOnce(t *testing.T) {
	c := NewCache()
	var calls atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := c.Load("cafes", func() (any, error) {
				calls.Add(1)
				return "payload", nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "payload", v)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load(), "concurrent loads must share one call")
}

func TestCacheDoesNotCacheFailures(t *testing.T) {
	c := NewCache()
	calls := 0

	_, err := c.Load("cafes", func() (any, error) {
		calls++
		return nil, errors.New("disk gone")
	})
	require.Error(t, err)

	v, err := c.Load("cafes", func() (any, error) {
		calls++
		return "recovered", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "recovered", v)
	assert.Equal(t, 2, calls)
}

func TestCacheInvalidate(t *testing.T) {
	c := NewCache()
	calls := 0
	load := func() (any, error) {
		calls++
		return calls, nil
	}

	v, _ := c.Load("cafes", load)
	assert.Equal(t, 1, v)

	c.Invalidate("cafes")

	v, _ = c.Load("cafes", load)
	assert.Equal(t, 2, v)

	// Other keys are untouched by single-key invalidation.
	c.Load("bars", load)
	c.Invalidate("cafes")
	v, _ = c.Load("bars", load)
	assert.Equal(t, 3, v)
}
