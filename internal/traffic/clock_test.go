package traffic

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock_NewClock(t *testing.T) {
	c := NewClock()
	assert.Equal(t, int64(0), c.Hour(), "new clock should start at hour 0")
}

func TestClock_NewClockAt(t *testing.T) {
	c := NewClockAt(47)
	assert.Equal(t, int64(47), c.Hour(), "clock should start at specified hour")
}

func TestClock_Tick_Incrementing(t *testing.T) {
	c := NewClock()

	assert.Equal(t, int64(1), c.Tick())
	assert.Equal(t, int64(2), c.Tick())
	assert.Equal(t, int64(3), c.Tick())

	assert.Equal(t, int64(3), c.Hour())
}

func TestClock_Hour_DoesNotAdvance(t *testing.T) {
	c := NewClock()

	c.Tick() // 1
	c.Tick() // 2

	assert.Equal(t, int64(2), c.Hour())
	assert.Equal(t, int64(2), c.Hour())
}

func TestClock_ThreadSafe(t *testing.T) {
	c := NewClock()
	const goroutines = 50
	const ticksPerGoroutine = 100

	var wg sync.WaitGroup
	hours := make(chan int64, goroutines*ticksPerGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < ticksPerGoroutine; j++ {
				hours <- c.Tick()
			}
		}()
	}

	wg.Wait()
	close(hours)

	seen := make(map[int64]bool)
	for h := range hours {
		assert.False(t, seen[h], "hour %d produced twice", h)
		seen[h] = true
	}

	assert.Len(t, seen, goroutines*ticksPerGoroutine, "all hours should be unique")
}
