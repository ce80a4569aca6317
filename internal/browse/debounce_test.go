package browse

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerRunsOnlyLastTrigger(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	var ran atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { ran.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return ran.Load() == 1 },
		500*time.Millisecond, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), ran.Load(), "only the final trigger may run")
}

func TestDebouncerCancel(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	var ran atomic.Int32

	d.Trigger(func() { ran.Add(1) })
	d.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, ran.Load())
}

