package effects

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBurst_SelfTerminatesOnDeadline(t *testing.T) {
	var mu sync.Mutex
	var emissions []Emission

	b := NewBurst(SinkFunc(func(e Emission) {
		mu.Lock()
		emissions = append(emissions, e)
		mu.Unlock()
	}))
	b.Duration = 100 * time.Millisecond
	b.Interval = 10 * time.Millisecond

	done := make(chan struct{})
	go func() {
		b.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("burst did not self-terminate")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, emissions)
	for _, e := range emissions {
		assert.LessOrEqual(t, e.Particles, 50)
		assert.GreaterOrEqual(t, e.Particles, 0)
		assert.Equal(t, palette, e.Colors)
	}
	// Particle counts decay as the deadline approaches.
	assert.LessOrEqual(t, emissions[len(emissions)-1].Particles, emissions[0].Particles)
}

func TestBurst_StopsOnContextCancel(t *testing.T) {
	b := NewBurst(SinkFunc(func(Emission) {}))
	b.Duration = time.Hour
	b.Interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("burst ignored cancellation")
	}
}
