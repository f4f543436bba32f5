package effects

import (
	"context"
	"math/rand"
	"time"
)

// Confetti burst defaults, matching the celebratory animation shown
// when a report compiles: a 3 second window emitting every 250ms with
// a particle count that decays linearly to zero.
const (
	DefaultDuration = 3 * time.Second
	DefaultInterval = 250 * time.Millisecond
	maxParticles    = 50
)

var palette = []string{"#6366f1", "#ec4899", "#14b8a6"}

// Emission is one decorative particle burst. Origin coordinates are in
// [0,1] screen space.
type Emission struct {
	Particles int
	Colors    []string
	OriginX   float64
	OriginY   float64
}

// Sink receives emissions. It is purely decorative; nothing in the
// session model depends on it.
type Sink interface {
	Emit(e Emission)
}

type SinkFunc func(e Emission)

func (f SinkFunc) Emit(e Emission) { f(e) }

// Burst schedules a self-terminating confetti animation.
type Burst struct {
	Duration time.Duration
	Interval time.Duration
	sink     Sink
}

func NewBurst(sink Sink) *Burst {
	return &Burst{
		Duration: DefaultDuration,
		Interval: DefaultInterval,
		sink:     sink,
	}
}

// Run emits on a fixed cadence until the deadline and then stops on
// its own. It never blocks session state transitions; cancel the
// context to end it early.
func (b *Burst) Run(ctx context.Context) {
	deadline := time.Now().Add(b.Duration)
	ticker := time.NewTicker(b.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			left := time.Until(deadline)
			if left <= 0 {
				return
			}
			b.sink.Emit(Emission{
				Particles: int(maxParticles * left.Seconds() / b.Duration.Seconds()),
				Colors:    palette,
				OriginX:   rand.Float64(),
				OriginY:   rand.Float64() - 0.2,
			})
		}
	}
}
