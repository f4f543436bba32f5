package speech

import (
	"context"
	"sync"
)

// Narrator reads summaries aloud. It holds at most one active
// utterance: speaking again cancels the previous utterance instead of
// queueing, and the narrator returns to idle on its own once the
// utterance completes.
type Narrator struct {
	engine Synthesizer

	mu         sync.Mutex
	generation int
	cancel     context.CancelFunc
	speaking   bool
}

func NewNarrator(engine Synthesizer) *Narrator {
	return &Narrator{engine: engine}
}

// Speak starts narrating text, cancelling any utterance already in
// flight. Empty text is a no-op with no state change.
func (n *Narrator) Speak(text string) error {
	if text == "" {
		return nil
	}
	if !n.engine.Supported() {
		return ErrUnsupported
	}

	n.mu.Lock()
	if n.cancel != nil {
		n.cancel()
	}
	n.generation++
	generation := n.generation

	ctx, cancel := context.WithCancel(context.Background())
	n.cancel = cancel
	n.speaking = true
	n.mu.Unlock()

	go func() {
		_ = n.engine.Speak(ctx, text)

		n.mu.Lock()
		defer n.mu.Unlock()
		if n.generation == generation {
			n.speaking = false
			n.cancel = nil
		}
	}()

	return nil
}

// Stop cancels any active utterance and forces the narrator idle.
func (n *Narrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.cancel != nil {
		n.cancel()
		n.cancel = nil
	}
	n.generation++
	n.speaking = false
}

// Speaking reports whether an utterance is currently active.
func (n *Narrator) Speaking() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.speaking
}
