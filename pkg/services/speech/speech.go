package speech

import (
	"context"
	"errors"
)

// ErrUnsupported is reported when the platform lacks a speech
// capability. Callers surface it to the user; it is never swallowed.
var ErrUnsupported = errors.New("speech capability not supported on this platform")

// Synthesizer is the platform speech-synthesis capability. Speak
// blocks until the utterance completes or the context is cancelled.
type Synthesizer interface {
	Speak(ctx context.Context, text string) error
	Supported() bool
}

// Recognizer is the platform speech-recognition capability. Listen
// blocks until a first transcript is available.
type Recognizer interface {
	Listen(ctx context.Context) (string, error)
	Supported() bool
}
