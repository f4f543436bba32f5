package speech

import "context"

// ListeningPlaceholder is shown in the query control while a
// transcript is awaited.
const ListeningPlaceholder = "Listening..."

// Capture wraps a Recognizer into the single-shot dictation flow: the
// visible query text shows a placeholder while listening and is
// replaced in full by the first transcript.
type Capture struct {
	engine   Recognizer
	setQuery func(string)
	getQuery func() string
}

func NewCapture(engine Recognizer, getQuery func() string, setQuery func(string)) *Capture {
	return &Capture{engine: engine, setQuery: setQuery, getQuery: getQuery}
}

// Listen suspends until the recognizer reports a first transcript and
// returns it. On an unsupported platform it reports ErrUnsupported for
// user-visible handling. On failure the previous query text is
// restored.
func (c *Capture) Listen(ctx context.Context) (string, error) {
	if !c.engine.Supported() {
		return "", ErrUnsupported
	}

	previous := c.getQuery()
	c.setQuery(ListeningPlaceholder)

	transcript, err := c.engine.Listen(ctx)
	if err != nil {
		c.setQuery(previous)
		return "", err
	}

	c.setQuery(transcript)
	return transcript, nil
}
