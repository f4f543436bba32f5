package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/de-tools/data-brief/pkg/services/chart"
	"github.com/de-tools/data-brief/pkg/services/history"
	"github.com/de-tools/data-brief/pkg/services/speech"
	"github.com/de-tools/data-brief/pkg/store/client"
	"github.com/rs/zerolog"
)

type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateReady      State = "ready"
	StateError      State = "error"
)

const (
	// DefaultQuery is used when a submission carries an attachment but
	// no query text.
	DefaultQuery = "Analyze this data"

	// PlainResultTitle is the fixed title of a synthesized result for a
	// submission that did not request a chart.
	PlainResultTitle = "Analysis Result"
)

// Service is the slice of the analysis service the controller drives.
type Service interface {
	Analyze(ctx context.Context, req client.AnalyzeRequest) (*domain.AnalysisResult, error)
}

// Notifier surfaces a user-visible notice. Every failure class of a
// submission is reported through exactly one notice; nothing retries.
type Notifier interface {
	Notify(message string)
}

type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}

// Controller owns one session: the submission lifecycle, the current
// chart, the pending attachment, the query text and the history
// snapshot. All mutation is sequential; asynchronous completions are
// guarded by a session epoch so a reset invalidates stale in-flight
// responses.
type Controller struct {
	svc      Service
	chart    *chart.Model
	history  *history.Store
	narrator *speech.Narrator
	notifier Notifier

	state      State
	query      string
	attachment string
	epoch      int
}

type Options struct {
	Service  Service
	History  *history.Store
	Narrator *speech.Narrator
	Notifier Notifier
}

func NewController(opts Options) *Controller {
	notifier := opts.Notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}
	narrator := opts.Narrator
	if narrator == nil {
		narrator = speech.NewNarrator(speech.DefaultSynthesizer())
	}

	return &Controller{
		svc:      opts.Service,
		chart:    chart.NewModel(),
		history:  opts.History,
		narrator: narrator,
		notifier: notifier,
		state:    StateIdle,
	}
}

func (c *Controller) State() State           { return c.state }
func (c *Controller) Chart() *chart.Model    { return c.chart }
func (c *Controller) History() *history.Store { return c.history }
func (c *Controller) Narrator() *speech.Narrator { return c.narrator }

func (c *Controller) Query() string      { return c.query }
func (c *Controller) SetQuery(q string)  { c.query = q }
func (c *Controller) Attachment() string { return c.attachment }

// Attach stages a file reference for the next submission. It persists
// across submissions until detached or the session resets.
func (c *Controller) Attach(path string) { c.attachment = path }
func (c *Controller) Detach()            { c.attachment = "" }

// Submit runs one submission cycle with the controller's current query
// and attachment. With an empty query and no attachment it is a guard
// no-op, not an error.
func (c *Controller) Submit(ctx context.Context, needsChart bool) error {
	return c.submit(ctx, c.query, needsChart)
}

// SubmitQuery replaces the query text (a suggested follow-up or a
// dictated transcript) and submits it.
func (c *Controller) SubmitQuery(ctx context.Context, query string, needsChart bool) error {
	c.query = query
	return c.submit(ctx, query, needsChart)
}

func (c *Controller) submit(ctx context.Context, query string, needsChart bool) error {
	logger := zerolog.Ctx(ctx)

	if query == "" && c.attachment == "" {
		return nil
	}

	c.narrator.Stop()
	if needsChart {
		// The old chart goes away before the request so the user sees a
		// loading gap instead of stale data.
		c.chart.Clear()
	}

	c.state = StateSubmitting
	epoch := c.epoch

	if query == "" {
		query = DefaultQuery
	}

	result, err := c.svc.Analyze(ctx, client.AnalyzeRequest{
		Query:          query,
		NeedsChart:     needsChart,
		AttachmentPath: c.attachment,
	})

	if c.epoch != epoch {
		logger.Debug().Msg("discarding analyze response from a reset session")
		return nil
	}

	if err != nil {
		c.state = StateError
		c.notifier.Notify(submitFailureNotice(err))
		return fmt.Errorf("submission failed: %w", err)
	}

	if needsChart {
		c.chart.Ingest(*result)
	} else {
		c.chart.Ingest(domain.AnalysisResult{
			Summary:     result.Summary,
			Title:       PlainResultTitle,
			Suggestions: []string{},
		})
	}

	if err := c.history.Refresh(ctx); err != nil {
		// The snapshot may transiently diverge from the service log; the
		// next successful refresh reconciles it.
		logger.Warn().Err(err).Msg("history refresh after submission failed")
	}

	c.state = StateReady
	return nil
}

// Reset clears the whole session: narration, query, chart, attachment
// and history, both locally and service-side. In-flight submissions
// from before the reset are invalidated.
func (c *Controller) Reset(ctx context.Context) error {
	c.narrator.Stop()
	c.query = ""
	c.attachment = ""
	c.chart.Clear()
	c.epoch++
	c.state = StateIdle

	if err := c.history.Clear(ctx); err != nil {
		c.notifier.Notify("Failed to clear session history.")
		return err
	}
	return nil
}

// Speak narrates the current summary; it is a no-op when no result is
// loaded.
func (c *Controller) Speak() error {
	result := c.chart.Result()
	if result == nil {
		return nil
	}
	return c.narrator.Speak(result.Summary)
}

func submitFailureNotice(err error) string {
	var svcErr *client.ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Message
	}
	return "Failed to analyze."
}
