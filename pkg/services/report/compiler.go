package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/de-tools/data-brief/pkg/models/domain"
)

// ErrEmptyHistory is the precondition violation for compiling a report
// over an empty session. No service call is made in that case.
var ErrEmptyHistory = errors.New("no session data to summarize yet")

// Service is the slice of the analysis service that compiles reports.
type Service interface {
	Summary(ctx context.Context) (*domain.SessionReport, error)
}

// Snapshot is the view of the history the compiler checks its
// precondition against.
type Snapshot interface {
	Len() int
}

// Compiler builds the executive session report over the accumulated
// history via the service.
type Compiler struct {
	svc     Service
	history Snapshot
}

func NewCompiler(svc Service, history Snapshot) *Compiler {
	return &Compiler{svc: svc, history: history}
}

// Compile requests a report over the session history. An empty history
// snapshot refuses up front with ErrEmptyHistory.
func (c *Compiler) Compile(ctx context.Context) (*domain.SessionReport, error) {
	if c.history.Len() == 0 {
		return nil, ErrEmptyHistory
	}

	report, err := c.svc.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile session report: %w", err)
	}
	return report, nil
}
