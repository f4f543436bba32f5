package report

import (
	"context"
	"testing"

	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/de-tools/data-brief/pkg/store/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Summary(ctx context.Context) (*domain.SessionReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SessionReport), args.Error(1)
}

type fakeSnapshot int

func (f fakeSnapshot) Len() int { return int(f) }

func TestCompiler_EmptyHistoryMakesNoServiceCall(t *testing.T) {
	svc := &mockService{}
	c := NewCompiler(svc, fakeSnapshot(0))

	report, err := c.Compile(context.Background())

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrEmptyHistory)
	svc.AssertNotCalled(t, "Summary", mock.Anything)
}

func TestCompiler_CompilesOverHistory(t *testing.T) {
	svc := &mockService{}
	c := NewCompiler(svc, fakeSnapshot(4))

	expected := &domain.SessionReport{
		Title:       "Q1 Review",
		KeyFindings: []string{"Revenue grew 12%"},
		Suggestions: []string{"Compare to Q4"},
	}
	svc.On("Summary", mock.Anything).Return(expected, nil).Once()

	report, err := c.Compile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, report)
	svc.AssertExpectations(t)
}

func TestCompiler_ServiceErrorYieldsNoReport(t *testing.T) {
	svc := &mockService{}
	c := NewCompiler(svc, fakeSnapshot(2))

	svc.On("Summary", mock.Anything).
		Return(nil, &client.ServiceError{Message: "No history."}).Once()

	report, err := c.Compile(context.Background())

	assert.Nil(t, report)
	require.Error(t, err)
}
