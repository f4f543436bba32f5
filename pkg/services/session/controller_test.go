package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/de-tools/data-brief/pkg/services/history"
	"github.com/de-tools/data-brief/pkg/services/speech"
	"github.com/de-tools/data-brief/pkg/store/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Analyze(ctx context.Context, req client.AnalyzeRequest) (*domain.AnalysisResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AnalysisResult), args.Error(1)
}

func (m *mockService) History(ctx context.Context) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *mockService) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type idleSynthesizer struct{}

func (idleSynthesizer) Speak(ctx context.Context, text string) error { return nil }
func (idleSynthesizer) Supported() bool                              { return true }

func newTestController(svc *mockService) (*Controller, *[]string) {
	notices := &[]string{}
	ctrl := NewController(Options{
		Service:  svc,
		History:  history.NewStore(svc),
		Narrator: speech.NewNarrator(idleSynthesizer{}),
		Notifier: NotifierFunc(func(msg string) { *notices = append(*notices, msg) }),
	})
	return ctrl, notices
}

func chartResult() *domain.AnalysisResult {
	return &domain.AnalysisResult{
		Summary:   "Revenue grew 12%",
		Title:     "Q1 Revenue",
		ChartType: domain.ChartTypeBar,
		Unit:      "$",
		Data: []domain.SeriesPoint{
			{Name: "Jan", Value: 1000},
			{Name: "Feb", Value: 1200},
		},
		Suggestions: []string{"Compare to Q4"},
	}
}

func TestController_SubmitGuard_EmptyQueryNoAttachment(t *testing.T) {
	svc := &mockService{}
	ctrl, notices := newTestController(svc)

	require.NoError(t, ctrl.Submit(context.Background(), true))

	assert.Equal(t, StateIdle, ctrl.State())
	assert.Empty(t, *notices)
	svc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestController_SubmitChartRequested(t *testing.T) {
	svc := &mockService{}
	ctrl, _ := newTestController(svc)

	svc.On("Analyze", mock.Anything, client.AnalyzeRequest{
		Query:      "Analyze Q1 revenue",
		NeedsChart: true,
	}).Return(chartResult(), nil).Once()
	svc.On("History", mock.Anything).Return([]domain.HistoryEntry{
		{Role: domain.RoleUser, Content: "Analyze Q1 revenue"},
		{Role: domain.RoleAssistant, Content: "Revenue grew 12%"},
	}, nil).Once()

	ctrl.SetQuery("Analyze Q1 revenue")
	require.NoError(t, ctrl.Submit(context.Background(), true))

	assert.Equal(t, StateReady, ctrl.State())
	result := ctrl.Chart().Result()
	require.NotNil(t, result)
	assert.Equal(t, "Revenue grew 12%", result.Summary)
	assert.True(t, result.HasChart())
	assert.Equal(t, 2, ctrl.History().Len())
	assert.Equal(t, 0, ctrl.Chart().Factor(), "factor resets on a fresh result")

	ctrl.Chart().SetFactor(10)
	simulated := ctrl.Chart().SimulatedSeries()
	assert.Equal(t, 1100.0, simulated[0].Value)
	assert.Equal(t, 1320.0, simulated[1].Value)

	svc.AssertExpectations(t)
}

func TestController_SubmitWithoutChartSynthesizesPlainResult(t *testing.T) {
	svc := &mockService{}
	ctrl, _ := newTestController(svc)

	svc.On("Analyze", mock.Anything, mock.Anything).Return(&domain.AnalysisResult{
		Summary:     "Total sales: $5,000",
		Title:       "Sales",
		ChartType:   domain.ChartTypeBar,
		Data:        []domain.SeriesPoint{{Name: "x", Value: 1}},
		Suggestions: []string{"should be dropped"},
	}, nil).Once()
	svc.On("History", mock.Anything).Return([]domain.HistoryEntry{}, nil).Once()

	ctrl.SetQuery("total sales?")
	require.NoError(t, ctrl.Submit(context.Background(), false))

	result := ctrl.Chart().Result()
	require.NotNil(t, result)
	assert.Equal(t, PlainResultTitle, result.Title)
	assert.Equal(t, "Total sales: $5,000", result.Summary)
	assert.Empty(t, result.Data)
	assert.Empty(t, result.Suggestions)
	assert.False(t, ctrl.Chart().HasChart())
}

func TestController_AttachmentOnlySubmissionUsesDefaultQuery(t *testing.T) {
	svc := &mockService{}
	ctrl, _ := newTestController(svc)

	svc.On("Analyze", mock.Anything, client.AnalyzeRequest{
		Query:          DefaultQuery,
		NeedsChart:     true,
		AttachmentPath: "sales.csv",
	}).Return(chartResult(), nil).Once()
	svc.On("History", mock.Anything).Return([]domain.HistoryEntry{}, nil).Once()

	ctrl.Attach("sales.csv")
	require.NoError(t, ctrl.Submit(context.Background(), true))

	assert.Equal(t, "sales.csv", ctrl.Attachment(), "attachment persists until cleared")
	svc.AssertExpectations(t)
}

func TestController_ServiceReportedErrorSurfacesExactMessage(t *testing.T) {
	svc := &mockService{}
	ctrl, notices := newTestController(svc)

	svc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, &client.ServiceError{Message: "File too large"}).Once()

	ctrl.SetQuery("analyze this")
	err := ctrl.Submit(context.Background(), true)

	require.Error(t, err)
	assert.Equal(t, StateError, ctrl.State())
	assert.Equal(t, []string{"File too large"}, *notices)
	assert.Nil(t, ctrl.Chart().Result(), "optimistically cleared chart stays empty")
	svc.AssertNotCalled(t, "History", mock.Anything)
}

func TestController_TransportFailureUsesGenericNotice(t *testing.T) {
	svc := &mockService{}
	ctrl, notices := newTestController(svc)

	svc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("service unreachable")).Once()

	ctrl.SetQuery("analyze this")
	err := ctrl.Submit(context.Background(), false)

	require.Error(t, err)
	assert.Equal(t, []string{"Failed to analyze."}, *notices)
}

func TestController_ChartClearedBeforeChartRequestOnly(t *testing.T) {
	svc := &mockService{}
	ctrl, _ := newTestController(svc)

	svc.On("Analyze", mock.Anything, mock.Anything).Return(chartResult(), nil).Once()
	svc.On("History", mock.Anything).Return([]domain.HistoryEntry{}, nil).Once()
	ctrl.SetQuery("Analyze Q1 revenue")
	require.NoError(t, ctrl.Submit(context.Background(), true))
	require.True(t, ctrl.Chart().HasChart())

	// A failing non-chart submission leaves the prior chart in place.
	svc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("service unreachable")).Once()
	ctrl.SetQuery("and without a chart?")
	_ = ctrl.Submit(context.Background(), false)
	assert.True(t, ctrl.Chart().HasChart())

	// A failing chart submission clears it up front.
	svc.On("Analyze", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("service unreachable")).Once()
	ctrl.SetQuery("chart again")
	_ = ctrl.Submit(context.Background(), true)
	assert.False(t, ctrl.Chart().HasChart())
}

func TestController_ResetClearsEverythingAtomically(t *testing.T) {
	svc := &mockService{}
	ctrl, _ := newTestController(svc)

	svc.On("Analyze", mock.Anything, mock.Anything).Return(chartResult(), nil).Once()
	svc.On("History", mock.Anything).Return([]domain.HistoryEntry{
		{Role: domain.RoleUser, Content: "Analyze Q1 revenue"},
	}, nil).Once()
	ctrl.SetQuery("Analyze Q1 revenue")
	ctrl.Attach("sales.csv")
	require.NoError(t, ctrl.Submit(context.Background(), true))

	svc.On("Reset", mock.Anything).Return(nil).Once()
	require.NoError(t, ctrl.Reset(context.Background()))

	assert.Equal(t, "", ctrl.Query())
	assert.Equal(t, "", ctrl.Attachment())
	assert.Nil(t, ctrl.Chart().Result())
	assert.Empty(t, ctrl.History().Entries())
	assert.Equal(t, StateIdle, ctrl.State())
	svc.AssertExpectations(t)
}

func TestController_StaleResponseAfterResetIsDiscarded(t *testing.T) {
	svc := &mockService{}
	ctrl, _ := newTestController(svc)

	// The analyze call completes only after a reset has bumped the
	// session epoch; its result must not be assimilated.
	svc.On("Reset", mock.Anything).Return(nil)
	svc.On("Analyze", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			_ = ctrl.Reset(context.Background())
		}).
		Return(chartResult(), nil).Once()

	ctrl.SetQuery("Analyze Q1 revenue")
	require.NoError(t, ctrl.Submit(context.Background(), true))

	assert.Nil(t, ctrl.Chart().Result())
	assert.Equal(t, StateIdle, ctrl.State())
	svc.AssertNotCalled(t, "History", mock.Anything)
}
