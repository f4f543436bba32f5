package briefing

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/de-tools/data-brief/pkg/adapters"
	"github.com/de-tools/data-brief/pkg/models/api"
	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/de-tools/data-brief/pkg/services/insight"
	historystore "github.com/de-tools/data-brief/pkg/store/duckdb/history"
	"github.com/rs/zerolog"
)

const maxAttachmentSize = 16 << 20

type Handler struct {
	analyzer insight.Analyzer
	history  historystore.Store
}

func NewHandler(analyzer insight.Analyzer, history historystore.Store) *Handler {
	return &Handler{analyzer: analyzer, history: history}
}

// Analyze handles POST /analyze: a multipart form with query,
// needs_chart and an optional file. Failures come back as a
// well-formed {error} payload, matching what clients expect.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if err := r.ParseMultipartForm(maxAttachmentSize); err != nil {
		writeError(w, logger, "Invalid analyze request.")
		return
	}

	query := r.FormValue("query")
	needsChart := r.FormValue("needs_chart") == "true"

	var attachment []byte
	if file, _, err := r.FormFile("file"); err == nil {
		attachment, err = io.ReadAll(io.LimitReader(file, maxAttachmentSize))
		_ = file.Close()
		if err != nil {
			writeError(w, logger, "Could not read the attached file.")
			return
		}
	}

	result, err := h.analyzer.Analyze(ctx, query, attachment, needsChart)
	if err != nil {
		logger.Warn().Err(err).Msg("analysis failed")
		writeError(w, logger, err.Error())
		return
	}

	if err := h.history.Add(ctx, string(domain.RoleUser), query); err != nil {
		logger.Error().Err(err).Msg("failed to record user message")
	}
	if err := h.history.Add(ctx, string(domain.RoleAssistant), result.Summary); err != nil {
		logger.Error().Err(err).Msg("failed to record assistant message")
	}

	writeJSON(w, logger, adapters.MapDomainAnalysisResultToApi(result))
}

// History handles GET /history: the full exchange log in
// chronological order.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	messages, err := h.history.GetAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load history")
		writeError(w, logger, "Could not load history.")
		return
	}

	entries := make([]api.HistoryEntry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, adapters.MapStoreMessageToApiHistoryEntry(msg))
	}
	writeJSON(w, logger, entries)
}

// Reset handles POST /reset: clears the service-side log.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	if err := h.history.Clear(ctx); err != nil {
		logger.Error().Err(err).Msg("failed to clear history")
		writeError(w, logger, "Could not clear history.")
		return
	}
	writeJSON(w, logger, api.Ack{Message: "Memory cleared"})
}

// Summary handles GET /summary: an executive report compiled over the
// whole log. An empty log is a service-reported error, not an empty
// report.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	messages, err := h.history.GetAll(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load history")
		writeError(w, logger, "Could not load history.")
		return
	}
	if len(messages) == 0 {
		writeError(w, logger, "No history.")
		return
	}

	entries := make([]domain.HistoryEntry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, adapters.MapApiHistoryEntryToDomain(
			adapters.MapStoreMessageToApiHistoryEntry(msg)))
	}

	report, err := h.analyzer.Summarize(ctx, entries)
	if err != nil {
		logger.Warn().Err(err).Msg("report compilation failed")
		writeError(w, logger, "Could not generate summary.")
		return
	}
	writeJSON(w, logger, adapters.MapDomainSessionReportToApi(report))
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, logger *zerolog.Logger, message string) {
	writeJSON(w, logger, api.Envelope{Error: message})
}
