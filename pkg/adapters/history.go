package adapters

import (
	"github.com/de-tools/data-brief/pkg/models/api"
	"github.com/de-tools/data-brief/pkg/models/domain"
	"github.com/de-tools/data-brief/pkg/models/store"
)

func MapApiHistoryEntryToDomain(entry api.HistoryEntry) domain.HistoryEntry {
	role := domain.RoleAssistant
	if entry.Role == string(domain.RoleUser) {
		role = domain.RoleUser
	}
	return domain.HistoryEntry{Role: role, Content: entry.Content}
}

func MapStoreMessageToApiHistoryEntry(msg store.Message) api.HistoryEntry {
	return api.HistoryEntry{Role: msg.Role, Content: msg.Content}
}

func MapApiSessionReportToDomain(report api.SessionReport) domain.SessionReport {
	return domain.SessionReport{
		Title:       report.Title,
		KeyFindings: append([]string{}, report.KeyFindings...),
		Suggestions: append([]string{}, report.Suggestions...),
	}
}

func MapDomainSessionReportToApi(report domain.SessionReport) api.SessionReport {
	return api.SessionReport{
		Title:       report.Title,
		KeyFindings: report.KeyFindings,
		Suggestions: report.Suggestions,
	}
}
