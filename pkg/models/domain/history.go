package domain

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// HistoryEntry is one recorded turn of the session's exchange log.
// The ordering of entries is chronological and authoritative on the
// service side; the client never reorders them.
type HistoryEntry struct {
	Role    Role
	Content string
}
