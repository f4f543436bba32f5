package domain

// SessionReport is the executive briefing compiled over the whole
// session history. It is ephemeral: built on demand, discarded when
// dismissed or on reset, never partially updated.
type SessionReport struct {
	Title       string
	KeyFindings []string
	Suggestions []string
}
