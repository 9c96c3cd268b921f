package models

// HistoryStore is the ordered, append-only record of one session's interactions.
type HistoryStore interface {
	Append(interaction *Interaction)
	All() []Interaction
	Get(index int) (*Interaction, error)
	Len() int
}

// SessionStore maps session IDs to their history. It is owned by the caller and injected where
// needed.
type SessionStore interface {
	GetOrCreate(sessionID string) HistoryStore
	Get(sessionID string) (HistoryStore, error)
}
