package store

import "time"

// Message is one persisted row of the service-side exchange log.
type Message struct {
	ID        int64
	Role      string
	Content   string
	CreatedAt time.Time
}
