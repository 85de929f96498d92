package models

import "time"

// Entry is one stored record in a user's namespace. SearchKey is not unique:
// repeated inserts under the same key accumulate rows. CreatedAt has UTC date
// granularity.
type Entry struct {
	ID        string
	Owner     string
	SearchKey string
	Payload   string
	CreatedAt time.Time
}
