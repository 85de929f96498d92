package models

import "time"

// PendingCredential is a one-time temporary password awaiting consumption.
// At most one row exists per username; issuing a new one supersedes it.
type PendingCredential struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}
