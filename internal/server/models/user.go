// Package models defines the persisted record types of simpledb.
package models

import "time"

// User is an identity record. Username is the primary key and immutable.
// A user is pending until activation flips IsValidated.
type User struct {
	Username     string
	Email        string
	PasswordHash string
	IsValidated  bool
	CreatedAt    time.Time
}
