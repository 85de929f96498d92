// Package mail is the outbound email collaborator: temporary passwords and
// account notices are delivered through it. Delivery is best-effort and never
// precedes the state change it reports on.
package mail

import "context"

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers messages. Implementations may fail with a transport error;
// callers decide whether that aborts the user-visible operation.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
