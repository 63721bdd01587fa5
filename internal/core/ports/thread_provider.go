package ports

import "context"

// ThreadVisibility controls whether a thread message is shown to the buyer
// or kept internal to the support team.
type ThreadVisibility int

const (
	// VisibilityPublic messages are delivered to the buyer.
	VisibilityPublic ThreadVisibility = iota

	// VisibilityInternal messages are agent-only notes.
	VisibilityInternal
)

// NewThread describes the first message of a conversation thread.
type NewThread struct {
	RequesterName  string
	RequesterEmail string
	Subject        string
	Body           string
	Visibility     ThreadVisibility
}

// ThreadProvider is the external ticketing collaborator. One thread is
// correlated 1:1 with an order; the ThreadBinder owns that invariant, this
// interface only talks to the provider.
//
// Calls are network operations with bounded timeouts; errors are transient
// upstream failures and never roll back committed lifecycle state.
type ThreadProvider interface {
	// CreateThread opens a new conversation thread and returns its external
	// identifier.
	CreateThread(ctx context.Context, thread NewThread) (string, error)

	// AppendComment adds a message to an existing thread without creating a
	// new one.
	AppendComment(ctx context.Context, threadID, body string, visibility ThreadVisibility) error
}
