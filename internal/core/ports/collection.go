package ports

import (
	"context"
	"fmt"
)

// Collection is the remote API surface for one entity type, parametrized
// over the canonical record C and the view record D.
//
// List returns the server-computed view records. Create and Update exchange
// canonical records; the server fills in the id and creation timestamp.
// Delete returns the canonical record that was removed.
type Collection[C, D any] interface {
	List(ctx context.Context) ([]D, error)
	Create(ctx context.Context, record C) (*C, error)
	Update(ctx context.Context, record C) (*C, error)
	Delete(ctx context.Context, id int) (*C, error)
}

// RemoteError is a failed backend call: a transport failure or a non-success
// status. Message carries the server-provided detail when one was present.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}
