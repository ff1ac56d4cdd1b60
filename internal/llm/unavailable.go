package llm

import (
	"context"

	"atsopt/internal/domain"
)

// Unavailable is a ChatClient that always fails with the error it was
// built with. It stands in when a real client could not be constructed so
// the caller's fallback path still runs.
type Unavailable struct {
	Err error
}

func (u Unavailable) Name() string { return "unavailable" }

func (u Unavailable) Complete(context.Context, string) (string, string, error) {
	if u.Err == nil {
		return "", "", domain.ErrExternalService
	}
	return "", "", u.Err
}
