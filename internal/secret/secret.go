// Package secret abstracts lookup of provider credentials so the
// notification dispatcher never reads the environment directly and
// tests can inject fixed values.
package secret

import (
	"context"
	"os"
)

// ResendAPIKey is the credential name for the Resend mail provider.
const ResendAPIKey = "RESEND_API_KEY"

// Store looks up a credential by name. Implementations return an empty
// string, not an error, when the credential is simply absent; errors are
// reserved for lookup failures against remote secret backends.
type Store interface {
	Get(ctx context.Context, name string) (string, error)
}

// Env reads credentials from environment variables. The name passed to
// Get is used verbatim as the variable name.
type Env struct{}

func (Env) Get(_ context.Context, name string) (string, error) {
	return os.Getenv(name), nil
}

// Static serves credentials from a fixed map. Used by tests.
type Static map[string]string

func (s Static) Get(_ context.Context, name string) (string, error) {
	return s[name], nil
}
