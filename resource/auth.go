package resource

import "net/http"

// Authenticator decides whether a request carries a valid principal. A nil
// principal means unauthenticated; the dispatcher rejects the request before
// the handler runs when the bound verb requires authentication.
type Authenticator interface {
	Authenticate(r *http.Request) (principal any, err error)
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(r *http.Request) (any, error)

// Authenticate implements Authenticator.
func (f AuthenticatorFunc) Authenticate(r *http.Request) (any, error) {
	return f(r)
}

// NoAuth lets every request through without a principal. It is the default
// authenticator, suitable for resources that never set RequireAuth.
type NoAuth struct{}

// Authenticate implements Authenticator.
func (NoAuth) Authenticate(*http.Request) (any, error) {
	return nil, nil
}
