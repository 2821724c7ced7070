package jenkins

import (
	"encoding/base64"
	"net/http"
)

// Credentials authenticate requests to Jenkins. APIToken may be a user API token or a password.
type Credentials struct {
	User     string
	APIToken string
}

// IsSet returns true if a user name has been supplied.
func (c Credentials) IsSet() bool {
	return c.User != ""
}

// Authenticator enables the client to make authenticated requests using pluggable authentication methods.
type Authenticator interface {
	AuthenticateRequest(h http.Header) (http.Header, error)
}

// BasicAuthenticator authenticates requests using HTTP basic authentication, which is what Jenkins
// expects for API tokens.
type BasicAuthenticator struct {
	credentials Credentials
}

func NewBasicAuthenticator(credentials Credentials) *BasicAuthenticator {
	return &BasicAuthenticator{credentials: credentials}
}

func (a *BasicAuthenticator) AuthenticateRequest(h http.Header) (http.Header, error) {
	auth := a.credentials.User + ":" + a.credentials.APIToken
	h.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(auth)))
	return h, nil
}
