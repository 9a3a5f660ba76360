package auth

import (
	"errors"
	"strings"

	"github.com/milan604/esb-oms/pkg/models"
)

// ErrInvalidCredentials is returned when credentials are missing, partial,
// or mix a static token with a username and password.
var ErrInvalidCredentials = errors.New("provide either username and password or a static token, not both")

// CredentialKind tells which variant a Credentials value holds.
type CredentialKind int

const (
	UsernamePassword CredentialKind = iota + 1
	StaticToken
)

func (k CredentialKind) String() string {
	switch k {
	case UsernamePassword:
		return "username_password"
	case StaticToken:
		return "static_token"
	}
	return "none"
}

// Credentials is an immutable credential source.
type Credentials struct {
	kind     CredentialKind
	username string
	password string
	token    string
}

// NewCredentials validates that exactly one of {username+password, static
// token} is supplied.
func NewCredentials(username, password, staticToken string) (Credentials, error) {
	username = strings.TrimSpace(username)
	staticToken = strings.TrimSpace(staticToken)

	hasUser := username != ""
	hasPass := password != ""
	hasToken := staticToken != ""

	switch {
	case hasToken && (hasUser || hasPass):
		return Credentials{}, ErrInvalidCredentials
	case hasToken:
		return Credentials{kind: StaticToken, token: staticToken}, nil
	case hasUser && hasPass:
		return Credentials{kind: UsernamePassword, username: username, password: password}, nil
	default:
		return Credentials{}, ErrInvalidCredentials
	}
}

func (c Credentials) Kind() CredentialKind { return c.kind }

// Username returns the configured username, empty for static tokens.
func (c Credentials) Username() string { return c.username }

// IsStatic reports a static-token credential.
func (c Credentials) IsStatic() bool { return c.kind == StaticToken }

// BasicAuth returns the username and password for Basic-auth endpoints.
// ok is false for static-token credentials.
func (c Credentials) BasicAuth() (username, password string, ok bool) {
	if c.kind != UsernamePassword {
		return "", "", false
	}
	return c.username, c.password, true
}

// String never includes secrets.
func (c Credentials) String() string {
	switch c.kind {
	case UsernamePassword:
		return "credentials(username=" + c.username + ")"
	case StaticToken:
		return "credentials(static token)"
	}
	return "credentials(none)"
}

func (c Credentials) loginRequest() *models.LoginRequest {
	return &models.LoginRequest{Username: c.username, Password: c.password}
}
