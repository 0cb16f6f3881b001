package apiclient

import (
	"net/http"
)

// TokenProvider supplies the current access token, or "" when anonymous.
type TokenProvider interface {
	Token() string
}

// authTransport attaches the current token as a Bearer credential and
// watches responses for rejected tokens.
type authTransport struct {
	base          http.RoundTripper
	tokens        TokenProvider
	onAuthExpired func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	authed := false
	if t.tokens != nil && req.Header.Get("Authorization") == "" {
		if token := t.tokens.Token(); token != "" {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
			authed = true
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// only a rejected token ends the session; a 401 on an anonymous
	// request (e.g. a failed login) does not
	if resp.StatusCode == http.StatusUnauthorized && authed && t.onAuthExpired != nil {
		t.onAuthExpired()
	}
	return resp, nil
}
