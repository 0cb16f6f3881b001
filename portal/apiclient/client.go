// Package apiclient is the HTTP client for the registro de servicio API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"

	"github.com/Oggm2/registroServicio/core/user"
)

const defaultTimeout = 30 * time.Second

type (
	LoginRequest struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	LoginResponse struct {
		Token string    `json:"token"`
		User  user.User `json:"user"`
	}
	ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	ForgotPasswordRequest struct {
		Email string `json:"email"`
	}
	ResetPasswordRequest struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
)

// Client talks to the API. Wire it to a session with UseSession so that
// requests carry the session token.
type Client struct {
	base      *url.URL
	http      *http.Client
	transport *authTransport
}

func NewClient(baseURL string) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "parsing base URL")
	}
	transport := &authTransport{base: http.DefaultTransport}
	return &Client{
		base:      base,
		transport: transport,
		http: &http.Client{
			Transport: transport,
			Timeout:   defaultTimeout,
		},
	}, nil
}

// UseSession binds the client to a token source. onAuthExpired is called
// whenever the server rejects the bound token.
func (c *Client) UseSession(tokens TokenProvider, onAuthExpired func()) {
	c.transport.tokens = tokens
	c.transport.onAuthExpired = onAuthExpired
}

// Authenticate exchanges credentials for a token and the user's profile.
func (c *Client) Authenticate(ctx context.Context, username, password string) (string, user.User, error) {
	var data LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", LoginRequest{Username: username, Password: password}, &data)
	return data.Token, data.User, err
}

// Register creates an account and returns its first session.
func (c *Client) Register(ctx context.Context, nu user.NewUser) (string, user.User, error) {
	var data LoginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/register", nu, &data)
	return data.Token, data.User, err
}

func (c *Client) ChangePassword(ctx context.Context, currentPwd, newPwd string) error {
	body := ChangePasswordRequest{CurrentPassword: currentPwd, NewPassword: newPwd}
	return c.do(ctx, http.MethodPut, "/api/auth/change-password", body, nil)
}

// ForgotPassword requests a recovery link for email. The server answers
// the same whether or not the address is known.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", ForgotPasswordRequest{Email: email}, nil)
}

// ResetPassword redeems a recovery token for a new password.
func (c *Client) ResetPassword(ctx context.Context, token, newPwd string) error {
	body := ResetPasswordRequest{Token: token, NewPassword: newPwd}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password", body, nil)
}

// QueryUsers lists all accounts. Requires an Admin session.
func (c *Client) QueryUsers(ctx context.Context) ([]user.User, error) {
	var users []user.User
	err := c.do(ctx, http.MethodGet, "/api/admin/usuarios", nil, &users)
	return users, err
}

// Perfil returns the signed-in student's profile.
func (c *Client) Perfil(ctx context.Context) (user.User, error) {
	var usr user.User
	err := c.do(ctx, http.MethodGet, "/api/estudiantes/perfil", nil, &usr)
	return usr, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encoding body")
		}
		reader = bytes.NewReader(raw)
	}

	ref, err := url.Parse(path)
	if err != nil {
		return errors.Wrap(err, "parsing path")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base.ResolveReference(ref).String(), reader)
	if err != nil {
		return errors.Wrap(err, "creating request")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrap(err, "sending request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrap(err, "decoding response")
	}
	return nil
}

// decodeError maps a non-2xx response to a typed error. Error bodies are
// either {"error": "..."} or a {"field": "message"} map.
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(resp.Body)

	var message string
	var fields map[string]string
	var body map[string]interface{}
	if err := json.Unmarshal(raw, &body); err == nil {
		if msg, ok := body["error"].(string); ok {
			message = msg
		} else {
			fields = make(map[string]string, len(body))
			for fld, val := range body {
				if msg, ok := val.(string); ok {
					fields[fld] = msg
				}
			}
		}
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return &AuthenticationError{Message: message}
	case http.StatusBadRequest, http.StatusConflict:
		return &RegistrationError{Message: message, Fields: fields}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
