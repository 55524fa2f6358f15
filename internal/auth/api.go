// Package auth brokers user sessions against the content API's auth
// endpoints. API is the stateless call layer used by the HTTP handlers;
// Manager adds the persisted single-session state machine on top of it.
package auth

import (
	"context"
	"fmt"

	"github.com/pawnsgambit/club-api/internal/cms"
)

// Session is a bearer token plus the user record it belongs to.
type Session struct {
	User  cms.Record `json:"user"`
	Token string     `json:"token"`
}

// API performs auth calls without holding any session state. Tokens are
// passed explicitly where an endpoint requires one.
type API struct {
	client *cms.Client
}

func NewAPI(client *cms.Client) *API {
	return &API{client: client}
}

// authResponse is the shape the auth endpoints answer with. Unlike content
// endpoints there is no data envelope.
type authResponse struct {
	JWT  string         `json:"jwt"`
	User map[string]any `json:"user"`
}

func (r authResponse) session() *Session {
	return &Session{User: cms.Record(r.User), Token: r.JWT}
}

// Register creates a new account and returns its session.
func (a *API) Register(ctx context.Context, username, email, password string) (*Session, error) {
	var resp authResponse
	err := a.client.PostJSON(ctx, "/auth/local/register", map[string]string{
		"username": username,
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return resp.session(), nil
}

// Login exchanges credentials for a session. The identifier may be an email
// address or a username.
func (a *API) Login(ctx context.Context, identifier, password string) (*Session, error) {
	var resp authResponse
	err := a.client.PostJSON(ctx, "/auth/local", map[string]string{
		"identifier": identifier,
		"password":   password,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return resp.session(), nil
}

// CurrentUser fetches the user record the token belongs to.
func (a *API) CurrentUser(ctx context.Context, token string) (cms.Record, error) {
	var user map[string]any
	if err := a.client.GetJSONAs(ctx, "/users/me", token, &user); err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return cms.Record(user), nil
}

// ChangePassword updates the password of the token's user.
func (a *API) ChangePassword(ctx context.Context, token, current, password, confirmation string) error {
	err := a.client.PostJSONAs(ctx, "/auth/change-password", token, map[string]string{
		"currentPassword":      current,
		"password":             password,
		"passwordConfirmation": confirmation,
	}, nil)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}
	return nil
}

// ForgotPassword asks the content API to mail a reset code.
func (a *API) ForgotPassword(ctx context.Context, email string) error {
	err := a.client.PostJSON(ctx, "/auth/forgot-password", map[string]string{
		"email": email,
	}, nil)
	if err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

// ResetPassword redeems a reset code for a fresh session.
func (a *API) ResetPassword(ctx context.Context, code, password, confirmation string) (*Session, error) {
	var resp authResponse
	err := a.client.PostJSON(ctx, "/auth/reset-password", map[string]string{
		"code":                 code,
		"password":             password,
		"passwordConfirmation": confirmation,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("reset password: %w", err)
	}
	return resp.session(), nil
}
