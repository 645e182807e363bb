// Package api exposes one typed client per backend resource, all sharing
// the apiclient request pipeline.
package api

import (
	"context"

	"github.com/maraki-learning/adminctl/internal/apiclient"
	"github.com/maraki-learning/adminctl/internal/model"
)

// AuthClient calls the authentication endpoints.
type AuthClient struct {
	client *apiclient.Client
}

// NewAuthClient creates a new AuthClient.
func NewAuthClient(client *apiclient.Client) *AuthClient {
	return &AuthClient{client: client}
}

// Login exchanges credentials for a token and profile.
func (c *AuthClient) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.client.Post(ctx, pathAuthLogin, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates a new platform account.
func (c *AuthClient) Register(ctx context.Context, req model.RegisterRequest) (*model.LoginResponse, error) {
	var out model.LoginResponse
	if err := c.client.Post(ctx, pathAuthRegister, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Profile fetches the profile belonging to the current token.
func (c *AuthClient) Profile(ctx context.Context) (*model.UserProfile, error) {
	var out model.UserProfile
	if err := c.client.Get(ctx, pathAuthProfile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges the current token for a fresh one.
func (c *AuthClient) Refresh(ctx context.Context) (string, error) {
	var out model.RefreshResponse
	if err := c.client.Post(ctx, pathAuthRefresh, nil, &out); err != nil {
		return "", err
	}
	return out.AccessToken, nil
}

// Logout notifies the backend that the session is ending. Callers treat
// failure as non-fatal.
func (c *AuthClient) Logout(ctx context.Context) error {
	return c.client.Post(ctx, pathAuthLogout, nil, nil)
}

// ForgotPassword requests a password-reset email.
func (c *AuthClient) ForgotPassword(ctx context.Context, email string) (*model.MessageResponse, error) {
	var out model.MessageResponse
	if err := c.client.Post(ctx, pathAuthForgotPassword, model.ForgotPasswordRequest{Email: email}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResetPassword consumes a reset token and sets a new password.
func (c *AuthClient) ResetPassword(ctx context.Context, token, password string) (*model.MessageResponse, error) {
	var out model.MessageResponse
	req := model.ResetPasswordRequest{Token: token, Password: password}
	if err := c.client.Post(ctx, pathAuthResetPassword, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPassword consumes an invite token and sets the first password.
func (c *AuthClient) SetPassword(ctx context.Context, token, password string) (*model.MessageResponse, error) {
	var out model.MessageResponse
	req := model.SetPasswordRequest{Token: token, Password: password}
	if err := c.client.Post(ctx, pathAuthSetPassword, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
