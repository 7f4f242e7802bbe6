package client

import (
	"context"

	"github.com/aipo-io/cli/internal/models"
)

func (c *Client) Login(ctx context.Context, email string, password string) (*models.TokenResponse, error) {
	body := models.LoginRequest{Email: email, Password: password}
	if err := validateOutgoing("login request", body); err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, AuthLoginPath, body)
	if err != nil {
		return nil, err
	}
	return decode[models.TokenResponse](resp, "token response")
}

func (c *Client) Register(ctx context.Context, email string, password string, name string) (*models.TokenResponse, error) {
	body := models.RegisterRequest{Email: email, Password: password, Name: name}
	if err := validateOutgoing("registration request", body); err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, AuthRegisterPath, body)
	if err != nil {
		return nil, err
	}
	return decode[models.TokenResponse](resp, "token response")
}

// Me fetches the identity behind the current token.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	resp, err := c.get(ctx, AuthMePath, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.User](resp, "user")
}

// Refresh exchanges the current token for a new one.
func (c *Client) Refresh(ctx context.Context) (*models.TokenResponse, error) {
	resp, err := c.post(ctx, AuthRefreshPath, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.TokenResponse](resp, "token response")
}
