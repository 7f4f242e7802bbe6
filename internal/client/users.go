package client

import (
	"context"

	"github.com/aipo-io/cli/internal/models"
)

func (c *Client) Profile(ctx context.Context) (*models.UserProfile, error) {
	resp, err := c.get(ctx, UsersProfilePath, nil)
	if err != nil {
		return nil, err
	}
	return decode[models.UserProfile](resp, "user profile")
}

func (c *Client) UpdateProfile(ctx context.Context, update models.UserUpdate) (*models.UserProfile, error) {
	if err := validateOutgoing("profile update", update); err != nil {
		return nil, err
	}

	resp, err := c.put(ctx, UsersProfilePath, update)
	if err != nil {
		return nil, err
	}
	return decode[models.UserProfile](resp, "user profile")
}
