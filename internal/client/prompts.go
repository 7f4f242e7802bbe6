package client

import (
	"context"

	"github.com/aipo-io/cli/internal/models"
)

func (c *Client) ListPrompts(ctx context.Context, opts models.ListOptions) (*models.PromptList, error) {
	resp, err := c.get(ctx, PromptsPath, opts.Query())
	if err != nil {
		return nil, err
	}
	return decode[models.PromptList](resp, "prompt list")
}

func (c *Client) CreatePrompt(ctx context.Context, prompt models.PromptCreate) (*models.Prompt, error) {
	if err := validateOutgoing("prompt", prompt); err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, PromptsPath, prompt)
	if err != nil {
		return nil, err
	}
	return decode[models.Prompt](resp, "prompt")
}

func (c *Client) GetPrompt(ctx context.Context, id string) (*models.Prompt, error) {
	resp, err := c.get(ctx, PromptPath(id), nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Prompt](resp, "prompt")
}

func (c *Client) UpdatePrompt(ctx context.Context, id string, update models.PromptUpdate) (*models.Prompt, error) {
	if err := validateOutgoing("prompt update", update); err != nil {
		return nil, err
	}

	resp, err := c.put(ctx, PromptPath(id), update)
	if err != nil {
		return nil, err
	}
	return decode[models.Prompt](resp, "prompt")
}

func (c *Client) DeletePrompt(ctx context.Context, id string) error {
	return c.delete(ctx, PromptPath(id))
}
