package client

import (
	"context"

	"github.com/aipo-io/cli/internal/models"
)

func (c *Client) ListTemplates(ctx context.Context, opts models.ListOptions) (*models.TemplateList, error) {
	resp, err := c.get(ctx, TemplatesPath, opts.Query())
	if err != nil {
		return nil, err
	}
	return decode[models.TemplateList](resp, "template list")
}

func (c *Client) CreateTemplate(ctx context.Context, template models.TemplateCreate) (*models.Template, error) {
	if err := validateOutgoing("template", template); err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, TemplatesPath, template)
	if err != nil {
		return nil, err
	}
	return decode[models.Template](resp, "template")
}

func (c *Client) GetTemplate(ctx context.Context, id string) (*models.Template, error) {
	resp, err := c.get(ctx, TemplatePath(id), nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Template](resp, "template")
}

func (c *Client) UpdateTemplate(ctx context.Context, id string, update models.TemplateUpdate) (*models.Template, error) {
	resp, err := c.put(ctx, TemplatePath(id), update)
	if err != nil {
		return nil, err
	}
	return decode[models.Template](resp, "template")
}

func (c *Client) DeleteTemplate(ctx context.Context, id string) error {
	return c.delete(ctx, TemplatePath(id))
}
