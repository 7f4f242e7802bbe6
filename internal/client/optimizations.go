package client

import (
	"context"

	"github.com/aipo-io/cli/internal/models"
)

func (c *Client) ListOptimizations(ctx context.Context, opts models.ListOptions) ([]models.Optimization, error) {
	resp, err := c.get(ctx, OptimizationsPath, opts.Query())
	if err != nil {
		return nil, err
	}
	list, err := decode[[]models.Optimization](resp, "optimization list")
	if err != nil {
		return nil, err
	}
	return *list, nil
}

// CreateOptimization runs an optimization of a prompt and returns its result.
func (c *Client) CreateOptimization(ctx context.Context, request models.OptimizationRequest) (*models.Optimization, error) {
	if err := validateOutgoing("optimization request", request); err != nil {
		return nil, err
	}

	resp, err := c.post(ctx, OptimizationsPath, request)
	if err != nil {
		return nil, err
	}
	return decode[models.Optimization](resp, "optimization")
}

func (c *Client) GetOptimization(ctx context.Context, id string) (*models.Optimization, error) {
	resp, err := c.get(ctx, OptimizationPath(id), nil)
	if err != nil {
		return nil, err
	}
	return decode[models.Optimization](resp, "optimization")
}

func (c *Client) UpdateOptimization(ctx context.Context, id string, update models.OptimizationUpdate) (*models.Optimization, error) {
	resp, err := c.put(ctx, OptimizationPath(id), update)
	if err != nil {
		return nil, err
	}
	return decode[models.Optimization](resp, "optimization")
}

func (c *Client) DeleteOptimization(ctx context.Context, id string) error {
	return c.delete(ctx, OptimizationPath(id))
}
