package api

import (
	"context"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

func (c *Client) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	var out []domain.Vehicle
	if err := c.do(ctx, "GET", "/vehicles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	v.ID = ""
	var out domain.Vehicle
	if err := c.do(ctx, "POST", "/vehicles", v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateVehicle(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	var out domain.Vehicle
	if err := c.do(ctx, "PUT", "/vehicles/"+v.ID, v, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteVehicle(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/vehicles/"+id, nil, nil)
}

func (c *Client) ListDrivers(ctx context.Context) ([]domain.Driver, error) {
	var out []domain.Driver
	if err := c.do(ctx, "GET", "/drivers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateDriver(ctx context.Context, d *domain.Driver) (*domain.Driver, error) {
	d.ID = ""
	var out domain.Driver
	if err := c.do(ctx, "POST", "/drivers", d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateDriver(ctx context.Context, d *domain.Driver) (*domain.Driver, error) {
	var out domain.Driver
	if err := c.do(ctx, "PUT", "/drivers/"+d.ID, d, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteDriver(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/drivers/"+id, nil, nil)
}
