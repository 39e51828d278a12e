package api

import (
	"context"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// Per-entity API functions for the tenant/customer/location/package catalog.
// Each is a thin verb-to-endpoint mapping with no logic of its own. Create
// payloads never carry an id; update payloads always do.

func (c *Client) ListTenants(ctx context.Context) ([]domain.Tenant, error) {
	var out []domain.Tenant
	if err := c.do(ctx, "GET", "/tenants", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateTenant(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	t.ID = ""
	var out domain.Tenant
	if err := c.do(ctx, "POST", "/tenants", t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTenant(ctx context.Context, t *domain.Tenant) (*domain.Tenant, error) {
	var out domain.Tenant
	if err := c.do(ctx, "PUT", "/tenants/"+t.ID, t, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTenant(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/tenants/"+id, nil, nil)
}

func (c *Client) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	var out []domain.Customer
	if err := c.do(ctx, "GET", "/customers", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateCustomer(ctx context.Context, cu *domain.Customer) (*domain.Customer, error) {
	cu.ID = ""
	var out domain.Customer
	if err := c.do(ctx, "POST", "/customers", cu, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, cu *domain.Customer) (*domain.Customer, error) {
	var out domain.Customer
	if err := c.do(ctx, "PUT", "/customers/"+cu.ID, cu, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteCustomer(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/customers/"+id, nil, nil)
}

func (c *Client) ListLocations(ctx context.Context) ([]domain.Location, error) {
	var out []domain.Location
	if err := c.do(ctx, "GET", "/locations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateLocation(ctx context.Context, l *domain.Location) (*domain.Location, error) {
	l.ID = ""
	var out domain.Location
	if err := c.do(ctx, "POST", "/locations", l, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateLocation(ctx context.Context, l *domain.Location) (*domain.Location, error) {
	var out domain.Location
	if err := c.do(ctx, "PUT", "/locations/"+l.ID, l, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteLocation(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/locations/"+id, nil, nil)
}

func (c *Client) ListPackages(ctx context.Context) ([]domain.Package, error) {
	var out []domain.Package
	if err := c.do(ctx, "GET", "/packages", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePackage(ctx context.Context, p *domain.Package) (*domain.Package, error) {
	p.ID = ""
	var out domain.Package
	if err := c.do(ctx, "POST", "/packages", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePackage(ctx context.Context, p *domain.Package) (*domain.Package, error) {
	var out domain.Package
	if err := c.do(ctx, "PUT", "/packages/"+p.ID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePackage(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/packages/"+id, nil, nil)
}
