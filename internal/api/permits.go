package api

import (
	"context"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// PermitAPI is the slice of the client the wizard controller submits
// through. Having it as a small interface keeps the controller testable
// without a live backend.
type PermitAPI interface {
	CreatePermit(ctx context.Context, p *domain.EntryPermit) (*domain.EntryPermit, error)
	UpdatePermit(ctx context.Context, p *domain.EntryPermit) (*domain.EntryPermit, error)
}

func (c *Client) ListPermits(ctx context.Context) ([]domain.EntryPermit, error) {
	var out []domain.EntryPermit
	if err := c.do(ctx, "GET", "/permits", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetPermit(ctx context.Context, id string) (*domain.EntryPermit, error) {
	var out domain.EntryPermit
	if err := c.do(ctx, "GET", "/permits/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreatePermit sends the composite record in one atomic call; the backend
// either accepts the whole permit or rejects it.
func (c *Client) CreatePermit(ctx context.Context, p *domain.EntryPermit) (*domain.EntryPermit, error) {
	p.ID = ""
	var out domain.EntryPermit
	if err := c.do(ctx, "POST", "/permits", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePermit(ctx context.Context, p *domain.EntryPermit) (*domain.EntryPermit, error) {
	var out domain.EntryPermit
	if err := c.do(ctx, "PUT", "/permits/"+p.ID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePermit(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/permits/"+id, nil, nil)
}
