package api

import (
	"context"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.do(ctx, "GET", "/users", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	u.ID = ""
	var out domain.User
	if err := c.do(ctx, "POST", "/users", u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, "PUT", "/users/"+u.ID, u, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/users/"+id, nil, nil)
}

func (c *Client) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	var out []domain.Payment
	if err := c.do(ctx, "GET", "/payments", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	p.ID = ""
	var out domain.Payment
	if err := c.do(ctx, "POST", "/payments", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePayment(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	var out domain.Payment
	if err := c.do(ctx, "PUT", "/payments/"+p.ID, p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePayment(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/payments/"+id, nil, nil)
}

func (c *Client) ListGatewaySettings(ctx context.Context) ([]domain.GatewaySetting, error) {
	var out []domain.GatewaySetting
	if err := c.do(ctx, "GET", "/settings", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGatewaySetting(ctx context.Context, s *domain.GatewaySetting) (*domain.GatewaySetting, error) {
	s.ID = ""
	var out domain.GatewaySetting
	if err := c.do(ctx, "POST", "/settings", s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateGatewaySetting(ctx context.Context, s *domain.GatewaySetting) (*domain.GatewaySetting, error) {
	var out domain.GatewaySetting
	if err := c.do(ctx, "PUT", "/settings/"+s.ID, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteGatewaySetting(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/settings/"+id, nil, nil)
}
