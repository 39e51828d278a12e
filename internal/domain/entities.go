package domain

import "time"

type Tenant struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Customer struct {
	ID       string   `json:"id,omitempty"`
	TenantID string   `json:"tenant_id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	ItemType ItemType `json:"item_type"`
}

type Location struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Detail string `json:"detail"`
}

// Package is a pricing period sold for permit entries, e.g. a weekly or
// monthly access package for a vehicle or a person.
type Package struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	Periode    string `json:"periode"`
	VehicleFee int    `json:"vehicle_fee"`
	PersonFee  int    `json:"person_fee"`
	Active     bool   `json:"active"`
}

type Vehicle struct {
	ID             string `json:"id,omitempty"`
	PlateNumber    string `json:"plate_number"`
	HullNumber     string `json:"hull_number"`
	AttachmentFile string `json:"attachment_file"`
	DriverName     string `json:"driver_name"`
}

type Driver struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	LicenseNumber string `json:"license_number"`
	LicenseFile   string `json:"license_file"`
	Phone         string `json:"phone"`
}

type Payment struct {
	ID        string        `json:"id,omitempty"`
	PermitID  string        `json:"permit_id"`
	Amount    int           `json:"amount"`
	Method    string        `json:"method"`
	Status    PaymentStatus `json:"status"`
	PaidAt    *time.Time    `json:"paid_at,omitempty"`
	Reference string        `json:"reference"`
}

type User struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

// GatewaySetting holds payment-gateway credentials managed by admins.
type GatewaySetting struct {
	ID        string `json:"id,omitempty"`
	Provider  string `json:"provider"`
	ClientKey string `json:"client_key"`
	ServerKey string `json:"server_key"`
	Sandbox   bool   `json:"sandbox"`
}
