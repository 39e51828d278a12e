package domain

import "time"

// EntryPermit is the composite permit record as returned by the backend:
// a header plus nested vehicle and personnel entries. Order of the nested
// slices is meaningful and is preserved through documents and forms.
type EntryPermit struct {
	ID                 string           `json:"id,omitempty"`
	DocumentNumber     string           `json:"document_number"`
	RegistrationNumber string           `json:"registration_number,omitempty"`
	TenantID           string           `json:"tenant_id"`
	CustomerID         string           `json:"customer_id"`
	ItemType           ItemType         `json:"item_type"`
	RegistrationDate   string           `json:"registration_date"`
	Status             PermitStatus     `json:"status,omitempty"`
	Requester          string           `json:"requester,omitempty"`
	Total              int              `json:"total,omitempty"`
	Vehicles           []VehicleEntry   `json:"vehicles"`
	Personnel          []PersonnelEntry `json:"personnel"`
	CreatedAt          *time.Time       `json:"created_at,omitempty"`
	UpdatedAt          *time.Time       `json:"updated_at,omitempty"`
}

// VehicleEntry is one vehicle admitted under a permit, with its driver
// sub-record inlined the way the backend stores it.
type VehicleEntry struct {
	ID              string `json:"id,omitempty"`
	PackageID       string `json:"package_id"`
	Cargo           string `json:"cargo"`
	Origin          string `json:"origin"`
	WorkingLocation string `json:"working_location"`
	StartDate       string `json:"start_date"`
	EndDate         string `json:"end_date,omitempty"`
	PlateNumber     string `json:"plate_number"`
	HullNumber      string `json:"hull_number"`
	AttachmentFile  string `json:"attachment_file"`
	DriverName      string `json:"driver_name"`
	DriverLicense   string `json:"driver_license_file"`
	Cost            int    `json:"cost,omitempty"`
}

// PersonnelEntry is one person admitted under a permit.
type PersonnelEntry struct {
	ID        string `json:"id,omitempty"`
	Name      string `json:"name"`
	IDNumber  string `json:"id_or_license_number"`
	Location  string `json:"location"`
	PackageID string `json:"package_id"`
	Notes     string `json:"notes,omitempty"`
}

// DisplayID returns the best short identifier for display: the registration
// number when assigned, otherwise the document number, otherwise a truncated id.
func (p *EntryPermit) DisplayID() string {
	if p.RegistrationNumber != "" {
		return p.RegistrationNumber
	}
	if p.DocumentNumber != "" {
		return p.DocumentNumber
	}
	if len(p.ID) >= 8 {
		return p.ID[:8]
	}
	return p.ID
}
