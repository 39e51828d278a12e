package permit

import (
	"time"

	"github.com/google/uuid"
	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// VehicleItem is one vehicle row held in the draft. Key is a client-side
// uuid used only to address the row in the wizard; it never reaches the
// backend, where entry ids are assigned server-side.
type VehicleItem struct {
	Key   string
	Entry domain.VehicleEntry
}

// PersonnelItem is one personnel row held in the draft.
type PersonnelItem struct {
	Key   string
	Entry domain.PersonnelEntry
}

// Draft is the in-progress permit, held only in memory while the wizard is
// open. The wizard owns it exclusively: each step mutates it in place, and
// it is discarded on cancel. Once submitted, authoritative state is
// whatever the backend returns on the next fetch.
type Draft struct {
	ID               string // set when editing an existing permit
	DocumentNumber   string
	TenantID         string
	CustomerID       string
	ItemType         domain.ItemType
	RegistrationDate string
	Vehicles         []VehicleItem
	Personnel        []PersonnelItem
}

// NewDraft creates an empty draft dated today.
func NewDraft() *Draft {
	return &Draft{
		ItemType:         domain.ItemTenant,
		RegistrationDate: time.Now().Format("2006-01-02"),
	}
}

// DraftFrom hydrates a draft from a previously fetched permit for editing.
func DraftFrom(p *domain.EntryPermit) *Draft {
	d := &Draft{
		ID:               p.ID,
		DocumentNumber:   p.DocumentNumber,
		TenantID:         p.TenantID,
		CustomerID:       p.CustomerID,
		ItemType:         p.ItemType,
		RegistrationDate: p.RegistrationDate,
	}
	for _, v := range p.Vehicles {
		d.Vehicles = append(d.Vehicles, VehicleItem{Key: uuid.NewString(), Entry: v})
	}
	for _, per := range p.Personnel {
		d.Personnel = append(d.Personnel, PersonnelItem{Key: uuid.NewString(), Entry: per})
	}
	return d
}

// IsEdit reports whether the draft targets an existing permit.
func (d *Draft) IsEdit() bool { return d.ID != "" }

// AddVehicle appends a vehicle row and returns its client-side key.
func (d *Draft) AddVehicle(entry domain.VehicleEntry) string {
	key := uuid.NewString()
	d.Vehicles = append(d.Vehicles, VehicleItem{Key: key, Entry: entry})
	return key
}

// AddPersonnel appends a personnel row and returns its client-side key.
func (d *Draft) AddPersonnel(entry domain.PersonnelEntry) string {
	key := uuid.NewString()
	d.Personnel = append(d.Personnel, PersonnelItem{Key: key, Entry: entry})
	return key
}

// RemoveVehicle deletes the row with the given key, preserving order.
func (d *Draft) RemoveVehicle(key string) {
	for i, v := range d.Vehicles {
		if v.Key == key {
			d.Vehicles = append(d.Vehicles[:i], d.Vehicles[i+1:]...)
			return
		}
	}
}

// RemovePersonnel deletes the row with the given key, preserving order.
func (d *Draft) RemovePersonnel(key string) {
	for i, p := range d.Personnel {
		if p.Key == key {
			d.Personnel = append(d.Personnel[:i], d.Personnel[i+1:]...)
			return
		}
	}
}

// Payload assembles the composite submission record. For new drafts the
// permit id is absent; for edits it is included. Nested entries keep their
// backend-assigned ids (empty for rows added in this wizard run), in the
// order the user entered them.
func (d *Draft) Payload() *domain.EntryPermit {
	p := &domain.EntryPermit{
		ID:               d.ID,
		DocumentNumber:   d.DocumentNumber,
		TenantID:         d.TenantID,
		CustomerID:       d.CustomerID,
		ItemType:         d.ItemType,
		RegistrationDate: d.RegistrationDate,
		Vehicles:         make([]domain.VehicleEntry, 0, len(d.Vehicles)),
		Personnel:        make([]domain.PersonnelEntry, 0, len(d.Personnel)),
	}
	for _, v := range d.Vehicles {
		p.Vehicles = append(p.Vehicles, v.Entry)
	}
	for _, per := range d.Personnel {
		p.Personnel = append(p.Personnel, per.Entry)
	}
	return p
}
