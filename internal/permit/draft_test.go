package permit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft()
	assert.False(t, d.IsEdit())
	assert.Equal(t, domain.ItemTenant, d.ItemType)
	assert.NotEmpty(t, d.RegistrationDate)
}

func TestAddAssignsDistinctKeys(t *testing.T) {
	d := NewDraft()
	k1 := d.AddVehicle(domain.VehicleEntry{PlateNumber: "B 1 A"})
	k2 := d.AddVehicle(domain.VehicleEntry{PlateNumber: "B 2 B"})
	assert.NotEqual(t, k1, k2)
	assert.NotEmpty(t, k1)
}

func TestRemovePreservesOrder(t *testing.T) {
	d := NewDraft()
	d.AddVehicle(domain.VehicleEntry{PlateNumber: "first"})
	mid := d.AddVehicle(domain.VehicleEntry{PlateNumber: "second"})
	d.AddVehicle(domain.VehicleEntry{PlateNumber: "third"})

	d.RemoveVehicle(mid)

	require.Len(t, d.Vehicles, 2)
	assert.Equal(t, "first", d.Vehicles[0].Entry.PlateNumber)
	assert.Equal(t, "third", d.Vehicles[1].Entry.PlateNumber)

	// Removing an unknown key is a no-op.
	d.RemoveVehicle("missing")
	assert.Len(t, d.Vehicles, 2)
}

func TestPayloadPreservesEntryOrder(t *testing.T) {
	d := NewDraft()
	d.DocumentNumber = "DOC-7"
	d.TenantID = "ten-1"
	d.CustomerID = "cus-1"
	for _, plate := range []string{"v1", "v2", "v3"} {
		d.AddVehicle(domain.VehicleEntry{PlateNumber: plate})
	}
	for _, name := range []string{"p1", "p2"} {
		d.AddPersonnel(domain.PersonnelEntry{Name: name})
	}

	p := d.Payload()
	require.Len(t, p.Vehicles, 3)
	require.Len(t, p.Personnel, 2)
	for i, plate := range []string{"v1", "v2", "v3"} {
		assert.Equal(t, plate, p.Vehicles[i].PlateNumber)
	}
	for i, name := range []string{"p1", "p2"} {
		assert.Equal(t, name, p.Personnel[i].Name)
	}
}

func TestDraftFromRoundTrip(t *testing.T) {
	src := &domain.EntryPermit{
		ID:               "perm-1",
		DocumentNumber:   "DOC-1",
		TenantID:         "ten-1",
		CustomerID:       "cus-1",
		ItemType:         domain.ItemNonTenant,
		RegistrationDate: "2026-08-01",
		Vehicles: []domain.VehicleEntry{
			{ID: "veh-1", PlateNumber: "B 11 AA"},
		},
		Personnel: []domain.PersonnelEntry{
			{ID: "per-1", Name: "Sari"},
			{ID: "per-2", Name: "Budi"},
		},
	}

	d := DraftFrom(src)
	assert.True(t, d.IsEdit())

	p := d.Payload()
	assert.Equal(t, "perm-1", p.ID)
	assert.Equal(t, domain.ItemNonTenant, p.ItemType)
	require.Len(t, p.Vehicles, 1)
	// Backend-assigned entry ids survive the round trip.
	assert.Equal(t, "veh-1", p.Vehicles[0].ID)
	require.Len(t, p.Personnel, 2)
	assert.Equal(t, "Sari", p.Personnel[0].Name)
	assert.Equal(t, "Budi", p.Personnel[1].Name)
}
