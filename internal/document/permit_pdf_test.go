package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

func samplePermit() *domain.EntryPermit {
	return &domain.EntryPermit{
		ID:                 "perm-1",
		DocumentNumber:     "DOC-1",
		RegistrationNumber: "REG-0042",
		RegistrationDate:   "2026-08-01",
		Status:             domain.PermitApproved,
		Requester:          "PT Maju",
		Total:              228500,
		Vehicles: []domain.VehicleEntry{
			{PlateNumber: "B 11 AA", DriverName: "Budi", StartDate: "2026-08-01", EndDate: "2026-08-31"},
			{PlateNumber: "B 22 BB", DriverName: "Sari", StartDate: "2026-08-02"},
		},
		Personnel: []domain.PersonnelEntry{
			{Name: "Andi", IDNumber: "3201", Location: "Dock 3"},
			{Name: "Cahya", IDNumber: "3202", Location: "Dock 1", PackageID: "pkg-weekly"},
			{Name: "Dewi", IDNumber: "3203", Location: "Dock 3"},
		},
	}
}

func TestVehicleRowsOnePerEntryInOrder(t *testing.T) {
	p := samplePermit()
	rows := vehicleRows(p)

	require.Len(t, rows, len(p.Vehicles))
	for i, row := range rows {
		require.Len(t, row, len(vehicleHeader))
		assert.Equal(t, p.Vehicles[i].PlateNumber, row[1])
	}
	// Numbering restarts at 1 and follows input order.
	assert.Equal(t, "1", rows[0][0])
	assert.Equal(t, "2", rows[1][0])
}

func TestPersonnelRowsOnePerEntryInOrder(t *testing.T) {
	p := samplePermit()
	rows := personnelRows(p)

	require.Len(t, rows, len(p.Personnel))
	for i, row := range rows {
		require.Len(t, row, len(personnelHeader))
		assert.Equal(t, p.Personnel[i].Name, row[1])
	}
	assert.Equal(t, "pkg-weekly", rows[1][4])
	assert.Equal(t, "-", rows[0][4])
}

func TestStickerPlacementsAlwaysFour(t *testing.T) {
	placements := StickerPlacements()
	require.Len(t, placements, 4)

	// No overlap between any two stickers on the sheet.
	for i, a := range placements {
		for j, b := range placements {
			if i == j {
				continue
			}
			overlapX := a.X < b.X+b.W && b.X < a.X+a.W
			overlapY := a.Y < b.Y+b.H && b.Y < a.Y+a.H
			assert.False(t, overlapX && overlapY, "placements %d and %d overlap", i, j)
		}
	}
}

func TestBuildPermitPDF(t *testing.T) {
	data, err := BuildPermitPDF(samplePermit())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestBuildPermitPDFEmptyTables(t *testing.T) {
	p := &domain.EntryPermit{DocumentNumber: "DOC-2", RegistrationDate: "2026-08-01"}
	data, err := BuildPermitPDF(p)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBuildStickerSheetWithoutBackground(t *testing.T) {
	data, err := BuildStickerSheet(samplePermit(), "")
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestFilenames(t *testing.T) {
	p := samplePermit()
	assert.Equal(t, "permit-REG-0042.pdf", PermitFilename(p))
	assert.Equal(t, "sticker-REG-0042.pdf", StickerFilename(p))

	// Unregistered permits fall back to the document number.
	p.RegistrationNumber = ""
	assert.Equal(t, "permit-DOC-1.pdf", PermitFilename(p))
}
