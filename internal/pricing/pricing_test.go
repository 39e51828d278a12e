package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 200000, ComputeTotal(0))
	assert.Equal(t, 209500, ComputeTotal(1))
	assert.Equal(t, 228500, ComputeTotal(3))
	assert.Equal(t, 295000, ComputeTotal(10))
}

func TestRatesTotalClampsNegativeCount(t *testing.T) {
	r := DefaultRates()
	assert.Equal(t, r.Base, r.Total(-5))
}

type stubCatalog struct {
	packages []domain.Package
	err      error
}

func (s *stubCatalog) ListPackages(ctx context.Context) ([]domain.Package, error) {
	return s.packages, s.err
}

func TestLookupRatesUsesPackageFees(t *testing.T) {
	svc := NewService(&stubCatalog{packages: []domain.Package{
		{ID: "pkg-1", Name: "Weekly", VehicleFee: 150000, PersonFee: 7500},
	}})

	r := svc.LookupRates(context.Background(), "pkg-1")
	assert.Equal(t, 150000, r.Base)
	assert.Equal(t, 7500, r.PerPersonnel)
}

func TestLookupRatesFallsBackToDefaults(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		id      string
	}{
		{"unknown package", &stubCatalog{}, "missing"},
		{"empty id", &stubCatalog{}, ""},
		{"catalog error", &stubCatalog{err: errors.New("down")}, "pkg-1"},
		{"zero fees", &stubCatalog{packages: []domain.Package{{ID: "pkg-1"}}}, "pkg-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewService(tt.catalog).LookupRates(context.Background(), tt.id)
			assert.Equal(t, DefaultRates(), r)
		})
	}
}
