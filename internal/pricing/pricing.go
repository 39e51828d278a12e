// Package pricing computes the display-only permit total shown in the
// wizard summary. Rates resolve from the package catalog so the estimate
// and the catalog views cannot drift; the historical fixed rates remain
// the fallback when no package matches.
package pricing

import (
	"context"

	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// Fallback business constants, in the backend's currency unit.
const (
	BasePermitFee   = 200000
	PerPersonnelFee = 9500
)

// Rates holds the two components of a permit total.
type Rates struct {
	Base         int
	PerPersonnel int
}

// Total returns the permit total for n personnel entries.
func (r Rates) Total(n int) int {
	if n < 0 {
		n = 0
	}
	return r.Base + n*r.PerPersonnel
}

// DefaultRates returns the fixed fallback rates.
func DefaultRates() Rates {
	return Rates{Base: BasePermitFee, PerPersonnel: PerPersonnelFee}
}

// ComputeTotal returns the permit total for n personnel at the fallback rates.
func ComputeTotal(n int) int {
	return DefaultRates().Total(n)
}

// Catalog is the slice of the API client the pricing service reads.
type Catalog interface {
	ListPackages(ctx context.Context) ([]domain.Package, error)
}

// Service resolves rates from the package catalog.
type Service struct {
	catalog Catalog
}

// NewService creates a pricing Service over the given catalog.
func NewService(catalog Catalog) *Service {
	return &Service{catalog: catalog}
}

// LookupRates returns the rates for the given package id. An empty id, a
// catalog error, an unknown package, or a package without fees all fall
// back to DefaultRates; pricing is an estimate and must never block the
// wizard.
func (s *Service) LookupRates(ctx context.Context, packageID string) Rates {
	if packageID == "" || s.catalog == nil {
		return DefaultRates()
	}
	pkgs, err := s.catalog.ListPackages(ctx)
	if err != nil {
		return DefaultRates()
	}
	for _, p := range pkgs {
		if p.ID == packageID && p.VehicleFee > 0 && p.PersonFee > 0 {
			return Rates{Base: p.VehicleFee, PerPersonnel: p.PersonFee}
		}
	}
	return DefaultRates()
}
