package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zaqiyusuf/gatepass/internal/api"
	"github.com/zaqiyusuf/gatepass/internal/domain"
	"github.com/zaqiyusuf/gatepass/internal/pricing"
	"github.com/zaqiyusuf/gatepass/internal/session"
)

// fakeBackend serves canned envelope responses for the collections the
// views fetch.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()

	write := func(w http.ResponseWriter, data any) {
		payload, err := json.Marshal(map[string]any{"data": data})
		require.NoError(t, err)
		w.Header().Set("Content-Type", "application/json")
		w.Write(payload)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login":
			write(w, map[string]any{
				"user":  domain.User{ID: "u-1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin},
				"token": "tok-test",
			})
		case r.URL.Path == "/auth/logout":
			write(w, map[string]string{})
		case r.URL.Path == "/tenants":
			write(w, []domain.Tenant{
				{ID: "ten-1", Name: "PT Maju", Email: "info@maju.co.id", Phone: "021-555"},
				{ID: "ten-2", Name: "CV Abadi", Email: "cs@abadi.co.id", Phone: "021-556"},
			})
		case r.URL.Path == "/customers":
			write(w, []domain.Customer{
				{ID: "cus-1", TenantID: "ten-1", Name: "Budi Santoso", ItemType: domain.ItemTenant, Email: "budi@maju.co.id"},
			})
		case r.URL.Path == "/locations":
			write(w, []domain.Location{
				{ID: "loc-1", Name: "Dock 3", Detail: "North pier"},
			})
		case r.URL.Path == "/packages":
			write(w, []domain.Package{
				{ID: "pkg-1", Name: "Weekly", Periode: "weekly", VehicleFee: 150000, PersonFee: 7500, Active: true},
			})
		case r.URL.Path == "/permits" && r.Method == http.MethodGet:
			write(w, []domain.EntryPermit{
				{
					ID:               "perm-1",
					DocumentNumber:   "DOC-1",
					TenantID:         "ten-1",
					CustomerID:       "cus-1",
					ItemType:         domain.ItemTenant,
					RegistrationDate: "2026-08-01",
					Status:           domain.PermitPending,
					Requester:        "Budi Santoso",
					Total:            228500,
					Personnel: []domain.PersonnelEntry{
						{Name: "Andi"}, {Name: "Cahya"}, {Name: "Dewi"},
					},
				},
			})
		default:
			write(w, []struct{}{})
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

// testApp wires an App against the fake backend with an in-memory session
// store. When loggedIn is set, an admin session is pre-stored.
func testApp(t *testing.T, loggedIn bool) *App {
	t.Helper()

	srv := fakeBackend(t)

	sessions, err := session.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	if loggedIn {
		require.NoError(t, sessions.Save(session.Session{
			User:  domain.User{ID: "u-1", Name: "Admin", Email: "admin@example.com", Role: domain.RoleAdmin},
			Token: "tok-test",
		}))
	}

	cfg := api.DefaultConfig()
	cfg.BaseURL = srv.URL
	client := api.NewClient(cfg, sessions, nil, nil)

	return &App{
		API:      client,
		Sessions: sessions,
		Pricing:  pricing.NewService(client),
	}
}
