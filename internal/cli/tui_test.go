package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaqiyusuf/gatepass/internal/api"
	"github.com/zaqiyusuf/gatepass/internal/pricing"
	"github.com/zaqiyusuf/gatepass/internal/session"
	"github.com/zaqiyusuf/gatepass/internal/teatest"
)

func newDriver(t *testing.T, app *App) *teatest.Driver {
	t.Helper()
	d := teatest.New(t, newAppModel(app), teatest.WithSize(120, 40))
	d.DrainInit()
	return d
}

func activeViewID(t *testing.T, d *teatest.Driver) ViewID {
	t.Helper()
	m, ok := d.Model.(appModel)
	require.True(t, ok)
	return m.activeView().ID()
}

func TestLoginFlowReachesDashboard(t *testing.T) {
	app := testApp(t, false)
	d := newDriver(t, app)

	assert.Contains(t, d.View(), "Sign in")

	d.Type("admin@example.com")
	d.PressEnter()
	d.Type("secret")
	d.PressEnter()

	assert.Equal(t, ViewDashboard, activeViewID(t, d))
	assert.Contains(t, d.View(), "Entry Permits")

	// The session was persisted for the next start.
	sess, err := app.Sessions.Load()
	require.NoError(t, err)
	assert.Equal(t, "tok-test", sess.Token)
}

func TestDashboardShowsAdminSections(t *testing.T) {
	d := newDriver(t, testApp(t, true))

	out := d.View()
	for _, label := range []string{"Entry Permits", "Tenants", "Customers", "Locations", "Packages", "Vehicles", "Drivers", "Payments", "Users", "Gateway Settings"} {
		assert.Contains(t, out, label)
	}
}

func TestOperatorDoesNotSeeAdminSections(t *testing.T) {
	app := testApp(t, true)
	sess, err := app.Sessions.Load()
	require.NoError(t, err)
	sess.User.Role = "operator"
	require.NoError(t, app.Sessions.Save(session.Session{User: sess.User, Token: sess.Token}))

	d := newDriver(t, app)
	out := d.View()
	assert.NotContains(t, out, "Users")
	assert.NotContains(t, out, "Gateway Settings")
	assert.Contains(t, out, "Entry Permits")
}

func TestOpenTenantListLoadsRows(t *testing.T) {
	d := newDriver(t, testApp(t, true))

	d.PressDown() // Tenants is the second entry
	d.PressEnter()

	assert.Equal(t, ViewEntityList, activeViewID(t, d))
	out := d.View()
	assert.Contains(t, out, "PT Maju")
	assert.Contains(t, out, "CV Abadi")
}

func TestEntityListFilter(t *testing.T) {
	d := newDriver(t, testApp(t, true))
	d.PressDown()
	d.PressEnter()

	d.Press('/')
	d.Type("abadi")
	d.PressEnter()

	out := d.View()
	assert.Contains(t, out, "CV Abadi")
	assert.NotContains(t, out, "PT Maju")
}

func TestEntityCreateFormOpensAndCancels(t *testing.T) {
	d := newDriver(t, testApp(t, true))
	d.PressDown()
	d.PressEnter()

	d.Press('a')
	assert.Equal(t, ViewForm, activeViewID(t, d))
	assert.Contains(t, d.View(), "New Tenant")

	d.PressEsc()
	assert.Equal(t, ViewEntityList, activeViewID(t, d))
}

func TestPermitListShowsRecords(t *testing.T) {
	d := newDriver(t, testApp(t, true))

	d.PressEnter() // Entry Permits is the first entry

	assert.Equal(t, ViewPermitList, activeViewID(t, d))
	out := d.View()
	assert.Contains(t, out, "DOC-1")
	assert.Contains(t, out, "228.500")
	assert.Contains(t, out, "Budi Santoso")
}

func TestWizardOpensAtHeaderStep(t *testing.T) {
	d := newDriver(t, testApp(t, true))
	d.PressEnter()

	d.Press('n')
	assert.Equal(t, ViewWizard, activeViewID(t, d))

	out := d.View()
	assert.Contains(t, out, "Document Info")
	assert.Contains(t, out, "Vehicles")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "Document Number")
}

func TestWizardEscDiscardsDraft(t *testing.T) {
	d := newDriver(t, testApp(t, true))
	d.PressEnter()
	d.Press('n')

	d.PressEsc()
	assert.Equal(t, ViewPermitList, activeViewID(t, d))
	assert.Contains(t, d.View(), "Draft discarded")
}

func TestExpiredSessionFallsBackToLogin(t *testing.T) {
	app := testApp(t, true)

	// Swap in a backend that rejects every call, keeping the stored
	// session so the TUI starts at the dashboard.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)
	cfg := api.DefaultConfig()
	cfg.BaseURL = srv.URL
	app.API = api.NewClient(cfg, app.Sessions, nil, nil)
	app.Pricing = pricing.NewService(app.API)

	d := newDriver(t, app)
	assert.Equal(t, ViewDashboard, activeViewID(t, d))

	// Opening any list triggers the 401, which collapses the stack to a
	// fresh login view and clears the stored session.
	d.PressEnter()

	assert.Equal(t, ViewLogin, activeViewID(t, d))
	_, err := app.Sessions.Load()
	assert.ErrorIs(t, err, session.ErrNoSession)
}
