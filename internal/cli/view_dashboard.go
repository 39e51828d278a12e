package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaqiyusuf/gatepass/internal/cli/formatter"
)

// dashboardEntry is one selectable section on the dashboard.
type dashboardEntry struct {
	label     string
	adminOnly bool
	open      func(state *SharedState) View
}

// dashboardEntries is the fixed menu. Role gating happens at render and
// selection time, not by mutating this slice.
var dashboardEntries = []dashboardEntry{
	{label: "Entry Permits", open: func(s *SharedState) View { return newPermitListView(s) }},
	{label: "Tenants", open: func(s *SharedState) View { return newEntityListView(s, tenantSection(s)) }},
	{label: "Customers", open: func(s *SharedState) View { return newEntityListView(s, customerSection(s)) }},
	{label: "Locations", open: func(s *SharedState) View { return newEntityListView(s, locationSection(s)) }},
	{label: "Packages", open: func(s *SharedState) View { return newEntityListView(s, packageSection(s)) }},
	{label: "Vehicles", open: func(s *SharedState) View { return newEntityListView(s, vehicleSection(s)) }},
	{label: "Drivers", open: func(s *SharedState) View { return newEntityListView(s, driverSection(s)) }},
	{label: "Payments", open: func(s *SharedState) View { return newEntityListView(s, paymentSection(s)) }},
	{label: "Users", adminOnly: true, open: func(s *SharedState) View { return newEntityListView(s, userSection(s)) }},
	{label: "Gateway Settings", adminOnly: true, open: func(s *SharedState) View { return newEntityListView(s, settingSection(s)) }},
}

// dashboardView is the role-gated home menu.
type dashboardView struct {
	state  *SharedState
	cursor int
}

func newDashboardView(state *SharedState) *dashboardView {
	return &dashboardView{state: state}
}

func (v *dashboardView) ID() ViewID    { return ViewDashboard }
func (v *dashboardView) Title() string { return "" }

func (v *dashboardView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *dashboardView) Init() tea.Cmd { return nil }

// entries returns the sections visible to the logged-in role.
func (v *dashboardView) entries() []dashboardEntry {
	var out []dashboardEntry
	for _, e := range dashboardEntries {
		if e.adminOnly && !v.state.IsAdmin() {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (v *dashboardView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	visible := v.entries()

	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter":
		if v.cursor < len(visible) {
			return v, pushView(visible[v.cursor].open(v.state))
		}
	case "L":
		return v, v.logout()
	}
	return v, nil
}

func (v *dashboardView) logout() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		// Best effort server-side; local session is cleared regardless.
		_ = app.API.Logout(context.Background())
		_ = app.Sessions.Clear()
		return loginRequiredMsg{}
	}
}

func (v *dashboardView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	for i, e := range v.entries() {
		cursor := "  "
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		label := e.label
		if i == v.cursor {
			label = formatter.Bold(label)
		}
		b.WriteString(cursor + label)
		if e.adminOnly {
			b.WriteString(" " + formatter.Dim("(admin)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}
