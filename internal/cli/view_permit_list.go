package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaqiyusuf/gatepass/internal/api"
	"github.com/zaqiyusuf/gatepass/internal/cli/formatter"
	"github.com/zaqiyusuf/gatepass/internal/document"
	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// permitRowsMsg carries the loaded permit collection.
type permitRowsMsg struct {
	permits []domain.EntryPermit
	err     error
}

// permitListView lists entry permits and is the launch point for the
// creation wizard and the document exports.
type permitListView struct {
	state   *SharedState
	permits []domain.EntryPermit
	cursor  int
	loading bool
	err     error

	filtering bool
	filter    string
}

func newPermitListView(state *SharedState) *permitListView {
	return &permitListView{state: state, loading: true}
}

func (v *permitListView) ID() ViewID    { return ViewPermitList }
func (v *permitListView) Title() string { return "Entry Permits" }

func (v *permitListView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pdf")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stickers")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
	}
}

func (v *permitListView) Init() tea.Cmd {
	return v.loadPermits()
}

func (v *permitListView) loadPermits() tea.Cmd {
	app := v.state.App
	return func() tea.Msg {
		permits, err := app.API.ListPermits(context.Background())
		return permitRowsMsg{permits: permits, err: err}
	}
}

func (v *permitListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case permitRowsMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.permits = msg.permits
			if v.cursor >= len(v.permits) {
				v.cursor = 0
			}
		}
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return loginRequiredMsg{} }
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadPermits()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *permitListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visiblePermits()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "n":
		return v, pushView(newPermitWizard(v.state, nil))
	case "enter":
		if v.cursor < len(visible) {
			p := visible[v.cursor]
			return v, pushView(newPermitWizard(v.state, &p))
		}
	case "p":
		if v.cursor < len(visible) {
			return v, exportPermitPDF(visible[v.cursor])
		}
	case "s":
		if v.cursor < len(visible) {
			return v, exportStickerSheet(visible[v.cursor], v.state.App.StickerBackground)
		}
	case "x":
		if v.cursor < len(visible) {
			return v, v.confirmDelete(visible[v.cursor])
		}
	case "/":
		v.filtering = true
		v.filter = ""
		v.cursor = 0
	case "r":
		v.loading = true
		return v, v.loadPermits()
	}
	return v, nil
}

func (v *permitListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		v.filtering = false
		v.filter = ""
		v.cursor = 0
	case tea.KeyEnter:
		v.filtering = false
	case tea.KeyBackspace:
		if len(v.filter) > 0 {
			v.filter = v.filter[:len(v.filter)-1]
		}
	case tea.KeyRunes:
		v.filter += string(msg.Runes)
		v.cursor = 0
	}
	return v, nil
}

func (v *permitListView) confirmDelete(p domain.EntryPermit) tea.Cmd {
	app := v.state.App
	prompt := fmt.Sprintf("Delete permit %s?", p.DisplayID())
	return pushView(confirmView(v.state, "Delete", prompt, func() tea.Cmd {
		return func() tea.Msg {
			if err := app.API.DeletePermit(context.Background(), p.ID); err != nil {
				return noticeMsg{text: "\n  " + formatter.ErrorLine(actionErr(err))}
			}
			return noticeMsg{text: "\n  " + formatter.SuccessLine("Deleted permit "+p.DisplayID())}
		}
	}))
}

// exportPermitPDF renders the permit document and writes it next to the
// working directory, mirroring a browser download.
func exportPermitPDF(p domain.EntryPermit) tea.Cmd {
	return func() tea.Msg {
		data, err := document.BuildPermitPDF(&p)
		if err != nil {
			return noticeMsg{text: "\n  " + formatter.ErrorLine(err)}
		}
		name := document.PermitFilename(&p)
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return noticeMsg{text: "\n  " + formatter.ErrorLine(err)}
		}
		return noticeMsg{text: "\n  " + formatter.SuccessLine("Wrote "+name)}
	}
}

func exportStickerSheet(p domain.EntryPermit, background string) tea.Cmd {
	return func() tea.Msg {
		data, err := document.BuildStickerSheet(&p, background)
		if err != nil {
			return noticeMsg{text: "\n  " + formatter.ErrorLine(err)}
		}
		name := document.StickerFilename(&p)
		if err := os.WriteFile(name, data, 0o644); err != nil {
			return noticeMsg{text: "\n  " + formatter.ErrorLine(err)}
		}
		return noticeMsg{text: "\n  " + formatter.SuccessLine("Wrote "+name)}
	}
}

func (v *permitListView) visiblePermits() []domain.EntryPermit {
	if v.filter == "" {
		return v.permits
	}
	needle := strings.ToLower(v.filter)
	var out []domain.EntryPermit
	for _, p := range v.permits {
		haystack := strings.ToLower(strings.Join([]string{
			p.DisplayID(), p.DocumentNumber, p.Requester, string(p.Status), string(p.ItemType),
		}, " "))
		if strings.Contains(haystack, needle) {
			out = append(out, p)
		}
	}
	return out
}

func permitStatusCell(s domain.PermitStatus) string {
	switch s {
	case domain.PermitApproved:
		return formatter.StyleGreen.Render(string(s))
	case domain.PermitRejected:
		return formatter.StyleRed.Render(string(s))
	case domain.PermitExpired:
		return formatter.StyleDim.Render(string(s))
	default:
		return formatter.StyleYellow.Render(string(s))
	}
}

func (v *permitListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading permits...")
	}
	if v.err != nil {
		return "\n  " + formatter.ErrorLine(actionErr(v.err))
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.filtering || v.filter != "" {
		b.WriteString("  " + formatter.Dim("filter: ") + v.filter + "\n\n")
	}

	visible := v.visiblePermits()
	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No permits. Press n to create one.") + "\n")
		return b.String()
	}

	headers := []string{" ", "Permit", "Type", "Date", "Requester", "Vehicles", "People", "Total", "Status"}
	rows := make([][]string, 0, len(visible))
	for i, p := range visible {
		marker := " "
		if i == v.cursor && !v.filtering {
			marker = formatter.StyleGreen.Render("▸")
		}
		rows = append(rows, []string{
			marker,
			p.DisplayID(),
			string(p.ItemType),
			p.RegistrationDate,
			formatter.Truncate(formatter.OrDash(p.Requester), 20),
			fmt.Sprintf("%d", len(p.Vehicles)),
			fmt.Sprintf("%d", len(p.Personnel)),
			formatter.FormatAmount(p.Total),
			permitStatusCell(p.Status),
		})
	}
	b.WriteString(indent(formatter.RenderTable(headers, rows), 2))
	return b.String()
}
