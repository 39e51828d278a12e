package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaqiyusuf/gatepass/internal/api"
	"github.com/zaqiyusuf/gatepass/internal/cli/formatter"
)

// entityRow is one table row plus the record id behind it.
type entityRow struct {
	id    string
	label string // name used in delete prompts
	cells []string
}

// entitySection describes one CRUD collection for the generic list view.
// Every list-view feature module follows this same shape: fetch, table,
// modal create/edit form, delete confirmation.
type entitySection struct {
	title      string
	headers    []string
	load       func(ctx context.Context) ([]entityRow, error)
	createForm func() (View, error)          // nil = no create action
	editForm   func(id string) (View, error) // nil = no edit action
	remove     func(ctx context.Context, id string) error
}

// entityRowsMsg signals that collection data has been loaded.
type entityRowsMsg struct {
	section string
	rows    []entityRow
	err     error
}

// entityListView renders a filterable table over one entity collection.
// Revisiting the view always refetches; nothing is cached across views.
type entityListView struct {
	state   *SharedState
	section entitySection
	rows    []entityRow
	cursor  int
	loading bool
	err     error

	filtering bool
	filter    string
}

func newEntityListView(state *SharedState, section entitySection) *entityListView {
	return &entityListView{
		state:   state,
		section: section,
		loading: true,
	}
}

func (v *entityListView) ID() ViewID    { return ViewEntityList }
func (v *entityListView) Title() string { return v.section.title }

func (v *entityListView) ShortHelp() []key.Binding {
	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	}
	return bindings
}

func (v *entityListView) Init() tea.Cmd {
	return v.loadRows()
}

func (v *entityListView) loadRows() tea.Cmd {
	section := v.section
	return func() tea.Msg {
		rows, err := section.load(context.Background())
		return entityRowsMsg{section: section.title, rows: rows, err: err}
	}
}

func (v *entityListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case entityRowsMsg:
		if msg.section != v.section.title {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.rows = msg.rows
			if v.cursor >= len(v.rows) {
				v.cursor = 0
			}
		}
		if errors.Is(msg.err, api.ErrUnauthorized) {
			return v, func() tea.Msg { return loginRequiredMsg{} }
		}
		return v, nil

	case refreshViewMsg:
		v.loading = true
		return v, v.loadRows()

	case tea.KeyMsg:
		if v.filtering {
			return v.updateFilter(msg)
		}
		return v.updateNormal(msg)
	}
	return v, nil
}

func (v *entityListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := v.visibleRows()

	switch msg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(visible)-1 {
			v.cursor++
		}
	case "enter":
		if v.section.editForm != nil && v.cursor < len(visible) {
			form, err := v.section.editForm(visible[v.cursor].id)
			if err != nil {
				return v, notice("\n  " + formatter.ErrorLine(actionErr(err)))
			}
			return v, pushView(form)
		}
	case "a":
		if v.section.createForm != nil {
			form, err := v.section.createForm()
			if err != nil {
				return v, notice("\n  " + formatter.ErrorLine(actionErr(err)))
			}
			return v, pushView(form)
		}
	case "x":
		if v.section.remove != nil && v.cursor < len(visible) {
			return v, v.confirmDelete(visible[v.cursor])
		}
	case "/":
		v.filtering = true
		v.filter = ""
		v.cursor = 0
	case "r":
		v.loading = true
		return v, v.loadRows()
	}
	return v, nil
}

func (v *entityListView) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
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

func (v *entityListView) confirmDelete(row entityRow) tea.Cmd {
	section := v.section
	prompt := fmt.Sprintf("Delete %q?", row.label)
	return pushView(confirmView(v.state, "Delete", prompt, func() tea.Cmd {
		return func() tea.Msg {
			if err := section.remove(context.Background(), row.id); err != nil {
				return noticeMsg{text: "\n  " + formatter.ErrorLine(actionErr(err))}
			}
			return noticeMsg{text: "\n  " + formatter.SuccessLine("Deleted "+row.label)}
		}
	}))
}

// visibleRows applies the case-insensitive substring filter.
func (v *entityListView) visibleRows() []entityRow {
	if v.filter == "" {
		return v.rows
	}
	needle := strings.ToLower(v.filter)
	var out []entityRow
	for _, r := range v.rows {
		for _, cell := range r.cells {
			if strings.Contains(strings.ToLower(cell), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

func (v *entityListView) View() string {
	if v.loading {
		return "\n  " + formatter.Dim("Loading "+strings.ToLower(v.section.title)+"...")
	}
	if v.err != nil {
		return "\n  " + formatter.ErrorLine(actionErr(v.err))
	}

	var b strings.Builder
	b.WriteString("\n")
	if v.filtering || v.filter != "" {
		b.WriteString("  " + formatter.Dim("filter: ") + v.filter + "\n\n")
	}

	visible := v.visibleRows()
	if len(visible) == 0 {
		b.WriteString("  " + formatter.Dim("No records.") + "\n")
		return b.String()
	}

	rows := make([][]string, 0, len(visible))
	for i, r := range visible {
		cells := make([]string, 0, len(r.cells)+1)
		if i == v.cursor && !v.filtering {
			cells = append(cells, formatter.StyleGreen.Render("▸"))
		} else {
			cells = append(cells, " ")
		}
		cells = append(cells, r.cells...)
		rows = append(rows, cells)
	}
	headers := append([]string{" "}, v.section.headers...)
	b.WriteString(indent(formatter.RenderTable(headers, rows), 2))
	return b.String()
}

// actionErr maps API failures to the flat user-facing taxonomy: permission
// problems are named, everything else stays a generic failure line.
func actionErr(err error) error {
	switch {
	case errors.Is(err, api.ErrForbidden):
		return errors.New("you do not have permission for this action")
	case errors.Is(err, api.ErrUnavailable):
		return errors.New("backend unavailable, try again later")
	case errors.Is(err, api.ErrTimeout):
		return errors.New("request timed out")
	default:
		return err
	}
}

// indent prefixes every non-empty line with n spaces.
func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
