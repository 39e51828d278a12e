package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/zaqiyusuf/gatepass/internal/cli/formatter"
	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// gatepassHuhTheme returns a custom huh theme using the Nord palette.
func gatepassHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: frost accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// newForm assembles a themed form from field groups.
func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(gatepassHuhTheme()).WithShowHelp(false)
}

// ── validators ───────────────────────────────────────────────────────────────

// validateRequired rejects empty input with the field's name.
func validateRequired(name string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

// validateDate accepts a YYYY-MM-DD date string.
func validateDate(s string) error {
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date string.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	return validateDate(s)
}

// validateOptionalInt accepts empty or a non-negative integer.
func validateOptionalInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

// validateEmail is a cheap shape check; the backend does the real one.
func validateEmail(s string) error {
	if !strings.Contains(s, "@") || strings.TrimSpace(s) == "" {
		return fmt.Errorf("enter an email address")
	}
	return nil
}

// parseIntOr parses s as an integer, returning fallback when invalid.
// Used after form validation has already vetted the string.
func parseIntOr(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

// ── option builders ──────────────────────────────────────────────────────────

func tenantOptions(tenants []domain.Tenant) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(tenants))
	for _, t := range tenants {
		opts = append(opts, huh.NewOption(t.Name, t.ID))
	}
	return opts
}

func customerOptions(customers []domain.Customer) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(customers))
	for _, c := range customers {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	return opts
}

func packageOptions(pkgs []domain.Package) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(pkgs))
	for _, p := range pkgs {
		label := p.Name
		if p.Periode != "" {
			label = fmt.Sprintf("%s (%s)", p.Name, p.Periode)
		}
		opts = append(opts, huh.NewOption(label, p.ID))
	}
	return opts
}

func locationOptions(locs []domain.Location) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(locs))
	for _, l := range locs {
		opts = append(opts, huh.NewOption(l.Name, l.Name))
	}
	return opts
}

func itemTypeSelect(value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title("Item Type").
		Options(
			huh.NewOption("Tenant", string(domain.ItemTenant)),
			huh.NewOption("Non-Tenant", string(domain.ItemNonTenant)),
		).
		Value(value)
}
