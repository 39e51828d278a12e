package cli

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/zaqiyusuf/gatepass/internal/api"
	"github.com/zaqiyusuf/gatepass/internal/cli/formatter"
	"github.com/zaqiyusuf/gatepass/internal/session"
)

// loginDoneMsg carries the result of a login attempt.
type loginDoneMsg struct {
	result *api.LoginResult
	err    error
}

// loginView collects credentials and exchanges them for a session. It is
// the bottom of the view stack whenever no valid session exists.
type loginView struct {
	state    *SharedState
	form     *huh.Form
	email    string
	password string
	err      error
	pending  bool
}

func newLoginView(state *SharedState) *loginView {
	v := &loginView{state: state}
	v.form = v.buildForm()
	return v
}

func (v *loginView) buildForm() *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("admin@example.com").
			Value(&v.email).
			Validate(validateEmail),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&v.password).
			Validate(validateRequired("password")),
	))
}

func (v *loginView) ID() ViewID    { return ViewLogin }
func (v *loginView) Title() string { return "Login" }

func (v *loginView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in")),
		key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (v *loginView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *loginView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		v.pending = false
		if msg.err != nil {
			v.err = msg.err
			v.email, v.password = "", ""
			v.form = v.buildForm()
			return v, v.form.Init()
		}
		v.state.User = msg.result.User
		dash := newDashboardView(v.state)
		return v, replaceView(dash)
	}

	if v.pending {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.pending = true
		v.err = nil
		return v, tea.Batch(cmd, v.login())
	}
	return v, cmd
}

func (v *loginView) login() tea.Cmd {
	app := v.state.App
	email, password := v.email, v.password
	return func() tea.Msg {
		result, err := app.API.Login(context.Background(), email, password)
		if err != nil {
			return loginDoneMsg{err: err}
		}
		if err := app.Sessions.Save(session.Session{User: result.User, Token: result.Token}); err != nil {
			return loginDoneMsg{err: err}
		}
		return loginDoneMsg{result: result}
	}
}

func (v *loginView) View() string {
	var b []byte
	b = append(b, '\n')
	b = append(b, "  "+formatter.Header("Sign in to gatepass")+"\n\n"...)
	if v.pending {
		b = append(b, "  "+formatter.Dim("Signing in...")+"\n"...)
		return string(b)
	}
	if v.err != nil {
		b = append(b, "  "+formatter.ErrorLine(loginErrText(v.err))+"\n\n"...)
	}
	b = append(b, v.form.View()...)
	return string(b)
}

// loginErrText keeps credential failures generic while still naming an
// unreachable backend.
func loginErrText(err error) error {
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return errors.New("invalid email or password")
	case errors.Is(err, api.ErrUnavailable), errors.Is(err, api.ErrTimeout):
		return err
	default:
		return errors.New("login failed, try again")
	}
}
