package cli

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zaqiyusuf/gatepass/internal/api"
	"github.com/zaqiyusuf/gatepass/internal/cli/formatter"
	"github.com/zaqiyusuf/gatepass/internal/document"
	"github.com/zaqiyusuf/gatepass/internal/pricing"
	"github.com/zaqiyusuf/gatepass/internal/session"
)

// App holds the wired backend client and local state used by all commands
// and by the TUI views.
type App struct {
	API      *api.Client
	Sessions *session.Store
	Pricing  *pricing.Service

	// IsInteractive reports whether stdin is a terminal; the TUI refuses
	// to start without one.
	IsInteractive func() bool

	// StickerBackground is an optional image file drawn behind each
	// sticker on the printed sheet.
	StickerBackground string
}

// NewRootCmd creates the top-level "gatepass" command. Running it without a
// subcommand starts the interactive dashboard.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "gatepass",
		Short: "Terminal dashboard for area entry permits",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(app)
		},
	}

	root.AddCommand(
		newLoginCmd(app),
		newLogoutCmd(app),
		newPermitCmd(app),
		newStatusCmd(app),
	)

	return root
}

func runTUI(app *App) error {
	if app.IsInteractive != nil && !app.IsInteractive() {
		return fmt.Errorf("the dashboard needs an interactive terminal; see gatepass --help for subcommands")
	}
	p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newLoginCmd(app *App) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the backend and store the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return fmt.Errorf("both --email and --password are required")
			}
			result, err := app.API.Login(cmd.Context(), email, password)
			if err != nil {
				return loginErrText(err)
			}
			if err := app.Sessions.Save(session.Session{User: result.User, Token: result.Token}); err != nil {
				return fmt.Errorf("storing session: %w", err)
			}
			fmt.Println(formatter.SuccessLine("Logged in as " + result.User.Name))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Server-side revocation is best effort; the local session
			// is cleared regardless.
			_ = app.API.Logout(cmd.Context())
			if err := app.Sessions.Clear(); err != nil {
				return err
			}
			fmt.Println(formatter.SuccessLine("Logged out"))
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check backend availability and session state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.API.Available(cmd.Context()) {
				fmt.Println(formatter.SuccessLine("Backend reachable"))
			} else {
				fmt.Println(formatter.ErrorLine(fmt.Errorf("backend unreachable")))
			}
			sess, err := app.Sessions.Load()
			if err != nil {
				fmt.Println(formatter.Dim("No stored session."))
				return nil
			}
			fmt.Printf("Logged in as %s (%s)\n", formatter.Bold(sess.User.Name), sess.User.Role)
			return nil
		},
	}
}

func newPermitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "permit",
		Short: "Entry permit documents",
	}
	cmd.AddCommand(newPermitPDFCmd(app), newPermitStickerCmd(app))
	return cmd
}

func newPermitPDFCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pdf <permit-id>",
		Short: "Render a permit document PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePermitDocument(cmd.Context(), app, args[0], out, documentPDF)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default permit-<id>.pdf)")
	return cmd
}

func newPermitStickerCmd(app *App) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sticker <permit-id>",
		Short: "Render a permit sticker sheet PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePermitDocument(cmd.Context(), app, args[0], out, documentSticker)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default stickers-<id>.pdf)")
	return cmd
}

type documentKind int

const (
	documentPDF documentKind = iota
	documentSticker
)

func writePermitDocument(ctx context.Context, app *App, id, out string, kind documentKind) error {
	p, err := app.API.GetPermit(ctx, id)
	if err != nil {
		return actionErr(err)
	}

	var data []byte
	name := out
	switch kind {
	case documentSticker:
		data, err = document.BuildStickerSheet(p, app.StickerBackground)
		if name == "" {
			name = document.StickerFilename(p)
		}
	default:
		data, err = document.BuildPermitPDF(p)
		if name == "" {
			name = document.PermitFilename(p)
		}
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, data, 0o644); err != nil {
		return err
	}
	fmt.Println(formatter.SuccessLine("Wrote " + name))
	return nil
}
