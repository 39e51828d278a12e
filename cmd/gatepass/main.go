package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/zaqiyusuf/gatepass/internal/api"
	"github.com/zaqiyusuf/gatepass/internal/cli"
	"github.com/zaqiyusuf/gatepass/internal/pricing"
	"github.com/zaqiyusuf/gatepass/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dbPath, err := session.DefaultPath()
	if err != nil {
		return fmt.Errorf("resolving session path: %w", err)
	}
	sessions, err := session.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer sessions.Close()

	cfg := api.LoadConfig()

	var observer api.Observer = api.NoopObserver{}
	if cfg.LogCalls {
		observer = api.NewLogObserver(os.Stderr)
	}

	// A rejected token clears the stored session; the TUI additionally
	// reacts by returning to the login view.
	client := api.NewClient(cfg, sessions, observer, nil)

	app := &cli.App{
		API:               client,
		Sessions:          sessions,
		Pricing:           pricing.NewService(client),
		StickerBackground: os.Getenv("GATEPASS_STICKER_BACKGROUND"),
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
