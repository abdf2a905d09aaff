package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/closet-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/lookup"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/closet-cli/internal/logger"
)

// logFileName receives log output while the TUI owns the terminal.
const logFileName = "closet.log"

// errNotTerminal is returned when stdout is not a terminal.
var errNotTerminal = errors.New("tui requires an interactive terminal")

// isTerminal reports whether fd is a terminal. Tests replace it.
var isTerminal = term.IsTerminal

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive search bar.

Typing looks the catalogue up as you go. Choose an item from the dropdown
to add it to one of your closets.

Controls:
  tab        - Switch between input and results
  ↑/↓        - Navigate results
  enter      - Choose / add to closet
  esc        - Close popup / back
  ctrl+c     - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in TUI: %v\n%s", r, debug.Stack())
		}
	}()

	if !isTerminal(int(os.Stdout.Fd())) {
		return errNotTerminal
	}

	closeLog, err := redirectLog()
	if err != nil {
		logger.Warn("no log file for this session: %v", err)
		logger.SetOutput(io.Discard)
		closeLog = func() { logger.SetOutput(os.Stderr) }
	}
	defer closeLog()

	ports := tui.NewPorts(lookupService, closetService, settingsService)
	ports.LookupConfig = lookup.ConfigFrom(lookupSettings)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	p := app.Program()

	if configStore != nil {
		w := file.NewWatcher(configStore, func() {
			p.Send(messages.SettingsReloaded{})
		})
		go func() {
			if err := w.Run(ctx); err != nil {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLog points the logger at a file in the config directory so log
// lines do not tear the alternate screen.
func redirectLog() (func(), error) {
	dir := configDir
	if configStore != nil {
		dir = configStore.Dir()
	}
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(f)
	logger.Section("tui session")

	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}, nil
}
