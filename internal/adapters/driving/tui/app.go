package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/components/overlay"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/views/account"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/views/closets"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/closet-cli/internal/adapters/driving/tui/views/settings"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap
	help   help.Model

	// doc receives every pointer press before the active view does, so
	// open popups can close on outside presses.
	doc *overlay.Document

	menuView     *menu.View
	searchView   *search.View
	closetsView  *closets.View
	accountView  *account.View
	settingsView *settings.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	h := help.New()
	h.ShowAll = true

	return &App{
		ports:        ports,
		ctx:          context.Background(),
		styles:       s,
		keymap:       km,
		help:         h,
		doc:          overlay.NewDocument(),
		menuView:     menu.NewView(s),
		searchView:   search.NewView(s, km, ports.Lookup, ports.Closets, ports.LookupConfig),
		closetsView:  closets.NewView(s, ports.Closets),
		accountView:  account.NewView(s, km, ports.Settings),
		settingsView: settings.NewView(s, ports.Settings),
		currentView:  messages.ViewMenu,
	}, nil
}

// WithContext sets the context backend calls run under.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.searchView.WithContext(ctx)
	a.closetsView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("closet")
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message router
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			if msg.Type == tea.KeyEsc {
				return a, a.switchTo(messages.ViewMenu)
			}
			return a, nil
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			a.doc.DispatchPointerDown(msg.X, msg.Y)
		}

	case messages.ViewChanged:
		return a, a.switchTo(msg.View)

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.SettingsReloaded:
		var accountCmd, settingsCmd tea.Cmd
		a.accountView, accountCmd = a.accountView.Update(msg)
		a.settingsView, settingsCmd = a.settingsView.Update(msg)
		return a, tea.Batch(accountCmd, settingsCmd)

	case messages.Quit:
		return a, tea.Quit
	}

	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewSearch:
		a.searchView, cmd = a.searchView.Update(msg)
	case messages.ViewClosets:
		a.closetsView, cmd = a.closetsView.Update(msg)
	case messages.ViewAccount:
		a.accountView, cmd = a.accountView.Update(msg)
	case messages.ViewSettings:
		a.settingsView, cmd = a.settingsView.Update(msg)
	case messages.ViewHelp:
	}
	return a, cmd
}

// switchTo makes view active. The search view owns document listeners and
// a live lookup, so it is mounted on entry and unmounted on exit.
func (a *App) switchTo(view messages.ViewType) tea.Cmd {
	prev := a.currentView
	a.currentView = view

	if prev == messages.ViewSearch && view != messages.ViewSearch {
		a.searchView.Unmount()
	}

	switch view {
	case messages.ViewSearch:
		if prev == messages.ViewSearch {
			return nil
		}
		return a.searchView.Mount(a.doc)
	case messages.ViewClosets:
		return a.closetsView.Init()
	case messages.ViewAccount:
		return a.accountView.Init()
	case messages.ViewSettings:
		return a.settingsView.Init()
	case messages.ViewMenu, messages.ViewHelp:
	}
	return nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewSearch:
		return a.searchView.View()
	case messages.ViewClosets:
		return a.closetsView.View()
	case messages.ViewAccount:
		return a.accountView.View()
	case messages.ViewSettings:
		return a.settingsView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

func (a *App) viewHelp() string {
	return a.styles.Title.Render("Help") + "\n\n" +
		a.help.View(a.keymap) + "\n\n" +
		a.styles.Help.Render("[esc] back to menu")
}

// Program builds the Bubble Tea program for the app: alt screen, mouse
// cell motion and the app's context.
func (a *App) Program(opts ...tea.ProgramOption) *tea.Program {
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(a.ctx),
	}, opts...)
	return tea.NewProgram(a, opts...)
}

// Run starts the TUI application.
func (a *App) Run() error {
	_, err := a.Program().Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Document returns the pointer listener registry.
func (a *App) Document() *overlay.Document {
	return a.doc
}

// Search returns the search view.
func (a *App) Search() *search.View {
	return a.searchView
}

// Closets returns the closets view.
func (a *App) Closets() *closets.View {
	return a.closetsView
}

// Account returns the account view.
func (a *App) Account() *account.View {
	return a.accountView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.help.Width = width
	a.menuView.SetDimensions(width, height)
	a.searchView.SetDimensions(width, height)
	a.closetsView.SetDimensions(width, height)
	a.accountView.SetDimensions(width, height)
	a.settingsView, _ = a.settingsView.Update(tea.WindowSizeMsg{Width: width, Height: height})
}
