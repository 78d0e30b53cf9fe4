package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"trasloco/internal/adapters/editor"
	"trasloco/internal/adapters/logseq"
	"trasloco/internal/adapters/tui/views"
	"trasloco/internal/application/commands"
	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewPlan ViewState = iota
	ViewConfirm
	ViewRun
)

// App is the main TUI application model. It owns the view switching; the
// views hold their own state and signal intent through messages.
type App struct {
	editor *editor.Opener

	state   ViewState
	plan    *views.PlanModel
	confirm *views.ConfirmModel
	run     *views.RunModel

	width  int
	height int
}

// NewApp creates a new TUI application
func NewApp(
	scanner ports.NoteScanner,
	copier ports.NoteCopier,
	metadata ports.MetadataReader,
	ledger ports.MigrationLedger,
	bindings []domain.VaultBinding,
	ed *editor.Opener,
	dryRun, strict bool,
) *App {
	confirm := views.NewConfirmModel()
	confirm.SetFlags(dryRun, strict)

	return &App{
		editor:  ed,
		state:   ViewPlan,
		plan:    views.NewPlanModel(commands.NewPlanCommand(scanner, bindings)),
		confirm: confirm,
		run:     views.NewRunModel(scanner, copier, metadata, ledger, bindings),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.plan.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.plan.SetSize(msg.Width, msg.Height)
		a.confirm.SetSize(msg.Width, msg.Height)
		a.run.SetSize(msg.Width, msg.Height)
		return a, nil

	// View switching messages
	case views.SwitchToConfirmMsg:
		a.state = ViewConfirm
		a.confirm.SetPlan(msg.Result)
		return a, a.confirm.Init()

	case views.SwitchToPlanMsg:
		a.state = ViewPlan
		return a, nil

	case views.StartMigrationMsg:
		a.state = ViewRun
		return a, a.run.Begin(msg.DryRun, msg.Strict)

	// Messages that reach outside the terminal
	case views.InspectNoteMsg:
		return a, a.openEditor(msg.Path)

	case views.OpenPageMsg:
		return a, a.openPage(msg.GraphPath, msg.DestinationPath)

	case editorFinishedMsg:
		if msg.err != nil {
			a.plan.SetError(msg.err)
		}
		return a, nil

	case pageOpenedMsg:
		if msg.err != nil {
			a.plan.SetError(msg.err)
		} else {
			a.plan.SetMessage("Opened "+msg.page+" in Logseq", false)
		}
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewPlan:
		_, cmd = a.plan.Update(msg)
	case ViewConfirm:
		_, cmd = a.confirm.Update(msg)
	case ViewRun:
		_, cmd = a.run.Update(msg)
	}

	return a, cmd
}

type editorFinishedMsg struct{ err error }

func (a *App) openEditor(path string) tea.Cmd {
	if a.editor == nil {
		return nil
	}

	cmd, err := a.editor.Command(path)
	if err != nil {
		return func() tea.Msg {
			return editorFinishedMsg{err: err}
		}
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{err: err}
	})
}

type pageOpenedMsg struct {
	page string
	err  error
}

func (a *App) openPage(graphPath, destinationPath string) tea.Cmd {
	return func() tea.Msg {
		opener := logseq.NewOpener(graphPath)
		page, err := opener.PageName(destinationPath)
		if err != nil {
			return pageOpenedMsg{err: err}
		}
		if err := opener.OpenPage(destinationPath); err != nil {
			return pageOpenedMsg{err: err}
		}
		return pageOpenedMsg{page: page}
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewConfirm:
		return a.confirm.View()
	case ViewRun:
		return a.run.View()
	default:
		return a.plan.View()
	}
}
