package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"trasloco/internal/adapters/tui/styles"
	"trasloco/internal/application/commands"
	"trasloco/internal/domain"
	"trasloco/internal/ports"
)

// RunViewState represents the state of the run view
type RunViewState int

const (
	RunWorking RunViewState = iota
	RunDone
	RunFailed
)

// RunKeyMap defines key bindings for the run view
type RunKeyMap struct {
	Back key.Binding
	Quit key.Binding
}

var RunKeys = RunKeyMap{
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to plan"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunModel is the model for the migration run view
type RunModel struct {
	ViewState
	scanner  ports.NoteScanner
	copier   ports.NoteCopier
	metadata ports.MetadataReader
	ledger   ports.MigrationLedger
	bindings []domain.VaultBinding

	state   RunViewState
	dryRun  bool
	result  *commands.MigrateResult
	err     error
	spinner spinner.Model
}

// NewRunModel creates a new run view model
func NewRunModel(
	scanner ports.NoteScanner,
	copier ports.NoteCopier,
	metadata ports.MetadataReader,
	ledger ports.MigrationLedger,
	bindings []domain.VaultBinding,
) *RunModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &RunModel{
		scanner:  scanner,
		copier:   copier,
		metadata: metadata,
		ledger:   ledger,
		bindings: bindings,
		spinner:  s,
	}
}

// Init initializes the run view
func (m *RunModel) Init() tea.Cmd {
	return nil
}

// Begin starts the migration and the spinner
func (m *RunModel) Begin(dryRun, strict bool) tea.Cmd {
	m.state = RunWorking
	m.dryRun = dryRun
	m.result = nil
	m.err = nil
	return tea.Batch(
		m.spinner.Tick,
		m.migrate(dryRun, strict),
	)
}

func (m *RunModel) migrate(dryRun, strict bool) tea.Cmd {
	return func() tea.Msg {
		cmd := commands.NewMigrateCommand(m.scanner, m.copier, m.metadata, m.ledger, m.bindings)
		cmd.DryRun = dryRun
		cmd.Strict = strict

		result, err := cmd.Execute(context.Background())
		if err != nil {
			return MigrationFailedMsg{Err: err}
		}
		return MigrationDoneMsg{Result: result}
	}
}

// Update handles messages for the run view
func (m *RunModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.state == RunWorking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case MigrationDoneMsg:
		m.result = msg.Result
		m.state = RunDone
		return m, nil

	case MigrationFailedMsg:
		m.err = msg.Err
		m.state = RunFailed
		return m, nil

	case tea.KeyMsg:
		// Keys are ignored while copies are in flight
		if m.state == RunWorking {
			return m, nil
		}
		switch {
		case key.Matches(msg, RunKeys.Quit):
			return m, tea.Quit
		case key.Matches(msg, RunKeys.Back):
			return m, func() tea.Msg { return SwitchToPlanMsg{} }
		}
	}

	return m, nil
}

// View renders the run view
func (m *RunModel) View() string {
	var b strings.Builder

	switch m.state {
	case RunWorking:
		b.WriteString(RenderTitle("Migrating"))
		b.WriteString("\n\n")
		b.WriteString(m.spinner.View())
		if m.dryRun {
			b.WriteString(" Staging notes (dry run)...")
		} else {
			b.WriteString(" Copying notes...")
		}

	case RunFailed:
		b.WriteString(RenderTitle("Migration Failed"))
		b.WriteString("\n\n")
		b.WriteString(styles.ErrorMsg.Render("Error: "))
		if m.err != nil {
			b.WriteString(m.err.Error())
		}
		b.WriteString("\n\n")
		b.WriteString(RenderHelpLine(RunKeys.Back, RunKeys.Quit))

	case RunDone:
		m.renderSummary(&b)
	}

	return styles.App.Render(b.String())
}

func (m *RunModel) renderSummary(b *strings.Builder) {
	if m.result != nil && m.result.DryRun {
		b.WriteString(RenderTitle("Dry Run Complete"))
	} else {
		b.WriteString(RenderTitle("Migration Complete"))
	}
	b.WriteString("\n\n")

	if m.result == nil {
		return
	}

	for _, v := range m.result.Vaults {
		b.WriteString(styles.InputLabel.Render(v.Binding.SourceRoot))
		b.WriteString("\n")

		if m.result.DryRun {
			fmt.Fprintf(b, "  %d notes staged (%d pages, %d journals)\n",
				v.Stats.NotesScanned, v.Stats.Pages, v.Stats.Journals)
		} else {
			fmt.Fprintf(b, "  %d copied, %d skipped, %d failed\n",
				v.Stats.Copied, v.Stats.Skipped, v.Stats.Failed)
		}

		if v.Err != nil {
			b.WriteString("  ")
			b.WriteString(styles.ErrorMsg.Render(v.Err.Error()))
			b.WriteString("\n")
		}
		for _, col := range v.Collisions {
			b.WriteString("  ")
			b.WriteString(styles.WarnMsg.Render(fmt.Sprintf("contested: %s (%d notes)", col.DestinationPath, len(col.SourcePaths))))
			b.WriteString("\n")
		}
		for _, fe := range v.FileErrors {
			b.WriteString("  ")
			b.WriteString(styles.ErrorMsg.Render(fmt.Sprintf("failed: %s: %v", fe.SourcePath, fe.Err)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(RenderHelpLine(RunKeys.Back, RunKeys.Quit))
}

// Messages

// MigrationDoneMsg indicates the migration finished
type MigrationDoneMsg struct {
	Result *commands.MigrateResult
}

// MigrationFailedMsg indicates the migration could not start
type MigrationFailedMsg struct {
	Err error
}
