package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"trasloco/internal/adapters/tui/styles"
	"trasloco/internal/application/commands"
)

// ConfirmKeyMap defines key bindings for the confirmation view
type ConfirmKeyMap struct {
	Confirm key.Binding
	DryRun  key.Binding
	Cancel  key.Binding
}

// DefaultConfirmKeys returns the default confirmation key bindings
var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "migrate"),
	),
	DryRun: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "toggle dry run"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "back"),
	),
}

// ConfirmModel is the model for the migration confirmation view
type ConfirmModel struct {
	ViewState
	Keys ConfirmKeyMap

	result *commands.PlanResult
	dryRun bool
	strict bool
}

// NewConfirmModel creates a new confirmation model with default keys
func NewConfirmModel() *ConfirmModel {
	return &ConfirmModel{
		Keys: DefaultConfirmKeys,
	}
}

// SetFlags sets the run flags the confirmation starts from. The dry-run
// flag stays toggleable in the view; strict comes from the command line.
func (m *ConfirmModel) SetFlags(dryRun, strict bool) {
	m.dryRun = dryRun
	m.strict = strict
}

// SetPlan sets the plan under confirmation
func (m *ConfirmModel) SetPlan(result *commands.PlanResult) {
	m.result = result
}

// Init initializes the confirmation view
func (m *ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the confirmation view
func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.Keys.Cancel):
			return m, func() tea.Msg { return SwitchToPlanMsg{} }

		case key.Matches(msg, m.Keys.DryRun):
			m.dryRun = !m.dryRun
			return m, nil

		case key.Matches(msg, m.Keys.Confirm):
			dryRun, strict := m.dryRun, m.strict
			return m, func() tea.Msg {
				return StartMigrationMsg{DryRun: dryRun, Strict: strict}
			}
		}
	}

	return m, nil
}

// View renders the confirmation view
func (m *ConfirmModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Confirm Migration"))
	b.WriteString("\n\n")

	if m.result != nil {
		b.WriteString(RenderLabelValue("Notes", fmt.Sprintf("%d", m.result.TotalNotes())))
		b.WriteString("\n")
		b.WriteString(RenderLabelValue("Pages", fmt.Sprintf("%d", m.result.TotalPages())))
		b.WriteString("\n")
		b.WriteString(RenderLabelValue("Journals", fmt.Sprintf("%d", m.result.TotalJournals())))
		b.WriteString("\n")

		if n := m.result.TotalCollisions(); n > 0 {
			b.WriteString("\n")
			b.WriteString(styles.WarnMsg.Render(fmt.Sprintf("%d destinations are claimed by more than one note.", n)))
			b.WriteString("\n")
			if m.strict {
				b.WriteString(RenderMuted("Strict mode: contested destinations will be skipped."))
			} else {
				b.WriteString(RenderMuted("The last copied note wins each contested destination."))
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.dryRun {
		b.WriteString(styles.Success.Render("Dry run: nothing will be copied."))
	} else {
		b.WriteString(RenderMuted("Existing destination files will be overwritten."))
	}
	b.WriteString("\n\n")

	b.WriteString("Proceed? ")
	b.WriteString(RenderHelpLine(m.Keys.Confirm, m.Keys.DryRun, m.Keys.Cancel))

	return styles.App.Render(b.String())
}

// StartMigrationMsg requests running the migration
type StartMigrationMsg struct {
	DryRun bool
	Strict bool
}
