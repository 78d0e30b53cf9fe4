package views

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"trasloco/internal/adapters/tui/styles"
	"trasloco/internal/application/commands"
	"trasloco/internal/domain"
)

// PlanViewState represents the state of the plan view
type PlanViewState int

const (
	PlanLoading PlanViewState = iota
	PlanShowList
	PlanError
)

// PlanKeyMap defines key bindings for the plan view
type PlanKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Filter   key.Binding
	Copy     key.Binding
	Open     key.Binding
	Edit     key.Binding
	Confirm  key.Binding
	Quit     key.Binding
}

var PlanKeys = PlanKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/k", "navigate"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("ctrl+f", "pgdown"),
		key.WithHelp("ctrl+f/b", "page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("ctrl+b", "pgup"),
		key.WithHelp("ctrl+b", "prev page"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "filter"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy dest"),
	),
	Open: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in Logseq"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit source"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "migrate"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// PlanRow pairs one computed mapping with the vault it came from and a flag
// marking destinations claimed by more than one note.
type PlanRow struct {
	Binding   domain.VaultBinding
	Mapping   domain.Mapping
	Colliding bool
}

// PlanModel is the model for the migration plan view
type PlanModel struct {
	ViewState
	plan *commands.PlanCommand

	state     PlanViewState
	result    *commands.PlanResult
	rows      []PlanRow
	filtered  []PlanRow
	paginator *Paginator
	filter    textinput.Model
	filtering bool
	spinner   spinner.Model
	err       error
}

// NewPlanModel creates a new plan view model
func NewPlanModel(plan *commands.PlanCommand) *PlanModel {
	input := textinput.New()
	input.Placeholder = "identifier or destination..."
	input.Prompt = "Filter: "

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner

	return &PlanModel{
		plan:      plan,
		state:     PlanLoading,
		paginator: NewPaginator(10),
		filter:    input,
		spinner:   s,
	}
}

// Init initializes the plan view
func (m *PlanModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadPlan(),
	)
}

func (m *PlanModel) loadPlan() tea.Cmd {
	return func() tea.Msg {
		result, err := m.plan.Execute(context.Background())
		if err != nil {
			return PlanFailedMsg{Err: err}
		}
		return PlanLoadedMsg{Result: result}
	}
}

// Update handles messages for the plan view
func (m *PlanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.state == PlanLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case PlanLoadedMsg:
		m.result = msg.Result
		m.rows = buildPlanRows(msg.Result)
		m.applyFilter("")
		m.state = PlanShowList
		return m, nil

	case PlanFailedMsg:
		m.err = msg.Err
		m.state = PlanError
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case PlanShowList:
			if m.filtering {
				return m.updateFilterMode(msg)
			}
			return m.updateListMode(msg)

		case PlanError:
			if key.Matches(msg, PlanKeys.Quit) {
				return m, tea.Quit
			}

		case PlanLoading:
			if key.Matches(msg, PlanKeys.Quit) {
				return m, tea.Quit
			}
		}
	}

	return m, nil
}

func (m *PlanModel) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.ClearMessage()

	switch {
	case key.Matches(msg, PlanKeys.Quit):
		return m, tea.Quit

	case key.Matches(msg, PlanKeys.Up):
		m.paginator.CursorUp()
		return m, nil

	case key.Matches(msg, PlanKeys.Down):
		m.paginator.CursorDown()
		return m, nil

	case key.Matches(msg, PlanKeys.NextPage):
		m.paginator.NextPage()
		return m, nil

	case key.Matches(msg, PlanKeys.PrevPage):
		m.paginator.PrevPage()
		return m, nil

	case key.Matches(msg, PlanKeys.Filter):
		m.filtering = true
		m.filter.Focus()
		return m, textinput.Blink

	case key.Matches(msg, PlanKeys.Copy):
		if row := m.selectedRow(); row != nil {
			if err := clipboard.WriteAll(row.Mapping.DestinationPath); err != nil {
				m.SetError(err)
			} else {
				m.SetMessage(fmt.Sprintf("Copied %s", row.Mapping.DestinationPath), false)
			}
		}
		return m, nil

	case key.Matches(msg, PlanKeys.Open):
		if row := m.selectedRow(); row != nil {
			graph := row.Binding.DestinationRoot
			dest := row.Mapping.DestinationPath
			return m, func() tea.Msg {
				return OpenPageMsg{GraphPath: graph, DestinationPath: dest}
			}
		}
		return m, nil

	case key.Matches(msg, PlanKeys.Edit):
		if row := m.selectedRow(); row != nil {
			path := row.Mapping.SourcePath
			return m, func() tea.Msg {
				return InspectNoteMsg{Path: path}
			}
		}
		return m, nil

	case key.Matches(msg, PlanKeys.Confirm):
		if m.result != nil && m.result.TotalNotes() > 0 {
			result := m.result
			return m, func() tea.Msg {
				return SwitchToConfirmMsg{Result: result}
			}
		}
		return m, nil
	}

	return m, nil
}

func (m *PlanModel) updateFilterMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		m.applyFilter("")
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter(m.filter.Value())
	return m, cmd
}

// buildPlanRows flattens the per-vault plans into display rows, marking
// entries whose destination is claimed more than once.
func buildPlanRows(result *commands.PlanResult) []PlanRow {
	var rows []PlanRow
	for _, v := range result.Vaults {
		if v.Err != nil || v.Plan == nil {
			continue
		}
		colliding := v.Plan.CollidingDestinations()
		for _, entry := range v.Plan.Entries {
			rows = append(rows, PlanRow{
				Binding:   v.Binding,
				Mapping:   entry,
				Colliding: colliding[entry.DestinationPath],
			})
		}
	}
	return rows
}

// filterPlanRows keeps the rows whose identifier or destination contains the
// query, case-insensitively.
func filterPlanRows(rows []PlanRow, query string) []PlanRow {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	var out []PlanRow
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Mapping.Identifier), q) ||
			strings.Contains(strings.ToLower(r.Mapping.DestinationPath), q) {
			out = append(out, r)
		}
	}
	return out
}

func (m *PlanModel) applyFilter(query string) {
	m.filtered = filterPlanRows(m.rows, query)
	m.paginator.Reset()
	m.paginator.SetTotal(len(m.filtered))
}

func (m *PlanModel) selectedRow() *PlanRow {
	cursor := m.paginator.Cursor()
	if cursor >= 0 && cursor < len(m.filtered) {
		return &m.filtered[cursor]
	}
	return nil
}

// visibleRows returns the rows for the current page
func (m *PlanModel) visibleRows() []PlanRow {
	if len(m.filtered) == 0 {
		return nil
	}
	start, end := m.paginator.VisibleRange()
	return m.filtered[start:end]
}

// View renders the plan view
func (m *PlanModel) View() string {
	var b strings.Builder

	b.WriteString(RenderTitle("Trasloco"))
	b.WriteString("\n")
	b.WriteString(styles.Subtitle.Render("Migrate dot-delimited vaults to Logseq graphs"))
	b.WriteString("\n\n")

	switch m.state {
	case PlanLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" Scanning vaults...")
		b.WriteString("\n\n")
		b.WriteString(RenderMuted("Press "))
		b.WriteString(styles.HelpKey.Render("q"))
		b.WriteString(RenderMuted(" to quit"))

	case PlanError:
		b.WriteString(styles.ErrorMsg.Render("Error: "))
		if m.err != nil {
			b.WriteString(m.err.Error())
		}
		b.WriteString("\n\n")
		b.WriteString(RenderMuted("Press q to quit"))

	case PlanShowList:
		m.renderList(&b)
	}

	return styles.App.Render(b.String())
}

func (m *PlanModel) renderList(b *strings.Builder) {
	// Vaults that could not be planned
	if m.result != nil {
		for _, v := range m.result.Vaults {
			if v.Err != nil {
				b.WriteString(styles.ErrorMsg.Render(v.Err.Error()))
				b.WriteString("\n")
			}
		}
	}

	// Counts
	if m.result != nil {
		fmt.Fprintf(b, "%d notes (%d pages, %d journals)",
			m.result.TotalNotes(), m.result.TotalPages(), m.result.TotalJournals())
		if n := m.result.TotalCollisions(); n > 0 {
			b.WriteString("  ")
			b.WriteString(styles.WarnMsg.Render(fmt.Sprintf("%d contested destinations", n)))
		}
		b.WriteString("\n")
	}

	// Filter line
	if m.filtering {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	} else if m.filter.Value() != "" {
		b.WriteString(RenderMuted(fmt.Sprintf("Filter: %s (%d shown)", m.filter.Value(), len(m.filtered))))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if len(m.filtered) == 0 {
		b.WriteString(RenderMuted("No notes to migrate"))
		b.WriteString("\n")
	} else {
		visible := m.visibleRows()
		pageOffset := m.paginator.PageOffset()
		cursor := m.paginator.Cursor()
		for i, row := range visible {
			absIndex := pageOffset + i
			m.renderRow(b, row, absIndex == cursor)
			b.WriteString("\n")
		}

		if m.paginator.TotalPages() > 1 {
			b.WriteString("\n")
			b.WriteString(RenderMuted(fmt.Sprintf("Page %d/%d", m.paginator.CurrentPage(), m.paginator.TotalPages())))
			b.WriteString("\n")
		}

		if row := m.selectedRow(); row != nil {
			b.WriteString("\n")
			b.WriteString(RenderLabelValue("Source", row.Mapping.SourcePath))
			b.WriteString("\n")
			b.WriteString(RenderLabelValue("Destination", row.Mapping.DestinationPath))
			b.WriteString("\n")
			if row.Colliding {
				b.WriteString(styles.WarnMsg.Render("Destination is claimed by more than one note; the last copy wins."))
				b.WriteString("\n")
			}
		}
	}

	if m.HasMessage() {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelpLine())
}

func (m *PlanModel) renderRow(b *strings.Builder, row PlanRow, selected bool) {
	kind := row.Mapping.Kind.String()
	dest := row.Mapping.DestinationPath
	if rel, err := filepath.Rel(row.Binding.DestinationRoot, dest); err == nil {
		dest = rel
	}

	if selected {
		b.WriteString(styles.RowSelected.Render(fmt.Sprintf(" > [%s] %s ", kind, row.Mapping.Identifier)))
		b.WriteString(" ")
		b.WriteString(dest)
	} else {
		b.WriteString("   ")
		b.WriteString(styles.KindBadge(kind).Render(fmt.Sprintf("[%s]", kind)))
		fmt.Fprintf(b, " %s  %s", row.Mapping.Identifier, styles.MutedText.Render(dest))
	}

	if row.Colliding {
		b.WriteString(" ")
		b.WriteString(styles.CollisionMark.Render("!"))
	}
}

func (m *PlanModel) renderHelpLine() string {
	bindings := []key.Binding{PlanKeys.Down}
	if m.paginator.TotalPages() > 1 {
		bindings = append(bindings, PlanKeys.NextPage)
	}
	bindings = append(bindings,
		PlanKeys.Filter,
		PlanKeys.Copy,
		PlanKeys.Open,
		PlanKeys.Edit,
		PlanKeys.Confirm,
		PlanKeys.Quit,
	)
	return RenderHelpLine(bindings...)
}

// Messages

// PlanLoadedMsg indicates the migration plan was computed
type PlanLoadedMsg struct {
	Result *commands.PlanResult
}

// PlanFailedMsg indicates the plan could not be computed at all
type PlanFailedMsg struct {
	Err error
}

// SwitchToConfirmMsg requests switching to the confirmation view
type SwitchToConfirmMsg struct {
	Result *commands.PlanResult
}

// SwitchToPlanMsg requests switching back to the plan view
type SwitchToPlanMsg struct{}

// InspectNoteMsg requests opening a source note in the editor
type InspectNoteMsg struct {
	Path string
}

// OpenPageMsg requests opening a destination page in Logseq
type OpenPageMsg struct {
	GraphPath       string
	DestinationPath string
}
