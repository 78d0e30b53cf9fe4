package views

import (
	"fmt"
	"testing"

	"trasloco/internal/application/commands"
	"trasloco/internal/domain"
)

func testBinding() domain.VaultBinding {
	return domain.VaultBinding{
		SourceRoot:      "/vault",
		DestinationRoot: "/graph",
		JournalRoot:     "daily",
	}
}

// planResultForTest maps a fixed set of notes, including two that claim the
// same destination page.
func planResultForTest(t *testing.T) *commands.PlanResult {
	t.Helper()

	b := testBinding()
	sources := []string{
		"/vault/daily.2024.01.15.md",
		"/vault/daily.2024.01.md",
		"/vault/daily.2024_01.md",
		"/vault/inbox.md",
		"/vault/projects.alpha.notes.md",
	}

	plan := &domain.Plan{Binding: b}
	for _, src := range sources {
		m, err := domain.MapNote(b, src)
		if err != nil {
			t.Fatalf("unexpected error mapping %s: %v", src, err)
		}
		plan.Entries = append(plan.Entries, m)
	}

	return &commands.PlanResult{
		Vaults: []commands.VaultPlan{{Binding: b, Plan: plan}},
	}
}

func TestBuildPlanRows(t *testing.T) {
	result := planResultForTest(t)

	rows := buildPlanRows(result)
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}

	colliding := 0
	for _, r := range rows {
		if r.Colliding {
			colliding++
		}
	}
	if colliding != 2 {
		t.Errorf("expected 2 colliding rows, got %d", colliding)
	}

	// The journal entry keeps its kind through the flattening
	if rows[0].Mapping.Kind != domain.KindJournal {
		t.Errorf("expected first row to be a journal, got %v", rows[0].Mapping.Kind)
	}
}

func TestBuildPlanRows_SkipsFailedVaults(t *testing.T) {
	result := planResultForTest(t)
	result.Vaults = append(result.Vaults, commands.VaultPlan{
		Binding: domain.VaultBinding{SourceRoot: "/missing", DestinationRoot: "/graph"},
		Err:     fmt.Errorf("failed to scan vault"),
	})

	rows := buildPlanRows(result)
	if len(rows) != 5 {
		t.Errorf("expected failed vault to contribute no rows, got %d rows", len(rows))
	}
}

func TestFilterPlanRows(t *testing.T) {
	rows := buildPlanRows(planResultForTest(t))

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{
			name:  "empty query keeps everything",
			query: "",
			want:  5,
		},
		{
			name:  "blank query keeps everything",
			query: "   ",
			want:  5,
		},
		{
			name:  "identifier match",
			query: "projects",
			want:  1,
		},
		{
			name:  "destination match",
			query: "journals/",
			want:  3,
		},
		{
			name:  "case insensitive",
			query: "INBOX",
			want:  1,
		},
		{
			name:  "no match",
			query: "zzz",
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterPlanRows(rows, tt.query)
			if len(got) != tt.want {
				t.Errorf("filterPlanRows(%q) returned %d rows, expected %d", tt.query, len(got), tt.want)
			}
		})
	}
}

func TestPlanModel_Loaded(t *testing.T) {
	model := NewPlanModel(nil)

	if model.state != PlanLoading {
		t.Fatalf("expected new model to be loading, got %v", model.state)
	}

	model.Update(PlanLoadedMsg{Result: planResultForTest(t)})

	if model.state != PlanShowList {
		t.Errorf("expected state PlanShowList after load, got %v", model.state)
	}
	if len(model.filtered) != 5 {
		t.Errorf("expected 5 filtered rows after load, got %d", len(model.filtered))
	}
	if model.paginator.Cursor() != 0 {
		t.Errorf("expected cursor at 0 after load, got %d", model.paginator.Cursor())
	}
}

func TestPlanModel_Failed(t *testing.T) {
	model := NewPlanModel(nil)

	model.Update(PlanFailedMsg{Err: fmt.Errorf("no vaults configured")})

	if model.state != PlanError {
		t.Errorf("expected state PlanError, got %v", model.state)
	}
	if model.err == nil {
		t.Error("expected error to be recorded")
	}
}

func TestPlanModel_VisibleRows(t *testing.T) {
	model := NewPlanModel(nil)

	// Empty rows
	if visible := model.visibleRows(); visible != nil {
		t.Errorf("expected nil for empty rows, got %v", visible)
	}

	b := testBinding()
	plan := &domain.Plan{Binding: b}
	for i := range 25 {
		m, err := domain.MapNote(b, fmt.Sprintf("/vault/note.%02d.md", i))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		plan.Entries = append(plan.Entries, m)
	}
	model.Update(PlanLoadedMsg{Result: &commands.PlanResult{
		Vaults: []commands.VaultPlan{{Binding: b, Plan: plan}},
	}})

	// First page should have 10 items (default page size)
	if visible := model.visibleRows(); len(visible) != 10 {
		t.Errorf("expected 10 visible rows on first page, got %d", len(visible))
	}

	model.paginator.NextPage()
	if visible := model.visibleRows(); len(visible) != 10 {
		t.Errorf("expected 10 visible rows on second page, got %d", len(visible))
	}

	model.paginator.NextPage()
	if visible := model.visibleRows(); len(visible) != 5 {
		t.Errorf("expected 5 visible rows on last page, got %d", len(visible))
	}
}

func TestPlanModel_ApplyFilterResetsCursor(t *testing.T) {
	model := NewPlanModel(nil)
	model.Update(PlanLoadedMsg{Result: planResultForTest(t)})

	model.paginator.CursorDown()
	model.paginator.CursorDown()
	if model.paginator.Cursor() != 2 {
		t.Fatalf("expected cursor at 2, got %d", model.paginator.Cursor())
	}

	model.applyFilter("inbox")

	if model.paginator.Cursor() != 0 {
		t.Errorf("expected cursor reset to 0 after filter, got %d", model.paginator.Cursor())
	}
	if len(model.filtered) != 1 {
		t.Errorf("expected 1 filtered row, got %d", len(model.filtered))
	}
}

func TestConfirmModel_Flags(t *testing.T) {
	model := NewConfirmModel()
	model.SetFlags(true, false)
	model.SetPlan(planResultForTest(t))

	if !model.dryRun {
		t.Error("expected dry run flag to be set")
	}
	if model.strict {
		t.Error("expected strict flag to be unset")
	}
	if model.result == nil {
		t.Error("expected plan to be set")
	}
}

func TestRunModel_Done(t *testing.T) {
	model := NewRunModel(nil, nil, nil, nil, nil)

	model.Update(MigrationDoneMsg{Result: &commands.MigrateResult{DryRun: true}})

	if model.state != RunDone {
		t.Errorf("expected state RunDone, got %v", model.state)
	}
	if model.result == nil || !model.result.DryRun {
		t.Error("expected dry run result to be recorded")
	}
}

func TestRunModel_Failed(t *testing.T) {
	model := NewRunModel(nil, nil, nil, nil, nil)

	model.Update(MigrationFailedMsg{Err: fmt.Errorf("no vaults configured")})

	if model.state != RunFailed {
		t.Errorf("expected state RunFailed, got %v", model.state)
	}
	if model.err == nil {
		t.Error("expected error to be recorded")
	}
}
