package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappy/internal/storage"
)

func testRuns() []storage.Run {
	return []storage.Run{
		{ID: "0b5c7a7e-1111-4000-8000-000000000000", Seed: 9, Ticks: 161, Finished: true, JumpCount: 20,
			CreatedAt: time.Date(2026, 3, 4, 12, 30, 0, 0, time.UTC)},
		{ID: "f00dcafe-2222-4000-8000-000000000000", Seed: 4, JumpCount: 2},
	}
}

func TestJournalRow(t *testing.T) {
	runs := testRuns()

	row := JournalRow(runs[0])
	want := []string{"0b5c7a7e", "9", "161", "20", "finished", "Mar 04 12:30"}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %q, want %q", i, row[i], want[i])
		}
	}

	row = JournalRow(runs[1])
	if row[4] != "playing" || row[5] != "" {
		t.Errorf("unfinished row = %v", row)
	}
}

func TestJournalModelSelect(t *testing.T) {
	m := NewJournalModel(testRuns(), 100, 30)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated, cmd := updated.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("select returned no command")
	}

	jm := updated.(JournalModel)
	if got := jm.Selected(); got != testRuns()[1].ID {
		t.Errorf("Selected = %q, want second run", got)
	}
}

func TestJournalModelQuit(t *testing.T) {
	m := NewJournalModel(testRuns(), 100, 30)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if jm := updated.(JournalModel); jm.Selected() != "" {
		t.Errorf("Selected = %q after quit", jm.Selected())
	}
}

func TestJournalModelView(t *testing.T) {
	v := NewJournalModel(testRuns(), 100, 30).View()
	if !strings.Contains(v, "FLAPPY RUNS") || !strings.Contains(v, "0b5c7a7e") {
		t.Errorf("View:\n%s", v)
	}

	empty := NewJournalModel(nil, 100, 30)
	if v := empty.View(); !strings.Contains(v, "No runs journaled yet") {
		t.Errorf("empty View:\n%s", v)
	}
	if _, cmd := empty.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Error("select on an empty journal should do nothing")
	}
}
