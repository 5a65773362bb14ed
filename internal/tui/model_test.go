package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filedesk/internal/model"
	"filedesk/internal/testutil"
)

func browserFixture() Model {
	mine := []model.FilingRecord{
		testutil.Record(time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), "Acme Corp", model.StatusCompleted),
		testutil.Record(time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), "Beta Industries", model.StatusProcessing),
	}
	shared := []model.SharedFile{
		{
			SharedAt:      time.Date(2026, 3, 6, 9, 0, 0, 0, time.UTC),
			FromUserEmail: "carol@example.com",
			FileDetails:   testutil.Record(time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC), "Gamma LLC", model.StatusCompleted),
		},
	}
	return New(mine, shared, 10)
}

func keyMsg(s string) tea.KeyMsg {
	if s == "tab" {
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok)
	return got
}

func TestNewShowsOwnRecords(t *testing.T) {
	m := browserFixture()
	assert.Equal(t, TabMine, m.tab)
	assert.Len(t, m.filtered, 2)
}

func TestTabSwitchesToShared(t *testing.T) {
	m := update(t, browserFixture(), keyMsg("tab"))
	assert.Equal(t, TabSharedWithMe, m.tab)
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "Gamma LLC", m.filtered[0].Details.CompanyName)

	m = update(t, m, keyMsg("tab"))
	assert.Equal(t, TabMine, m.tab)
	assert.Len(t, m.filtered, 2)
}

func TestStatusKeyCyclesFilter(t *testing.T) {
	m := browserFixture()

	m = update(t, m, keyMsg("s"))
	assert.Equal(t, model.StatusProcessing, m.spec.Status)
	assert.Len(t, m.filtered, 1)

	m = update(t, m, keyMsg("s"))
	assert.Equal(t, model.StatusCompleted, m.spec.Status)
	assert.Len(t, m.filtered, 1)

	m = update(t, m, keyMsg("s"))
	assert.Empty(t, m.spec.Status)
	assert.Len(t, m.filtered, 2)
}

func TestSearchMode(t *testing.T) {
	m := update(t, browserFixture(), keyMsg("/"))
	assert.True(t, m.searching)

	for _, r := range "beta" {
		m = update(t, m, keyMsg(string(r)))
	}
	assert.Equal(t, "beta", m.spec.Search)
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "Beta Industries", m.filtered[0].Details.CompanyName)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "beta", m.spec.Search, "leaving search mode keeps the filter")
}

func TestQuit(t *testing.T) {
	next, cmd := browserFixture().Update(keyMsg("q"))
	m, ok := next.(Model)
	require.True(t, ok)
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Empty(t, m.View(), "quitting view renders nothing")
}

func TestViewRendersRows(t *testing.T) {
	view := browserFixture().View()
	assert.Contains(t, view, "File History")
	assert.Contains(t, view, "Acme Corp")
	assert.Contains(t, view, "Beta Industries")
	assert.Contains(t, view, "2026-03-05")
}

func TestViewEmptyStates(t *testing.T) {
	empty := New(nil, nil, 10)
	assert.Contains(t, empty.View(), "No filings yet.")

	m := browserFixture()
	m.spec.Search = "zzz"
	m.refilter()
	assert.Contains(t, m.View(), "No records match")
}

func TestNextStatus(t *testing.T) {
	assert.Equal(t, model.StatusProcessing, nextStatus(""))
	assert.Equal(t, model.StatusCompleted, nextStatus(model.StatusProcessing))
	assert.Equal(t, model.Status(""), nextStatus(model.StatusCompleted))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))
	assert.Equal(t, "a long c...", truncate("a long company name", 11))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
