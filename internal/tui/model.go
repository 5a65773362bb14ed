// Package tui implements the interactive filing history browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"filedesk/internal/filter"
	"filedesk/internal/model"
	"filedesk/internal/pager"
)

// Tab selects the data source shown in the browser. Both tabs run through
// the same filter engine and pager.
type Tab int

// Browser tabs.
const (
	TabMine Tab = iota
	TabSharedWithMe
)

// KeyMap defines the browser key bindings.
type KeyMap struct {
	Search key.Binding
	Status key.Binding
	Tab    key.Binding
	Prev   key.Binding
	Next   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default browser key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Status: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status")),
		Tab:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch tab")),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev page")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next page")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model holds the browser state.
type Model struct {
	keymap    KeyMap
	search    textinput.Model
	paginator paginator.Model
	mine      []model.FilingRecord
	shared    []model.SharedFile
	filtered  []model.FilingRecord
	spec      model.FilterSpec
	tab       Tab
	pageSize  int
	width     int
	searching bool
	quitting  bool
}

// New creates a browser over the user's own records and the records
// shared with them.
func New(mine []model.FilingRecord, shared []model.SharedFile, pageSize int) Model {
	if pageSize < 1 {
		pageSize = pager.DefaultPageSize
	}

	search := textinput.New()
	search.Placeholder = "Search across all fields..."
	search.CharLimit = 64

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = pageSize

	m := Model{
		keymap:    DefaultKeyMap(),
		search:    search,
		paginator: p,
		mine:      mine,
		shared:    shared,
		pageSize:  pageSize,
	}
	m.refilter()
	return m
}

// records returns the active tab's record collection.
func (m Model) records() []model.FilingRecord {
	if m.tab == TabSharedWithMe {
		out := make([]model.FilingRecord, len(m.shared))
		for i, s := range m.shared {
			out[i] = s.FileDetails
		}
		return out
	}
	return m.mine
}

// refilter re-applies the filter spec and resets to page 1. Any spec or
// tab change routes through here.
func (m *Model) refilter() {
	m.filtered = filter.Apply(m.records(), m.spec)
	m.paginator.SetTotalPages(len(m.filtered))
	m.paginator.Page = 0
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			switch msg.String() {
			case "enter", "esc":
				m.searching = false
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			m.spec.Search = m.search.Value()
			m.refilter()
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keymap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keymap.Search):
			m.searching = true
			m.search.Focus()
			return m, textinput.Blink

		case key.Matches(msg, m.keymap.Status):
			m.spec.Status = nextStatus(m.spec.Status)
			m.refilter()
			return m, nil

		case key.Matches(msg, m.keymap.Tab):
			if m.tab == TabMine {
				m.tab = TabSharedWithMe
			} else {
				m.tab = TabMine
			}
			m.refilter()
			return m, nil
		}

		var cmd tea.Cmd
		m.paginator, cmd = m.paginator.Update(msg)
		return m, cmd
	}

	return m, nil
}

// nextStatus cycles all → Processing → Completed → all.
func nextStatus(s model.Status) model.Status {
	switch s {
	case "":
		return model.StatusProcessing
	case model.StatusProcessing:
		return model.StatusCompleted
	default:
		return ""
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3D7EFF"))
	tabStyle   = lipgloss.NewStyle().Faint(true)
	activeTab  = lipgloss.NewStyle().Bold(true).Underline(true)
	headStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("File History"))
	b.WriteString("  ")
	b.WriteString(renderTab("My Filings", m.tab == TabMine))
	b.WriteString(" | ")
	b.WriteString(renderTab("Shared With Me", m.tab == TabSharedWithMe))
	b.WriteString("\n\n")

	if m.searching || m.spec.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n\n")
	}
	if m.spec.Status != "" {
		b.WriteString(faintStyle.Render(fmt.Sprintf("status: %s", m.spec.Status)))
		b.WriteString("\n\n")
	}

	page, window := pager.Slice(m.filtered, m.pageSize, m.paginator.Page+1)

	b.WriteString(headStyle.Render(fmt.Sprintf("%-10s %-24s %-28s %-12s %s",
		"Request", "Company", "File", "Status", "Uploaded")))
	b.WriteString("\n")

	if len(page) == 0 {
		if m.spec.Empty() {
			b.WriteString(faintStyle.Render("No filings yet."))
		} else {
			b.WriteString(faintStyle.Render("No records match the current filters."))
		}
		b.WriteString("\n")
	}
	for _, r := range page {
		b.WriteString(fmt.Sprintf("%-10s %-24s %-28s %-12s %s\n",
			r.RequestID(),
			truncate(r.Details.CompanyName, 24),
			truncate(r.Filename, 28),
			r.Status,
			r.CreatedAt.Format("2006-01-02"),
		))
	}

	b.WriteString("\n")
	if window.TotalPages > 1 {
		b.WriteString(renderPageWindow(window))
		b.WriteString("\n")
	}
	b.WriteString(tabStyle.Render("/ search · s status · tab switch · ←/→ page · q quit"))
	b.WriteString("\n")

	return b.String()
}

func renderTab(label string, active bool) string {
	if active {
		return activeTab.Render(label)
	}
	return tabStyle.Render(label)
}

// renderPageWindow renders the centered page-number window with the
// current page highlighted.
func renderPageWindow(p pager.Page) string {
	nums := pager.PageNumbers(p.Number, p.TotalPages)
	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		if n == p.Number {
			parts = append(parts, activeTab.Render(fmt.Sprintf("[%d]", n)))
		} else {
			parts = append(parts, fmt.Sprintf(" %d ", n))
		}
	}
	return fmt.Sprintf("Showing %d to %d of %d entries   %s",
		p.StartIndex+1, p.EndIndex, p.Total, strings.Join(parts, ""))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
