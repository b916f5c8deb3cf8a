package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/blockfall/internal/replay"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Replay browser layout constants
const (
	maxReplays      = 100 // Max replays to load
	minWidthForInfo = 90  // Minimum width to show the detail panel beside the table
	infoWidth       = 30
)

// verification is the outcome of re-simulating one replay.
type verification struct {
	id     string
	replay replay.Replay
	score  int
	lines  int
	err    error
}

// ReplayBrowserModel lists stored replays in a table. Selecting a row
// re-simulates it and shows the recomputed result.
type ReplayBrowserModel struct {
	store     *storage.Store
	records   []storage.ReplayRecord
	loadErr   error
	table     table.Model
	help      help.Model
	keys      MenuKeyMap
	styles    browserStyles
	checked   *verification
	width     int
	height    int
	quitting  bool
	goingBack bool
}

type browserStyles struct {
	title lipgloss.Style
	box   lipgloss.Style
	muted lipgloss.Style
	good  lipgloss.Style
	bad   lipgloss.Style
	help  lipgloss.Style
}

func newBrowserStyles(r *lipgloss.Renderer) browserStyles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return browserStyles{
		title: r.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		box:   r.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		muted: r.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		good:  r.NewStyle().Foreground(lipgloss.Color("10")),
		bad:   r.NewStyle().Foreground(lipgloss.Color("9")),
		help:  r.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// NewReplayBrowserModel creates a browser over the newest replays. When
// selectID is non-empty that replay is preselected and verified.
func NewReplayBrowserModel(store *storage.Store, width, height int, selectID string, r *lipgloss.Renderer) ReplayBrowserModel {
	h := help.New()
	h.Width = width

	m := ReplayBrowserModel{
		store:  store,
		keys:   DefaultMenuKeyMap(),
		help:   h,
		styles: newBrowserStyles(r),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.loadReplays()

	if selectID != "" {
		for i, rec := range m.records {
			if strings.HasPrefix(rec.ID, selectID) {
				m.table.SetCursor(i)
				m.verifySelected()
				break
			}
		}
	}
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplayBrowserModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Game", Width: 8},
		{Title: "Seed", Width: 20},
		{Title: "Length", Width: 8},
		{Title: "Recorded", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReplays reloads the newest replays from the store.
func (m *ReplayBrowserModel) loadReplays() {
	m.records, m.loadErr = nil, nil
	if m.store != nil {
		m.records, m.loadErr = m.store.RecentReplays(maxReplays)
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current records.
func (m *ReplayBrowserModel) updateTableRows() {
	rows := make([]table.Row, len(m.records))
	for i, rec := range m.records {
		r := replay.Replay{Ticks: rec.Ticks, TickRate: rec.TickRate}
		rows[i] = table.Row{
			shortID(rec.ID),
			rec.GameID,
			fmt.Sprintf("%d", rec.Seed),
			r.Duration().Truncate(time.Second).String(),
			humanize.Time(rec.CreatedAt),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *ReplayBrowserModel) selectedRecord() (storage.ReplayRecord, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.records) {
		return storage.ReplayRecord{}, false
	}
	return m.records[i], true
}

// verifySelected loads the selected replay's input log and re-simulates it.
func (m *ReplayBrowserModel) verifySelected() {
	rec, ok := m.selectedRecord()
	if !ok || m.store == nil {
		return
	}

	v := &verification{id: rec.ID}
	m.checked = v

	full, err := m.store.Replay(rec.ID)
	if err != nil {
		v.err = err
		return
	}
	r, err := replay.FromRecord(*full)
	if err != nil {
		v.err = err
		return
	}
	v.replay = r
	st, err := replay.Verify(r)
	v.score, v.lines, v.err = st.Score, st.Lines, err
}

// deleteSelected removes the selected replay.
func (m *ReplayBrowserModel) deleteSelected() {
	rec, ok := m.selectedRecord()
	if !ok || m.store == nil {
		return
	}
	if err := m.store.DeleteReplay(rec.ID); err != nil {
		m.loadErr = err
		return
	}
	if m.checked != nil && m.checked.id == rec.ID {
		m.checked = nil
	}
	m.loadReplays()
}

// Init initializes the browser.
func (m ReplayBrowserModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m ReplayBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			m.verifySelected()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.deleteSelected()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m ReplayBrowserModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := fmt.Sprintf("REPLAYS (%s)", humanize.Comma(int64(len(m.records))))
	b.WriteString(m.styles.title.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableBox := m.styles.box.Render(m.renderTableContent())
	if m.width >= minWidthForInfo {
		info := m.styles.box.Width(infoWidth).Render(m.renderInfo())
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tableBox, "  ", info))
	} else {
		b.WriteString(tableBox)
		b.WriteString("\n")
		b.WriteString(m.renderInfo())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.help.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or an empty/error message.
func (m ReplayBrowserModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return m.styles.muted.Render("Replay storage is unavailable.")
	case m.loadErr != nil:
		return m.styles.bad.Render("Error: " + m.loadErr.Error())
	case len(m.records) == 0:
		return m.styles.muted.Padding(2, 4).Render("No replays recorded yet.\nFinish a game to record one!")
	}
	return m.table.View()
}

// renderInfo describes the last verified replay.
func (m ReplayBrowserModel) renderInfo() string {
	v := m.checked
	if v == nil {
		return m.styles.muted.Render("Enter: verify replay\nd: delete replay")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Replay %s\n\n", shortID(v.id))
	if v.replay.GameID != "" {
		fmt.Fprintf(&b, "Frames:  %s\n", humanize.Comma(int64(v.replay.Ticks)))
		fmt.Fprintf(&b, "Inputs:  %s\n", humanize.Comma(int64(v.replay.Inputs())))
		fmt.Fprintf(&b, "Score:   %s\n", humanize.Comma(int64(v.score)))
		fmt.Fprintf(&b, "Lines:   %d\n\n", v.lines)
	}

	switch {
	case v.err != nil:
		b.WriteString(m.styles.bad.Render("✗ " + v.err.Error()))
	case v.replay.Complete:
		b.WriteString(m.styles.good.Render("✓ verified"))
	default:
		b.WriteString(m.styles.muted.Render("unfinished game, replays cleanly"))
	}
	return b.String()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplayBrowserModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplayBrowserModel) IsQuitting() bool {
	return m.quitting
}

// RunReplayBrowser runs the replay browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunReplayBrowser(store *storage.Store, width, height int, selectID string) (goBack bool, err error) {
	p := tea.NewProgram(
		NewReplayBrowserModel(store, width, height, selectID, nil),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ReplayBrowserModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
