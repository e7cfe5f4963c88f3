// Package tui provides interactive terminal UI components.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lepinkainen/bibliotheca/internal/openlibrary"
)

const (
	defaultListWidth  = 72
	defaultListHeight = 20
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m).Run()
}

// SelectionAction represents the user's action in the selection UI.
type SelectionAction int

const (
	// ActionNone indicates no action was taken.
	ActionNone SelectionAction = iota
	// ActionSelected indicates the user selected an item.
	ActionSelected
	// ActionSkipped indicates the user skipped the selection.
	ActionSkipped
)

// SelectionResult holds the result of a TUI selection.
type SelectionResult struct {
	Action    SelectionAction
	Selection *openlibrary.SearchHit
}

type hitItem struct {
	openlibrary.SearchHit
}

func (i hitItem) FilterValue() string {
	return i.SearchHit.Title
}

type itemStyles struct {
	normal        lipgloss.Style
	selected      lipgloss.Style
	titleStyle    lipgloss.Style
	authorStyle   lipgloss.Style
	metadataStyle lipgloss.Style
	subjectStyle  lipgloss.Style
}

func newItemStyles() itemStyles {
	asciiBorder := lipgloss.Border{
		Top:         "-",
		Bottom:      "-",
		Left:        "|",
		Right:       "|",
		TopLeft:     "+",
		TopRight:    "+",
		BottomLeft:  "+",
		BottomRight: "+",
	}

	container := lipgloss.NewStyle().
		Border(asciiBorder).
		BorderForeground(lipgloss.Color("62")).
		Padding(0, 1).
		Foreground(lipgloss.Color("252"))

	selected := container.Copy().
		BorderForeground(lipgloss.Color("214")).
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("237"))

	return itemStyles{
		normal:   container,
		selected: selected,
		titleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254")),
		authorStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("110")),
		metadataStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("247")).
			Faint(true),
		subjectStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color("248")),
	}
}

type hitDelegate struct {
	styles itemStyles
}

func newDelegate() hitDelegate {
	return hitDelegate{styles: newItemStyles()}
}

func (d hitDelegate) Height() int                         { return 4 }
func (d hitDelegate) Spacing() int                        { return 1 }
func (d hitDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d hitDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	hit, ok := item.(hitItem)
	if !ok {
		return
	}

	title := hit.SearchHit.Title
	if hit.PublishYear != 0 {
		title = fmt.Sprintf("%s (%d)", title, hit.PublishYear)
	}

	titleLine := d.styles.titleStyle.Render(title)
	authorLine := d.styles.authorStyle.Render(strings.Join(hit.Authors, ", "))
	metadataLine := d.styles.metadataStyle.Render(formatMetadata(hit.SearchHit))
	subjectLine := d.styles.subjectStyle.Render(truncate(strings.Join(hit.Subjects, ", "), m.Width()-4))

	content := lipgloss.JoinVertical(lipgloss.Left, titleLine, authorLine, metadataLine, subjectLine)

	container := d.styles.normal
	if idx == m.Index() {
		container = d.styles.selected
	}
	_, _ = fmt.Fprint(w, container.Render(content))
}

type model struct {
	list        list.Model
	searchQuery string
	result      SelectionResult
}

func newModel(query string, items []hitItem) *model {
	listItems := make([]list.Item, len(items))
	for i, item := range items {
		listItems[i] = item
	}

	delegate := newDelegate()
	l := list.New(listItems, delegate, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowPagination(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = lipgloss.NewStyle()

	return &model{
		list:        l,
		searchQuery: query,
		result: SelectionResult{
			Action: ActionNone,
		},
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if selected, ok := m.list.SelectedItem().(hitItem); ok {
				hit := selected.SearchHit
				m.result = SelectionResult{
					Action:    ActionSelected,
					Selection: &hit,
				}
				return m, tea.Quit
			}
		case "ctrl+c", "q", "esc", "s":
			m.result = SelectionResult{Action: ActionSkipped}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 40)
		height := clamp(defaultListHeight, msg.Height-6, 5)
		m.list.SetSize(width, height)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *model) View() string {
	header := headerStyle.Render(fmt.Sprintf("Results for: %s", m.searchQuery))
	listView := m.list.View()
	help := helpStyle.Render("Up/Down navigate | Enter import | Esc/q cancel")
	return lipgloss.JoinVertical(lipgloss.Left, header, listView, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Select presents an interactive selection UI for OpenLibrary search hits.
func Select(query string, hits []openlibrary.SearchHit) (SelectionResult, error) {
	if len(hits) == 0 {
		return SelectionResult{Action: ActionSkipped}, nil
	}

	items := make([]hitItem, len(hits))
	for i, hit := range hits {
		items[i] = hitItem{SearchHit: hit}
	}
	m := newModel(query, items)
	finalModel, err := runProgram(m)
	if err != nil {
		return SelectionResult{}, err
	}

	if typed, ok := finalModel.(*model); ok {
		return typed.result, nil
	}

	return SelectionResult{}, fmt.Errorf("unexpected program result")
}

func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || len(value) <= width {
		return value
	}
	if width <= 3 {
		return value[:width]
	}
	return value[:width-3] + "..."
}

// formatMetadata creates the metadata line with ISBN and cover availability.
func formatMetadata(hit openlibrary.SearchHit) string {
	var parts []string
	if hit.ISBN != "" {
		parts = append(parts, "ISBN "+hit.ISBN)
	}
	if hit.CoverURL != "" {
		parts = append(parts, "cover available")
	}
	if len(parts) == 0 {
		return "no edition data"
	}
	return strings.Join(parts, " | ")
}

func clamp(preferred, available, minimum int) int {
	if available <= 0 {
		return preferred
	}
	if available < minimum {
		return minimum
	}
	if available < preferred {
		return available
	}
	return preferred
}
