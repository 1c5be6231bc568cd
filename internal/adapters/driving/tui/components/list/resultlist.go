// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/citewise/internal/core/domain"
)

// CaseList displays published cases as an accordion. The cursor is the
// highlighted row; the open row is owned by the selection controller and
// only mirrored here for rendering.
type CaseList struct {
	results []domain.SearchResult
	cursor  int
	open    int
	styles  *styles.Styles
	width   int
	height  int
}

// NewCaseList creates a new case list component.
func NewCaseList(s *styles.Styles) *CaseList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &CaseList{
		results: nil,
		cursor:  0,
		open:    domain.NoSelection,
		styles:  s,
		width:   80,
		height:  10,
	}
}

// Init initialises the case list.
func (c *CaseList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (c *CaseList) Update(msg tea.Msg) (*CaseList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			c.MoveUp()
		case "down", "j":
			c.MoveDown()
		}
	}
	return c, nil
}

// View renders the case list.
func (c *CaseList) View() string {
	if len(c.results) == 0 {
		return c.styles.Muted.Render("No matching cases")
	}

	lines := make([]string, 0, len(c.results)*2+2)
	lines = append(lines, c.styles.Subtitle.Render(fmt.Sprintf("Cases (%d)", len(c.results))), "")

	// Collapsed rows take one line; the open row takes more, so scroll
	// on the cursor with a conservative window.
	visible := c.height - 4
	if c.open != domain.NoSelection {
		visible -= 2 + 2*len(c.results[c.open].Opinions)
	}
	if visible < 1 {
		visible = 1
	}

	start := 0
	if c.cursor >= visible {
		start = c.cursor - visible + 1
	}
	end := start + visible
	if end > len(c.results) {
		end = len(c.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, c.renderRow(i, &c.results[i]))
	}

	return strings.Join(lines, "\n")
}

// renderRow formats one case, expanded when it is the open row.
func (c *CaseList) renderRow(index int, result *domain.SearchResult) string {
	marker := "▸ "
	if index == c.open {
		marker = "▾ "
	}

	score := fmt.Sprintf("%3.0f%%", result.Similarity)
	maxName := c.width - len(score) - 6
	if maxName < 10 {
		maxName = 10
	}
	name := truncate.StringWithTail(result.CaseName, uint(maxName), "...")

	var row string
	if index == c.cursor {
		row = c.styles.Selected.Render(fmt.Sprintf("%s%-*s ", marker, maxName, name)) + " " + c.styles.Score.Render(score)
	} else {
		row = c.styles.Normal.Render(fmt.Sprintf("%s%-*s ", marker, maxName, name)) + " " + c.styles.Muted.Render(score)
	}

	if index != c.open {
		return row
	}

	details := make([]string, 0, 2+len(result.Opinions))
	meta := strings.TrimSpace(strings.Join(nonEmpty(result.Court, result.DateFiled), " · "))
	if meta != "" {
		details = append(details, c.styles.Muted.Render("    "+meta))
	}
	details = append(details, c.styles.Link.Render("    "+result.AbsoluteURL))

	maxSnippet := c.width - 8
	if maxSnippet < 20 {
		maxSnippet = 20
	}
	for i, op := range result.Opinions {
		snippet := strings.Join(strings.Fields(op.Snippet), " ")
		if snippet == "" {
			snippet = "(no snippet)"
		}
		details = append(details, c.styles.Normal.Render(
			fmt.Sprintf("    %d. %s", i+1, truncate.StringWithTail(snippet, uint(maxSnippet), "..."))))
	}

	return row + "\n" + strings.Join(details, "\n")
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SetResults replaces the cases and resets the cursor and open row.
func (c *CaseList) SetResults(results []domain.SearchResult) {
	c.results = results
	c.cursor = 0
	c.open = domain.NoSelection
}

// Results returns the current cases.
func (c *CaseList) Results() []domain.SearchResult {
	return c.results
}

// SetOpen mirrors the open row from the selection state.
func (c *CaseList) SetOpen(index int) {
	if index < 0 || index >= len(c.results) {
		c.open = domain.NoSelection
		return
	}
	c.open = index
}

// Open returns the mirrored open row.
func (c *CaseList) Open() int {
	return c.open
}

// Cursor returns the index of the highlighted case.
func (c *CaseList) Cursor() int {
	return c.cursor
}

// CursorResult returns the highlighted case, or nil if none.
func (c *CaseList) CursorResult() *domain.SearchResult {
	if len(c.results) == 0 || c.cursor < 0 || c.cursor >= len(c.results) {
		return nil
	}
	return &c.results[c.cursor]
}

// MoveUp moves the cursor up.
func (c *CaseList) MoveUp() {
	if c.cursor > 0 {
		c.cursor--
	}
}

// MoveDown moves the cursor down.
func (c *CaseList) MoveDown() {
	if c.cursor < len(c.results)-1 {
		c.cursor++
	}
}

// SetDimensions sets the component dimensions.
func (c *CaseList) SetDimensions(width, height int) {
	c.width = width
	c.height = height
}

// Count returns the number of cases.
func (c *CaseList) Count() int {
	return len(c.results)
}

// IsEmpty returns whether the list is empty.
func (c *CaseList) IsEmpty() bool {
	return len(c.results) == 0
}
