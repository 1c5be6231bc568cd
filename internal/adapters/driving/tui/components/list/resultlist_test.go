package list

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

func testResults() []domain.SearchResult {
	return []domain.SearchResult{
		{
			CaseName:    "Smith v. Jones",
			AbsoluteURL: "https://www.courtlistener.com/opinion/1/smith-v-jones/",
			Similarity:  87,
			Court:       "scotus",
			DateFiled:   "1990-01-02",
			Opinions: []domain.Opinion{
				{Snippet: "The lease\nwas   terminated", DownloadURL: "https://example.com/1.pdf"},
			},
		},
		{
			CaseName:    "Doe v. Roe",
			AbsoluteURL: "https://www.courtlistener.com/opinion/2/doe-v-roe/",
			Similarity:  42,
			Opinions:    []domain.Opinion{{DownloadURL: "https://example.com/2.pdf"}},
		},
	}
}

func TestNewCaseList(t *testing.T) {
	list := NewCaseList(nil)

	require.NotNil(t, list)
	assert.NotNil(t, list.styles)
	assert.True(t, list.IsEmpty())
	assert.Equal(t, domain.NoSelection, list.Open())
	assert.Nil(t, list.CursorResult())
}

func TestCaseList_View_Empty(t *testing.T) {
	list := NewCaseList(nil)

	assert.Contains(t, list.View(), "No matching cases")
}

func TestCaseList_View_Collapsed(t *testing.T) {
	list := NewCaseList(nil)
	list.SetDimensions(100, 30)
	list.SetResults(testResults())

	view := list.View()

	assert.Contains(t, view, "Cases (2)")
	assert.Contains(t, view, "Smith v. Jones")
	assert.Contains(t, view, "Doe v. Roe")
	assert.Contains(t, view, "87%")
	assert.NotContains(t, view, "terminated")
}

func TestCaseList_View_Expanded(t *testing.T) {
	list := NewCaseList(nil)
	list.SetDimensions(100, 30)
	list.SetResults(testResults())
	list.SetOpen(0)

	view := list.View()

	assert.Contains(t, view, "scotus · 1990-01-02")
	assert.Contains(t, view, "smith-v-jones")
	assert.Contains(t, view, "The lease was terminated")
}

func TestCaseList_View_ExpandedWithoutSnippet(t *testing.T) {
	list := NewCaseList(nil)
	list.SetDimensions(100, 30)
	list.SetResults(testResults())
	list.SetOpen(1)

	assert.Contains(t, list.View(), "(no snippet)")
}

func TestCaseList_Navigation(t *testing.T) {
	list := NewCaseList(nil)
	list.SetResults(testResults())

	list.MoveUp()
	assert.Equal(t, 0, list.Cursor())

	list.MoveDown()
	assert.Equal(t, 1, list.Cursor())

	list.MoveDown()
	assert.Equal(t, 1, list.Cursor())

	list.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	assert.Equal(t, 0, list.Cursor())

	list.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, "Doe v. Roe", list.CursorResult().CaseName)
}

func TestCaseList_SetOpen_OutOfRange(t *testing.T) {
	list := NewCaseList(nil)
	list.SetResults(testResults())

	list.SetOpen(5)
	assert.Equal(t, domain.NoSelection, list.Open())

	list.SetOpen(1)
	list.SetOpen(domain.NoSelection)
	assert.Equal(t, domain.NoSelection, list.Open())
}

func TestCaseList_SetResults_Resets(t *testing.T) {
	list := NewCaseList(nil)
	list.SetResults(testResults())
	list.MoveDown()
	list.SetOpen(1)

	list.SetResults(testResults()[:1])

	assert.Equal(t, 0, list.Cursor())
	assert.Equal(t, domain.NoSelection, list.Open())
	assert.Equal(t, 1, list.Count())
}

func TestCaseList_LongNameTruncated(t *testing.T) {
	list := NewCaseList(nil)
	list.SetDimensions(30, 10)
	list.SetResults([]domain.SearchResult{{
		CaseName: "A Very Long Case Name That Cannot Possibly Fit v. Another Party",
		Opinions: []domain.Opinion{{DownloadURL: "u"}},
	}})

	assert.Contains(t, list.View(), "...")
}
