package services

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

func TestSelectionController_StartsClosed(t *testing.T) {
	s := NewSelectionController()

	assert.Equal(t, domain.ClosedSelection(), s.State())
	assert.False(t, s.IsOpen(0))
}

func TestSelectionController_ToggleSequenceEndsClosed(t *testing.T) {
	s := NewSelectionController()

	require.NoError(t, s.Toggle(2, "url2"))
	assert.Equal(t, domain.SelectionState{OpenIndex: 2, DocumentURL: "url2"}, s.State())

	require.NoError(t, s.Toggle(0, "url0"))
	assert.Equal(t, domain.SelectionState{OpenIndex: 0, DocumentURL: "url0"}, s.State())
	assert.False(t, s.IsOpen(2))

	require.NoError(t, s.Toggle(0, "url0"))
	assert.Equal(t, domain.NoSelection, s.State().OpenIndex)
	assert.Empty(t, s.State().DocumentURL)
}

func TestSelectionController_ToggleTwiceCloses(t *testing.T) {
	for i := 0; i < 5; i++ {
		s := NewSelectionController()
		require.NoError(t, s.Toggle(i, "doc"))
		require.NoError(t, s.Toggle(i, "doc"))
		assert.False(t, s.State().IsOpen())
	}
}

func TestSelectionController_InvalidToggleLeavesState(t *testing.T) {
	tests := []struct {
		name  string
		index int
		url   string
	}{
		{"empty url", 1, ""},
		{"negative index", -1, "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelectionController()
			require.NoError(t, s.Toggle(3, "url3"))

			err := s.Toggle(tt.index, tt.url)

			assert.True(t, errors.Is(err, domain.ErrInvalidSelection))
			assert.Equal(t, domain.SelectionState{OpenIndex: 3, DocumentURL: "url3"}, s.State())
		})
	}
}

func TestSelectionController_ExclusivityUnderRandomToggles(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	s := NewSelectionController()

	for i := 0; i < 500; i++ {
		idx := rng.Intn(6) - 1
		url := ""
		if rng.Intn(5) > 0 {
			url = "doc"
		}
		_ = s.Toggle(idx, url)

		state := s.State()
		assert.Equal(t, state.IsOpen(), state.DocumentURL != "")
		open := 0
		for j := 0; j < 5; j++ {
			if s.IsOpen(j) {
				open++
			}
		}
		assert.LessOrEqual(t, open, 1)
	}
}

func TestSelectionController_Reset(t *testing.T) {
	s := NewSelectionController()
	require.NoError(t, s.Toggle(1, "url1"))

	s.Reset()

	assert.Equal(t, domain.ClosedSelection(), s.State())
}
