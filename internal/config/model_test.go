package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Merge(t *testing.T) {
	m := &Model{Units: []*Unit{{Name: "main"}}}
	err := m.Merge(&Model{
		Rocker:     &Rocker{Version: "2.0.0"},
		Units:      []*Unit{{Name: "test"}},
		SourceSets: []*SourceSet{{Name: "main"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "2.0.0", m.Rocker.Version)
	require.Len(t, m.Units, 2)
	assert.Equal(t, "test", m.Units[1].Name)
	assert.Len(t, m.SourceSets, 1)
}

func TestModel_MergeRejectsSecondRockerBlock(t *testing.T) {
	m := &Model{Rocker: &Rocker{}}
	assert.ErrorContains(t, m.Merge(&Model{Rocker: &Rocker{}}), "rocker block")

	m = &Model{Repository: &Repository{Path: "a"}}
	assert.ErrorContains(t, m.Merge(&Model{Repository: &Repository{Path: "b"}}), "repository block")
}
