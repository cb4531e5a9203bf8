package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deepspace-navigator/internal/geometry"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "advanced", "scenario_12.json"), `{"source": [0, 0], "targets": [[12, 0]]}`)
	writeFile(t, filepath.Join(root, "advanced", "scenario_7.json"), `{"source": [0, 0], "targets": [[7, 0]]}`)
	writeFile(t, filepath.Join(root, "basic", "scenario_2.json"), `{"source": [0, 0], "targets": [[2, 0]]}`)
	writeFile(t, filepath.Join(root, "basic", "scenario_10.json"), `{"source": [0, 0], "targets": [[10, 0]]}`)
	writeFile(t, filepath.Join(root, "basic", "notes.txt"), "ignored")
	writeFile(t, filepath.Join(root, "empty", "readme.md"), "no scenarios here")

	names := filepath.Join(t.TempDir(), "scenario_names.json")
	writeFile(t, names, `{"2": "First contact", "7": "Through the belt", "10": "Radar alley"}`)

	repo, err := Open(root, Options{NamesFile: names})
	require.NoError(t, err)
	return repo
}

func TestRepositoryOrdering(t *testing.T) {
	repo := newTestRepository(t)

	groups := repo.Groups()
	require.Len(t, groups, 2, "groups without scenarios are skipped")
	assert.Equal(t, "basic", groups[0].Name)
	assert.Equal(t, "advanced", groups[1].Name)

	var numbers []int
	for _, e := range groups[0].Scenarios {
		numbers = append(numbers, e.Number)
	}
	assert.Equal(t, []int{2, 10}, numbers, "numeric, not lexical, order")
	assert.Equal(t, 4, repo.Len())
}

func TestRepositoryLabels(t *testing.T) {
	repo := newTestRepository(t)

	entries, err := repo.Scenarios("advanced")
	require.NoError(t, err)
	assert.Equal(t, "Scenario #7 - Through the belt", entries[0].Label)
	assert.Equal(t, "Scenario #12", entries[1].Label)
	assert.Equal(t, "Scenario #10 - Radar alley", repo.Label(10))
}

func TestRepositoryLoad(t *testing.T) {
	repo := newTestRepository(t)

	s, err := repo.Load("advanced", 12)
	require.NoError(t, err)
	assert.Equal(t, []geometry.Point{geometry.Pt(12, 0)}, s.Targets)

	again, err := repo.Load("advanced", 12)
	require.NoError(t, err)
	assert.NotSame(t, s, again)

	raw, err := repo.Raw("basic", 2)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `[[2, 0]]`)
}

func TestRepositoryNotFound(t *testing.T) {
	repo := newTestRepository(t)

	_, err := repo.Load("basic", 7)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Load("missing", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.Scenarios("empty")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope"), Options{})
	assert.Error(t, err)

	names := filepath.Join(t.TempDir(), "names.json")
	writeFile(t, names, `{"one": "bad key"}`)
	_, err = Open(t.TempDir(), Options{NamesFile: names})
	assert.ErrorIs(t, err, ErrMalformed)
}
