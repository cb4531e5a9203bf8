package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
)

var scenarioFile = regexp.MustCompile(`^scenario_(\d+)\.json$`)

// Options configures a Repository
type Options struct {
	// NamesFile maps scenario numbers to display names: {"1": "name", ...}.
	// Optional.
	NamesFile string
	// SimplifyTolerance and MergeTolerance are passed to Decode for imported
	// GeoJSON zones
	SimplifyTolerance float64
	MergeTolerance    float64
}

// Entry is one scenario file in a group
type Entry struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
	path   string
}

// Group is a directory of scenarios, ordered by number
type Group struct {
	Name      string  `json:"name"`
	Scenarios []Entry `json:"scenarios"`
}

// Repository indexes a scenario directory laid out as
// <root>/<group>/scenario_<N>.json. The index is built once in Open; the
// repository is read-only afterwards and safe for concurrent use.
type Repository struct {
	root    string
	names   map[int]string
	groups  []Group
	byGroup map[string]map[int]Entry
	decode  DecodeOptions
}

// Open scans root and the optional names file
func Open(root string, opts Options) (*Repository, error) {
	names, err := loadNames(opts.NamesFile)
	if err != nil {
		return nil, err
	}

	dirs, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario root: %w", err)
	}

	r := &Repository{
		root:    root,
		names:   names,
		byGroup: make(map[string]map[int]Entry),
		decode: DecodeOptions{
			SimplifyTolerance: opts.SimplifyTolerance,
			MergeTolerance:    opts.MergeTolerance,
		},
	}
	for _, d := range dirs {
		if !d.IsDir() {
			continue
		}
		files, err := os.ReadDir(filepath.Join(root, d.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read group %s: %w", d.Name(), err)
		}

		g := Group{Name: d.Name()}
		entries := make(map[int]Entry)
		for _, f := range files {
			m := scenarioFile.FindStringSubmatch(f.Name())
			if f.IsDir() || m == nil {
				continue
			}
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			e := Entry{Number: n, Label: r.Label(n), path: filepath.Join(root, d.Name(), f.Name())}
			g.Scenarios = append(g.Scenarios, e)
			entries[n] = e
		}
		if len(g.Scenarios) == 0 {
			continue
		}
		sort.Slice(g.Scenarios, func(i, j int) bool {
			return g.Scenarios[i].Number < g.Scenarios[j].Number
		})
		r.groups = append(r.groups, g)
		r.byGroup[g.Name] = entries
	}

	// Groups are ordered by the lowest scenario number they hold
	sort.Slice(r.groups, func(i, j int) bool {
		a, b := r.groups[i].Scenarios[0].Number, r.groups[j].Scenarios[0].Number
		if a != b {
			return a < b
		}
		return r.groups[i].Name < r.groups[j].Name
	})
	return r, nil
}

func loadNames(path string) (map[int]string, error) {
	names := make(map[int]string)
	if path == "" {
		return names, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario names: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: names file: %v", ErrMalformed, err)
	}
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("%w: names file key %q is not a number", ErrMalformed, k)
		}
		names[n] = v
	}
	return names, nil
}

// Root returns the scenario directory
func (r *Repository) Root() string {
	return r.root
}

// Groups returns all groups. The slice is shared and must not be modified.
func (r *Repository) Groups() []Group {
	return r.groups
}

// Len returns the total number of scenarios
func (r *Repository) Len() int {
	n := 0
	for _, g := range r.groups {
		n += len(g.Scenarios)
	}
	return n
}

// Scenarios lists one group's entries
func (r *Repository) Scenarios(group string) ([]Entry, error) {
	for _, g := range r.groups {
		if g.Name == group {
			return g.Scenarios, nil
		}
	}
	return nil, fmt.Errorf("%w: group %q", ErrNotFound, group)
}

// Label formats the display label for scenario n
func (r *Repository) Label(n int) string {
	if name, ok := r.names[n]; ok {
		return fmt.Sprintf("Scenario #%d - %s", n, name)
	}
	return fmt.Sprintf("Scenario #%d", n)
}

// Path returns the file backing (group, n)
func (r *Repository) Path(group string, n int) (string, error) {
	entries, ok := r.byGroup[group]
	if !ok {
		return "", fmt.Errorf("%w: group %q", ErrNotFound, group)
	}
	e, ok := entries[n]
	if !ok {
		return "", fmt.Errorf("%w: %s #%d", ErrNotFound, group, n)
	}
	return e.path, nil
}

// Load reads and decodes scenario n of group. Each call returns a fresh
// Scenario.
func (r *Repository) Load(group string, n int) (*Scenario, error) {
	path, err := r.Path(group, n)
	if err != nil {
		return nil, err
	}
	return LoadFile(path, r.decode)
}

// Raw returns the scenario file's bytes as stored
func (r *Repository) Raw(group string, n int) ([]byte, error) {
	path, err := r.Path(group, n)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	return data, nil
}
