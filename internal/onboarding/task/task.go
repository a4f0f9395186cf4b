// Package task holds the immutable registry of onboarding task descriptors.
package task

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// FeatureLocation names the entity a task is scoped to.
type FeatureLocation string

const (
	FeatureOrganization FeatureLocation = "organization"
	FeatureProject      FeatureLocation = "project"
	FeatureAbsolute     FeatureLocation = "absolute"
)

// Valid reports whether l is a known feature location.
func (l FeatureLocation) Valid() bool {
	switch l {
	case FeatureOrganization, FeatureProject, FeatureAbsolute:
		return true
	default:
		return false
	}
}

// Descriptor is one onboarding step.
type Descriptor struct {
	ID              int             `yaml:"id"`
	Key             string          `yaml:"key"`
	Title           string          `yaml:"title"`
	Description     string          `yaml:"description"`
	FeatureLocation FeatureLocation `yaml:"feature_location"`
	// Location is a path fragment relative to the feature scope, or a full URL
	// for absolute tasks.
	Location      string `yaml:"location"`
	Skippable     bool   `yaml:"skippable"`
	Prerequisites []int  `yaml:"prerequisites"`
}

// ErrInvalidRegistry marks registry files that fail validation.
var ErrInvalidRegistry = errors.New("invalid task registry")

//go:embed tasks.yaml
var defaultTasks []byte

// Registry is an immutable, id-ordered set of descriptors. The zero value is
// an empty registry.
type Registry struct {
	tasks []Descriptor
	byID  map[int]int
}

// Default returns the registry compiled into the binary.
func Default() (Registry, error) {
	return Load(bytes.NewReader(defaultTasks))
}

// LoadFile reads a registry from a YAML file.
func LoadFile(path string) (Registry, error) {
	file, err := os.Open(path)
	if err != nil {
		return Registry{}, fmt.Errorf("open task registry: %w", err)
	}
	defer file.Close()
	return Load(file)
}

// Load parses and validates a YAML registry.
func Load(r io.Reader) (Registry, error) {
	var doc struct {
		Tasks []Descriptor `yaml:"tasks"`
	}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Registry{}, fmt.Errorf("%w: empty document", ErrInvalidRegistry)
		}
		return Registry{}, fmt.Errorf("%w: %v", ErrInvalidRegistry, err)
	}
	return New(doc.Tasks)
}

// New validates descriptors and builds a registry. Descriptors are copied.
func New(descriptors []Descriptor) (Registry, error) {
	tasks := make([]Descriptor, 0, len(descriptors))
	byID := make(map[int]int, len(descriptors))
	for _, d := range descriptors {
		d.Key = strings.TrimSpace(d.Key)
		d.Title = strings.TrimSpace(d.Title)
		d.Location = strings.TrimSpace(d.Location)
		d.FeatureLocation = FeatureLocation(strings.ToLower(strings.TrimSpace(string(d.FeatureLocation))))
		d.Prerequisites = append([]int(nil), d.Prerequisites...)
		if d.ID <= 0 {
			return Registry{}, fmt.Errorf("%w: task id %d must be positive", ErrInvalidRegistry, d.ID)
		}
		if _, dup := byID[d.ID]; dup {
			return Registry{}, fmt.Errorf("%w: duplicate task id %d", ErrInvalidRegistry, d.ID)
		}
		if !d.FeatureLocation.Valid() {
			return Registry{}, fmt.Errorf("%w: task %d has unknown feature location %q", ErrInvalidRegistry, d.ID, d.FeatureLocation)
		}
		if d.Location == "" {
			return Registry{}, fmt.Errorf("%w: task %d location is required", ErrInvalidRegistry, d.ID)
		}
		if d.Title == "" {
			return Registry{}, fmt.Errorf("%w: task %d title is required", ErrInvalidRegistry, d.ID)
		}
		byID[d.ID] = len(tasks)
		tasks = append(tasks, d)
	}
	for _, d := range tasks {
		for _, prereq := range d.Prerequisites {
			if prereq == d.ID {
				return Registry{}, fmt.Errorf("%w: task %d lists itself as a prerequisite", ErrInvalidRegistry, d.ID)
			}
			if _, ok := byID[prereq]; !ok {
				return Registry{}, fmt.Errorf("%w: task %d prerequisite %d is not defined", ErrInvalidRegistry, d.ID, prereq)
			}
		}
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	for idx, d := range tasks {
		byID[d.ID] = idx
	}
	return Registry{tasks: tasks, byID: byID}, nil
}

// Len returns the number of descriptors.
func (r Registry) Len() int { return len(r.tasks) }

// All returns a copy of every descriptor in id order.
func (r Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.tasks))
	for idx, d := range r.tasks {
		out[idx] = d.clone()
	}
	return out
}

// Get returns the descriptor with id.
func (r Registry) Get(id int) (Descriptor, bool) {
	idx, ok := r.byID[id]
	if !ok {
		return Descriptor{}, false
	}
	return r.tasks[idx].clone(), true
}

// Match returns every descriptor whose id equals the query value. Ids are
// unique, so the result holds at most one entry.
func (r Registry) Match(query string) []Descriptor {
	id, ok := ParseID(query)
	if !ok {
		return nil
	}
	d, ok := r.Get(id)
	if !ok {
		return nil
	}
	return []Descriptor{d}
}

// Lookup returns the first descriptor matching the query value.
func (r Registry) Lookup(query string) (Descriptor, bool) {
	matches := r.Match(query)
	if len(matches) == 0 {
		return Descriptor{}, false
	}
	return matches[0], true
}

// ParseID reads a task id from a query value. Surrounding space and leading
// zeros are accepted, so "2", " 2" and "02" all name task 2.
func ParseID(query string) (int, bool) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, false
	}
	id, err := strconv.Atoi(query)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func (d Descriptor) clone() Descriptor {
	d.Prerequisites = append([]int(nil), d.Prerequisites...)
	return d
}
