// Package importer reads a YAML plan file and feeds its milestones through
// the store, so every entry gets the same range expansion a manual create
// would.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/akyairhashvil/timeplan/internal/models"
	"gopkg.in/yaml.v3"
)

var (
	ErrMissingName   = errors.New("name is required")
	ErrUnknownMarker = errors.New("unknown marker")
)

// MarkerRef is a catalog label or a 1-based catalog index.
type MarkerRef string

func (r *MarkerRef) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: marker must be a label or a number", value.Line)
	}
	*r = MarkerRef(value.Value)
	return nil
}

// Resolve looks the reference up in the catalog. Empty means the default marker.
func (r MarkerRef) Resolve() (models.MarkerDefinition, error) {
	ref := strings.TrimSpace(string(r))
	if ref == "" {
		return models.DefaultMarker(), nil
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if m, ok := models.MarkerAt(n - 1); ok {
			return m, nil
		}
		return models.MarkerDefinition{}, fmt.Errorf("%w: index %d", ErrUnknownMarker, n)
	}
	if m, ok := models.MarkerByLabel(ref); ok {
		return m, nil
	}
	return models.MarkerDefinition{}, fmt.Errorf("%w: %q", ErrUnknownMarker, ref)
}

type Entry struct {
	Name       string    `yaml:"name"`
	Date       string    `yaml:"date"`
	WeeksDelta string    `yaml:"weeksDelta"`
	Marker     MarkerRef `yaml:"marker"`
}

// Plan is the import document. Zero StartYear/YearsToShow leave the current
// window alone.
type Plan struct {
	StartYear   int     `yaml:"startYear"`
	YearsToShow int     `yaml:"yearsToShow"`
	Milestones  []Entry `yaml:"milestones"`
}

func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("error reading plan file: %w", err)
	}
	return ParsePlan(data)
}

func ParsePlan(data []byte) (Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("error parsing plan file: %w", err)
	}
	if plan.YearsToShow < 0 {
		return Plan{}, fmt.Errorf("error parsing plan file: yearsToShow must be positive")
	}
	return plan, nil
}

// Milestone validates e and converts it. The ID is left empty for the store
// to assign.
func (e Entry) Milestone() (models.Milestone, error) {
	name := strings.TrimSpace(e.Name)
	if name == "" {
		return models.Milestone{}, ErrMissingName
	}
	date, err := models.ParseDate(e.Date)
	if err != nil {
		return models.Milestone{}, err
	}
	marker, err := e.Marker.Resolve()
	if err != nil {
		return models.Milestone{}, err
	}
	return models.Milestone{
		Name:       name,
		Date:       date,
		WeeksDelta: strings.TrimSpace(e.WeeksDelta),
		Marker:     marker,
	}, nil
}

// EntryError reports one skipped entry.
type EntryError struct {
	Index int // 1-based
	Name  string
	Err   error
}

func (e *EntryError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("entry %d (%s): %v", e.Index, e.Name, e.Err)
	}
	return fmt.Sprintf("entry %d: %v", e.Index, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

type Result struct {
	Created []models.Milestone
	Skipped []*EntryError
}

// Target is the store surface an import needs.
type Target interface {
	Settings() models.Settings
	UpdateSettings(ctx context.Context, s models.Settings) error
	Create(ctx context.Context, m models.Milestone) (models.Milestone, error)
}

// Apply sets the plan's window (if any) and creates every valid entry.
// Invalid entries are skipped and reported; only a rejected window aborts.
func Apply(ctx context.Context, dst Target, plan Plan) (Result, error) {
	if plan.StartYear != 0 || plan.YearsToShow != 0 {
		next := dst.Settings()
		if plan.StartYear != 0 {
			next.StartYear = plan.StartYear
		}
		if plan.YearsToShow != 0 {
			next.YearsToShow = plan.YearsToShow
		}
		if next != dst.Settings() {
			if err := dst.UpdateSettings(ctx, next); err != nil {
				return Result{}, err
			}
		}
	}

	var res Result
	for i, e := range plan.Milestones {
		m, err := e.Milestone()
		if err == nil {
			m, err = dst.Create(ctx, m)
		}
		if err != nil {
			res.Skipped = append(res.Skipped, &EntryError{Index: i + 1, Name: strings.TrimSpace(e.Name), Err: err})
			continue
		}
		res.Created = append(res.Created, m)
	}
	return res, nil
}
