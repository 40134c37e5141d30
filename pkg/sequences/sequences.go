// Package sequences loads named sequence configurations for the choreo
// engine, either from YAML files or from the built-in set bundled with the
// library. It is the engine's configuration source; the engine itself only
// ever sees parsed SequenceConfig values.
package sequences

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/choreo/pkg/animation"
	"github.com/go-drift/choreo/pkg/choreo"
)

// File is the on-disk YAML shape of a sequence configuration. Durations are
// integer milliseconds to keep hand-written files unambiguous.
type File struct {
	Name             string        `yaml:"name"`
	Description      string        `yaml:"description,omitempty"`
	Pattern          string        `yaml:"pattern"`
	PageTransitionMS int           `yaml:"page_transition_ms"`
	StaggerMS        int           `yaml:"stagger_ms"`
	Elements         []ElementFile `yaml:"elements"`

	// Source records where the config came from: a file path or "builtin".
	Source string `yaml:"-"`
}

// ElementFile is the YAML shape of one staggered element.
type ElementFile struct {
	Type       string  `yaml:"type"`
	DurationMS int     `yaml:"duration_ms"`
	DelayMS    int     `yaml:"delay_ms,omitempty"`
	OffsetX    float64 `yaml:"offset_x,omitempty"`
	OffsetY    float64 `yaml:"offset_y,omitempty"`
	StartScale float64 `yaml:"start_scale,omitempty"`
	EndScale   float64 `yaml:"end_scale,omitempty"`
}

// Config converts the file into an engine configuration.
func (f *File) Config() (choreo.SequenceConfig, error) {
	pattern, err := choreo.ParsePattern(f.Pattern)
	if err != nil {
		return choreo.SequenceConfig{}, err
	}

	cfg := choreo.SequenceConfig{
		Name:           f.Name,
		Pattern:        pattern,
		PageTransition: time.Duration(f.PageTransitionMS) * time.Millisecond,
		StaggerDelay:   time.Duration(f.StaggerMS) * time.Millisecond,
	}
	for _, el := range f.Elements {
		spec := choreo.ElementSpec{
			Type:        el.Type,
			Duration:    time.Duration(el.DurationMS) * time.Millisecond,
			Delay:       time.Duration(el.DelayMS) * time.Millisecond,
			StartOffset: animation.Offset{X: el.OffsetX, Y: el.OffsetY},
			StartScale:  el.StartScale,
			EndScale:    el.EndScale,
		}
		if spec.StartScale == 0 {
			spec.StartScale = 1
		}
		if spec.EndScale == 0 {
			spec.EndScale = 1
		}
		cfg.Elements = append(cfg.Elements, spec)
	}
	return cfg, nil
}

func parseFile(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" {
		return nil, fmt.Errorf("sequence name is required")
	}
	f.Pattern = strings.TrimSpace(f.Pattern)
	if f.Pattern == "" {
		return nil, fmt.Errorf("sequence pattern is required")
	}
	if _, err := choreo.ParsePattern(f.Pattern); err != nil {
		return nil, err
	}
	if f.PageTransitionMS < 0 || f.StaggerMS < 0 {
		return nil, fmt.Errorf("sequence durations must be non-negative")
	}
	for i, el := range f.Elements {
		if strings.TrimSpace(el.Type) == "" {
			return nil, fmt.Errorf("element %d: type is required", i)
		}
		if el.DurationMS < 0 || el.DelayMS < 0 {
			return nil, fmt.Errorf("element %d: durations must be non-negative", i)
		}
	}
	return &f, nil
}
