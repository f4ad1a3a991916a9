package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"gopkg.in/yaml.v3"
)

// Script is a sequence of navigation steps read from YAML:
//
//	steps:
//	  - push: home.html
//	  - push: detail.html
//	    options:
//	      animation: none
//	      params: {title: Portal}
//	  - pop: true
//	  - reset: home.html
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is a single operation. Exactly one of Push, Pop or Reset is set.
type Step struct {
	Push    string         `yaml:"push"`
	Pop     bool           `yaml:"pop"`
	Reset   string         `yaml:"reset"`
	Options map[string]any `yaml:"options"`
}

var errEmptyScript = errors.New("script has no steps")

func LoadScript(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if len(s.Steps) == 0 {
		return nil, errEmptyScript
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

func (s Step) validate() error {
	set := 0
	if s.Push != "" {
		set++
	}
	if s.Pop {
		set++
	}
	if s.Reset != "" {
		set++
	}
	if set != 1 {
		return errors.New("exactly one of push, pop or reset is required")
	}
	if s.Pop && s.Options != nil {
		return errors.New("pop takes no options")
	}
	return nil
}

func (s Step) String() string {
	switch {
	case s.Push != "":
		return "push " + s.Push
	case s.Reset != "":
		return "reset " + s.Reset
	default:
		return "pop"
	}
}

// Run queues the step on nav.
func (s Step) Run(nav *navigator.Navigator) error {
	if s.Pop {
		return nav.PopPage()
	}

	var raw any
	if s.Options != nil {
		raw = s.Options
	}
	opts, err := navigator.DecodePushOptions(raw)
	if err != nil {
		return err
	}

	if s.Reset != "" {
		return nav.ResetToPage(s.Reset, opts)
	}
	return nav.PushPage(s.Push, opts)
}
