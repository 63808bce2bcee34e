package ingest

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/precedence/constraint"
)

// document mirrors the YAML layout.
type document struct {
	Rules   [][]int `yaml:"rules"`
	Updates [][]int `yaml:"updates"`
}

// ParseYAML reads a rules/updates YAML document. Unknown keys are an error.
// An empty document yields an empty Input.
func ParseYAML(r io.Reader) (*Input, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Input{}, nil
		}
		return nil, fmt.Errorf("ingest: decode yaml: %w", err)
	}

	in := &Input{
		Rules:   make([]constraint.Pair[int], 0, len(doc.Rules)),
		Updates: make([][]int, 0, len(doc.Updates)),
	}
	for i, rule := range doc.Rules {
		if len(rule) != 2 {
			return nil, &ParseError{
				Text: fmt.Sprintf("rules[%d]=%v", i, rule),
				Err:  fmt.Errorf("%w: want 2 items, got %d", ErrMalformedRule, len(rule)),
			}
		}
		in.Rules = append(in.Rules, constraint.P(rule[0], rule[1]))
	}
	for i, u := range doc.Updates {
		if len(u) == 0 {
			return nil, &ParseError{
				Text: fmt.Sprintf("updates[%d]", i),
				Err:  fmt.Errorf("%w: empty", ErrMalformedUpdate),
			}
		}
		in.Updates = append(in.Updates, u)
	}

	return in, nil
}

// Read dispatches on format.
func Read(r io.Reader, format Format) (*Input, error) {
	switch format {
	case FormatText:
		return Parse(r)
	case FormatYAML:
		return ParseYAML(r)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
