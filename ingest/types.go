package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/precedence/constraint"
)

var (
	// ErrMalformedRule indicates a rule that is not two integers around '|'.
	ErrMalformedRule = errors.New("ingest: malformed rule")

	// ErrMalformedUpdate indicates an update that is not comma-separated integers.
	ErrMalformedUpdate = errors.New("ingest: malformed update")

	// ErrUnknownFormat indicates an unsupported input format name.
	ErrUnknownFormat = errors.New("ingest: unknown format")
)

// Format names an input encoding.
type Format string

const (
	// FormatText is the line-oriented "a|b" / "x,y,z" encoding.
	FormatText Format = "text"

	// FormatYAML is the rules/updates YAML document.
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "text", "txt", "yaml" or "yml" in any case.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "text", "txt", "":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Input is one parsed document.
type Input struct {
	// Rules lists the precedence constraints in document order.
	Rules []constraint.Pair[int]

	// Updates lists the sequences to check, in document order.
	Updates [][]int
}

// Index builds the constraint index for in.Rules.
func (in *Input) Index() *constraint.Index[int] {
	return constraint.Build(in.Rules)
}

// ParseError locates a malformed line.
type ParseError struct {
	Line int    // 1-based line number; 0 when the source has no lines (YAML)
	Text string // offending text
	Err  error  // ErrMalformedRule or ErrMalformedUpdate, possibly wrapped
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
	}

	return fmt.Sprintf("%q: %v", e.Text, e.Err)
}

// Unwrap exposes the sentinel.
func (e *ParseError) Unwrap() error {
	return e.Err
}
