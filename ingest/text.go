package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/precedence/constraint"
)

// Parse reads a text document: rules until the first blank line, updates
// after it. Surrounding whitespace and CRLF line endings are tolerated, and
// blank lines inside the update section are skipped.
func Parse(r io.Reader) (*Input, error) {
	in := &Input{}
	sc := bufio.NewScanner(r)
	inUpdates := false
	line := 0

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			inUpdates = true
			continue
		}
		if !inUpdates {
			p, err := ParseRule(text)
			if err != nil {
				return nil, &ParseError{Line: line, Text: text, Err: err}
			}
			in.Rules = append(in.Rules, p)
			continue
		}
		u, err := ParseUpdate(text)
		if err != nil {
			return nil, &ParseError{Line: line, Text: text, Err: err}
		}
		in.Updates = append(in.Updates, u)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("ingest: read: %w", err)
	}

	return in, nil
}

// ParseRule parses "before|after".
func ParseRule(s string) (constraint.Pair[int], error) {
	left, right, ok := strings.Cut(s, "|")
	if !ok {
		return constraint.Pair[int]{}, fmt.Errorf("%w: missing '|'", ErrMalformedRule)
	}
	before, err := atoi(left)
	if err != nil {
		return constraint.Pair[int]{}, fmt.Errorf("%w: %v", ErrMalformedRule, err)
	}
	after, err := atoi(right)
	if err != nil {
		return constraint.Pair[int]{}, fmt.Errorf("%w: %v", ErrMalformedRule, err)
	}

	return constraint.P(before, after), nil
}

// ParseUpdate parses "x,y,z" into a sequence.
func ParseUpdate(s string) ([]int, error) {
	fields := strings.Split(s, ",")
	out := make([]int, 0, len(fields))
	for i, f := range fields {
		v, err := atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformedUpdate, i+1, err)
		}
		out = append(out, v)
	}

	return out, nil
}

var errEmptyToken = errors.New("empty token")

// atoi trims s and rejects the empty token explicitly so the message is
// clearer than strconv's.
func atoi(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errEmptyToken
	}

	return strconv.Atoi(s)
}
