// Package ingest turns raw rule/update documents into the values the
// constraint and resolver packages consume.
//
// Two formats are understood:
//
//	Text (FormatText):
//
//		47|53
//		97|13
//
//		75,47,61,53,29
//		97,61,53,29,13
//
//	A block of "before|after" rules, one blank line, then one
//	comma-separated update per line.
//
//	YAML (FormatYAML):
//
//		rules:
//		  - [47, 53]
//		updates:
//		  - [75, 47, 61, 53, 29]
//
// Malformed lines are rejected with a *ParseError carrying the 1-based line
// number; errors.Is matches ErrMalformedRule or ErrMalformedUpdate.
package ingest
