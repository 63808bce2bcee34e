// Package precedence checks ordered sequences against pairwise
// "A must come before B" rules and repairs the ones that break them.
//
// Everything is organized under a few subpackages:
//
//	constraint/ — immutable per-item index of required predecessors/successors
//	resolver/   — IsValid, Violations, Repair (comparator), RepairTopological (Kahn), FindCycle
//	ingest/     — "a|b" / "x,y,z" text and YAML readers
//	audit/      — concurrent batch checking, middle-item scoring, metrics
//	config/     — viper-backed settings
//	logger/     — zerolog construction
//	cmd/precedence — CLI: check, repair, score
//
// Quick example:
//
//	idx := constraint.Build([]constraint.Pair[int]{{97, 75}, {75, 47}})
//	resolver.IsValid(idx, []int{75, 97, 47})           // false
//	resolver.RepairTopological(idx, []int{75, 97, 47}) // [97 75 47], nil
//
// Rules are checked only between items that are both present in a
// sequence; an item no rule mentions is free to sit anywhere.
//
//	go get github.com/katalvlaran/precedence
package precedence
