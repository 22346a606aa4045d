package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// DuplicateNameError reports that a task assigned the same explicit
// dependency or product name in more than one declaration.
type DuplicateNameError struct {
	Kind  string
	Names []string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%q declarations assign the same node name more than once: %s",
		e.Kind, strings.Join(e.Names, ", "))
}

// Merge combines the normalized mappings of all declarations of one kind
// (kind is "depends_on" or "produces", used in error reporting) into the
// final tree handed to node resolution.
//
// Explicit keys that repeat across declarations are rejected. A merge whose
// union holds exactly one anonymous entry collapses: to the bare leaf when
// the entry came from a scalar declaration, to {0: value} when it came from
// a collection. Otherwise anonymous keys are replaced, in insertion order,
// by the smallest non-negative integer not reserved by an explicit key and
// not already assigned.
//
// Numbering depends on declaration order; reordering declarations renumbers
// anonymous entries, which is accepted behavior.
func Merge(kind string, mappings []Tree[cty.Value]) (Tree[cty.Value], error) {
	if err := checkExplicitDuplicates(kind, mappings); err != nil {
		return Tree[cty.Value]{}, err
	}

	union := Union(mappings)
	entries := union.Entries()

	if len(entries) == 1 && entries[0].Key.IsAnonymous() {
		only := entries[0]
		if only.Key.scalar {
			return only.Value, nil
		}
		return Branch(Entry[cty.Value]{Key: IndexKey(0), Value: only.Value}), nil
	}

	out := make([]Entry[cty.Value], 0, len(entries))
	next := 0
	for _, entry := range entries {
		if !entry.Key.IsAnonymous() {
			out = append(out, entry)
			continue
		}
		for isIntegerReserved(next, entries, out) {
			next++
		}
		out = append(out, Entry[cty.Value]{Key: IndexKey(next), Value: entry.Value})
		next++
	}
	return Branch(out...), nil
}

// Union shallow-merges the mappings in order. A later entry with a key equal
// to an earlier one overrides the earlier value while keeping its original
// position. With explicit duplicates already rejected this can only happen
// when Union is used directly, where last writer wins.
func Union(mappings []Tree[cty.Value]) Tree[cty.Value] {
	var entries []Entry[cty.Value]
	position := make(map[Key]int)

	for _, mapping := range mappings {
		for _, entry := range mapping.Entries() {
			if at, seen := position[entry.Key]; seen {
				entries[at].Value = entry.Value
				continue
			}
			position[entry.Key] = len(entries)
			entries = append(entries, entry)
		}
	}
	return Branch(entries...)
}

func checkExplicitDuplicates(kind string, mappings []Tree[cty.Value]) error {
	var explicit []Key
	for _, mapping := range mappings {
		for _, entry := range mapping.Entries() {
			if !entry.Key.IsAnonymous() {
				explicit = append(explicit, entry.Key)
			}
		}
	}

	duplicated := FindDuplicates(explicit)
	if len(duplicated) == 0 {
		return nil
	}

	names := make([]string, 0, len(duplicated))
	for key := range duplicated {
		names = append(names, key.String())
	}
	sort.Strings(names)
	return &DuplicateNameError{Kind: kind, Names: names}
}

func isIntegerReserved(i int, union, out []Entry[cty.Value]) bool {
	for _, entry := range union {
		if entry.Key.blocksInteger(i) {
			return true
		}
	}
	for _, entry := range out {
		if entry.Key.blocksInteger(i) {
			return true
		}
	}
	return false
}
