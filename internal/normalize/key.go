package normalize

import "strconv"

// keyKind distinguishes explicit names, explicit integer indices, and the
// anonymous placeholder keys that exist only between normalization and merge.
type keyKind int

const (
	nameKey keyKind = iota
	indexKey
	anonymousKey
)

// Key identifies one entry of a mapping. Explicit keys are either a name or
// a non-negative integer index. Anonymous keys are placeholders assigned
// during normalization; they carry a token that makes them unique within one
// normalization pass and a flag recording whether they stand for a bare
// scalar declaration. Anonymous keys never survive a merge.
type Key struct {
	kind   keyKind
	name   string
	index  int
	scalar bool
	token  uint64
}

// NameKey returns an explicit string key.
func NameKey(name string) Key {
	return Key{kind: nameKey, name: name}
}

// IndexKey returns an explicit non-negative integer key.
func IndexKey(index int) Key {
	return Key{kind: indexKey, index: index}
}

func anonKey(scalar bool, token uint64) Key {
	return Key{kind: anonymousKey, scalar: scalar, token: token}
}

// IsAnonymous reports whether the key is an unresolved placeholder.
func (k Key) IsAnonymous() bool {
	return k.kind == anonymousKey
}

// IsIndex reports whether the key is an explicit integer index.
func (k Key) IsIndex() bool {
	return k.kind == indexKey
}

// Index returns the integer value of an index key. It is only meaningful
// when IsIndex is true.
func (k Key) Index() int {
	return k.index
}

// String renders the key the way it appears in reports: the name itself for
// string keys, the decimal form for index keys. Anonymous keys render as "?"
// because they must never reach a finished mapping.
func (k Key) String() string {
	switch k.kind {
	case nameKey:
		return k.name
	case indexKey:
		return strconv.Itoa(k.index)
	default:
		return "?"
	}
}

// blocksInteger reports whether this explicit key reserves the integer i,
// preventing it from being handed out during auto-numbering. A name key that
// renders identically to the integer blocks it as well, so that display keys
// stay unique within a mapping.
func (k Key) blocksInteger(i int) bool {
	switch k.kind {
	case indexKey:
		return k.index == i
	case nameKey:
		return k.name == strconv.Itoa(i)
	default:
		return false
	}
}
