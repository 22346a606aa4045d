package normalize

// Tree is the output shape of normalization and merging: either a single
// leaf value or an ordered mapping of keys to subtrees. The zero value is an
// empty mapping. Insertion order is preserved for display and reporting.
type Tree[T any] struct {
	leaf    T
	entries []Entry[T]
	isLeaf  bool
}

// Entry is one key/value pair of a mapping-shaped tree.
type Entry[T any] struct {
	Key   Key
	Value Tree[T]
}

// Leaf returns a tree holding a single bare value.
func Leaf[T any](value T) Tree[T] {
	return Tree[T]{leaf: value, isLeaf: true}
}

// Branch returns a mapping-shaped tree with the given entries in order.
func Branch[T any](entries ...Entry[T]) Tree[T] {
	return Tree[T]{entries: entries}
}

// IsLeaf reports whether the tree is a single bare value.
func (t Tree[T]) IsLeaf() bool {
	return t.isLeaf
}

// Value returns the leaf value. It is only meaningful when IsLeaf is true.
func (t Tree[T]) Value() T {
	return t.leaf
}

// Entries returns the ordered entries of a mapping-shaped tree. It is nil
// for leaves and empty mappings.
func (t Tree[T]) Entries() []Entry[T] {
	return t.entries
}

// Len returns the number of top-level entries, or 1 for a leaf.
func (t Tree[T]) Len() int {
	if t.isLeaf {
		return 1
	}
	return len(t.entries)
}

// MapTree rebuilds a tree by applying fn to every leaf, preserving shape,
// keys, and order. The first error aborts the walk.
func MapTree[A, B any](t Tree[A], fn func(A) (B, error)) (Tree[B], error) {
	if t.isLeaf {
		mapped, err := fn(t.leaf)
		if err != nil {
			return Tree[B]{}, err
		}
		return Leaf(mapped), nil
	}

	entries := make([]Entry[B], 0, len(t.entries))
	for _, entry := range t.entries {
		value, err := MapTree(entry.Value, fn)
		if err != nil {
			return Tree[B]{}, err
		}
		entries = append(entries, Entry[B]{Key: entry.Key, Value: value})
	}
	return Tree[B]{entries: entries}, nil
}

// Leaves returns every leaf value of the tree in traversal order.
func Leaves[T any](t Tree[T]) []T {
	if t.isLeaf {
		return []T{t.leaf}
	}

	var out []T
	for _, entry := range t.entries {
		out = append(out, Leaves(entry.Value)...)
	}
	return out
}
