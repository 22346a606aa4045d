package normalize

import "github.com/zclconf/go-cty/cty"

// Normalizer turns declaration payloads into keyed trees. One Normalizer is
// scoped to a single task and declaration kind, so the anonymous keys it
// hands out are unique across all declarations that later meet in one merge.
type Normalizer struct {
	nextToken uint64
}

// NewNormalizer returns a Normalizer with a fresh token counter.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

func (n *Normalizer) anon(scalar bool) Key {
	key := anonKey(scalar, n.nextToken)
	n.nextToken++
	return key
}

// Normalize flattens one declaration payload into a mapping-shaped tree.
//
// The top level is special-cased: a bare scalar becomes a single anonymous
// entry flagged as scalar, and each element of a top-level sequence gets its
// own anonymous key. Below the top level the caller's explicit structure is
// kept as-is: sequences use their positional indices and scalars stay bare
// leaves. The asymmetry gives every top-level declaration an anonymous slot
// eligible for auto-numbering during the merge without disturbing nested
// shapes the user spelled out.
func (n *Normalizer) Normalize(spec Spec) Tree[cty.Value] {
	switch spec.kind {
	case mappingSpec:
		entries := make([]Entry[cty.Value], 0, len(spec.fields))
		for _, field := range spec.fields {
			entries = append(entries, Entry[cty.Value]{
				Key:   NameKey(field.Name),
				Value: n.normalizeNested(field.Value),
			})
		}
		return Branch(entries...)
	case sequenceSpec:
		entries := make([]Entry[cty.Value], 0, len(spec.seq))
		for _, elem := range spec.seq {
			entries = append(entries, Entry[cty.Value]{
				Key:   n.anon(false),
				Value: n.normalizeNested(elem),
			})
		}
		return Branch(entries...)
	default:
		return Branch(Entry[cty.Value]{
			Key:   n.anon(true),
			Value: Leaf(spec.scalar),
		})
	}
}

func (n *Normalizer) normalizeNested(spec Spec) Tree[cty.Value] {
	switch spec.kind {
	case mappingSpec:
		entries := make([]Entry[cty.Value], 0, len(spec.fields))
		for _, field := range spec.fields {
			entries = append(entries, Entry[cty.Value]{
				Key:   NameKey(field.Name),
				Value: n.normalizeNested(field.Value),
			})
		}
		return Branch(entries...)
	case sequenceSpec:
		entries := make([]Entry[cty.Value], 0, len(spec.seq))
		for i, elem := range spec.seq {
			entries = append(entries, Entry[cty.Value]{
				Key:   IndexKey(i),
				Value: n.normalizeNested(elem),
			})
		}
		return Branch(entries...)
	default:
		return Leaf(spec.scalar)
	}
}
