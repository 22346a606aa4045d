package normalize

import (
	"sort"

	"github.com/zclconf/go-cty/cty"
)

// specKind distinguishes the three shapes a declaration payload can take.
type specKind int

const (
	scalarSpec specKind = iota
	sequenceSpec
	mappingSpec
)

// Spec is the closed input type of the normalizer: a scalar reference, a
// sequence of specs, or an ordered mapping of explicit names to specs. It is
// constructed by the declaration layer, so the normalizer itself never has
// to inspect arbitrary values.
type Spec struct {
	kind   specKind
	scalar cty.Value
	seq    []Spec
	fields []SpecField
}

// SpecField is one named entry of a mapping-shaped Spec.
type SpecField struct {
	Name  string
	Value Spec
}

// Scalar wraps a single raw reference.
func Scalar(v cty.Value) Spec {
	return Spec{kind: scalarSpec, scalar: v}
}

// Sequence wraps an ordered collection of specs.
func Sequence(elems ...Spec) Spec {
	return Spec{kind: sequenceSpec, seq: elems}
}

// Mapping wraps an ordered list of named specs.
func Mapping(fields ...SpecField) Spec {
	return Spec{kind: mappingSpec, fields: fields}
}

// Field builds one entry of a mapping-shaped Spec.
func Field(name string, value Spec) SpecField {
	return SpecField{Name: name, Value: value}
}

// FromValue converts an evaluated declaration value into a Spec. Tuples,
// lists, and sets become sequences; objects and maps become mappings with
// attribute names sorted lexically (the order cty itself iterates them in);
// everything else, including null and unknown values, is a scalar.
func FromValue(v cty.Value) Spec {
	if v.IsNull() || !v.IsKnown() {
		return Scalar(v)
	}

	ty := v.Type()
	switch {
	case ty.IsTupleType() || ty.IsListType() || ty.IsSetType():
		var elems []Spec
		for it := v.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			elems = append(elems, FromValue(ev))
		}
		return Sequence(elems...)
	case ty.IsObjectType() || ty.IsMapType():
		values := v.AsValueMap()
		names := make([]string, 0, len(values))
		for name := range values {
			names = append(names, name)
		}
		sort.Strings(names)

		fields := make([]SpecField, 0, len(names))
		for _, name := range names {
			fields = append(fields, Field(name, FromValue(values[name])))
		}
		return Mapping(fields...)
	default:
		return Scalar(v)
	}
}
