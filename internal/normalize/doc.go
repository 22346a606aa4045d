// Package normalize flattens the heterogeneous dependency and product
// declarations attached to a task into a single keyed mapping.
//
// A declaration's payload may be a bare scalar reference, an ordered
// sequence of references, a mapping of explicit names to references, or any
// nesting of those. Normalization turns each payload into an ordered
// key->value tree; merging combines the trees of all declarations of one
// kind into the final mapping, assigning stable integer keys to anonymous
// entries and rejecting explicit-key collisions.
package normalize
