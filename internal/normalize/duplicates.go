package normalize

// FindDuplicates returns the set of items that occur more than once.
func FindDuplicates[T comparable](items []T) map[T]struct{} {
	seen := make(map[T]struct{})
	duplicates := make(map[T]struct{})

	for _, item := range items {
		if _, ok := seen[item]; ok {
			duplicates[item] = struct{}{}
		}
		seen[item] = struct{}{}
	}
	return duplicates
}
