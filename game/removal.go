package game

// compact drops every item in drop from items, keeping the order of the rest.
// The backing array is reused.
func compact[T comparable](items []T, drop map[T]struct{}) []T {
	kept := items[:0]
	for _, it := range items {
		if _, gone := drop[it]; gone {
			continue
		}
		kept = append(kept, it)
	}
	var zero T
	for i := len(kept); i < len(items); i++ {
		items[i] = zero
	}
	return kept
}
