package pagination

import (
	"sort"
)

// Comparator orders two values: negative when a sorts before b, zero
// when equal, positive when a sorts after b.
type Comparator[T any] func(a, b T) int

// Sorter sorts entity rows by a whitelisted field name. List commands
// register a comparator per sortable field; unknown fields are rejected
// up front so typos surface as validation errors rather than silently
// unsorted output.
type Sorter[T any] struct {
	comparators map[string]Comparator[T]
}

// NewSorter creates an empty Sorter.
func NewSorter[T any]() *Sorter[T] {
	return &Sorter[T]{comparators: make(map[string]Comparator[T])}
}

// Register adds a sortable field with its comparator and returns the
// sorter for chaining.
func (s *Sorter[T]) Register(field string, cmp Comparator[T]) *Sorter[T] {
	s.comparators[field] = cmp
	return s
}

// IsValidField checks if the field is registered for sorting.
func (s *Sorter[T]) IsValidField(field string) bool {
	_, ok := s.comparators[field]
	return ok
}

// ValidFields returns all registered field names in a consistent order.
func (s *Sorter[T]) ValidFields() []string {
	fields := make([]string, 0, len(s.comparators))
	for field := range s.comparators {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// Sort returns a new slice sorted by the given field and order. The
// input slice is not modified. An empty field or an unregistered field
// returns the original slice unchanged. Equal elements keep their
// relative order.
func (s *Sorter[T]) Sort(items []T, field, order string) []T {
	if field == "" {
		return items
	}
	cmp, ok := s.comparators[field]
	if !ok {
		return items
	}

	sorted := make([]T, len(items))
	copy(sorted, items)

	sort.SliceStable(sorted, func(i, j int) bool {
		c := cmp(sorted[i], sorted[j])
		if order == SortOrderDesc {
			return c > 0
		}
		return c < 0
	})

	return sorted
}
